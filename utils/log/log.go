package log

import (
	"log/slog"
	"os"
	"strings"
)

// BuildLogger arma el logger JSON del módulo con el nivel indicado en la configuración.
// Un nivel desconocido o vacío se toma como "info".
func BuildLogger(level string) *slog.Logger {
	ops := &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, ops))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}

func IntAttr(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func StringAttr(key, value string) slog.Attr {
	return slog.String(key, value)
}

func AnyAttr(key string, value any) slog.Attr {
	return slog.Any(key, value)
}
