package log

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "mayúsculas", level: "DEBUG", want: slog.LevelDebug},
		{name: "warn", level: "warn", want: slog.LevelWarn},
		{name: "error", level: " error ", want: slog.LevelError},
		{name: "vacío", level: "", want: slog.LevelInfo},
		{name: "desconocido", level: "trace", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestAttrs(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, "error", ErrAttr(err).Key)
	assert.Equal(t, int64(3), IntAttr("pid", 3).Value.Int64())
	assert.Equal(t, "EXIT", StringAttr("instruccion", "EXIT").Value.String())
	assert.NotNil(t, BuildLogger("debug"))
}
