package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// IniciarConfiguracion lee el archivo de configuración y lo decodifica en T.
// Los archivos .yaml/.yml se decodifican con yaml, el resto como JSON.
func IniciarConfiguracion[T any](filePath string) (*T, error) {
	configFile, err := os.Open(filePath)
	if err != nil {
		slog.Error("Error al abrir el archivo de configuración",
			slog.String("filePath", filePath),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("abrir configuración %s: %w", filePath, err)
	}
	defer func() {
		_ = configFile.Close()
	}()

	config := new(T)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(configFile).Decode(config)
	default:
		err = json.NewDecoder(configFile).Decode(config)
	}
	if err != nil {
		slog.Error("Error al decodificar el archivo de configuración",
			slog.String("filePath", filePath),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("decodificar configuración %s: %w", filePath, err)
	}

	return config, nil
}
