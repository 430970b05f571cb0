package memoria

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

var (
	ErrDireccionInvalida   = errors.New("dirección de memoria inválida")
	ErrMemoriaInsuficiente = errors.New("memoria insuficiente")
)

// Memoria emula la memoria principal: una celda por instrucción.
type Memoria struct {
	celdas []internal.Instruccion
	Log    *slog.Logger
}

func NewMemoria(tamanio int, logger *slog.Logger) *Memoria {
	return &Memoria{
		celdas: make([]internal.Instruccion, tamanio),
		Log:    logger,
	}
}

func (m *Memoria) Tamanio() int {
	return len(m.celdas)
}

func (m *Memoria) Put(direccion int, instruccion internal.Instruccion) error {
	if direccion < 0 || direccion >= len(m.celdas) {
		return fmt.Errorf("%w: %d (tamaño %d)", ErrDireccionInvalida, direccion, len(m.celdas))
	}
	m.celdas[direccion] = instruccion
	return nil
}

func (m *Memoria) Get(direccion int) (internal.Instruccion, error) {
	if direccion < 0 || direccion >= len(m.celdas) {
		return "", fmt.Errorf("%w: %d (tamaño %d)", ErrDireccionInvalida, direccion, len(m.celdas))
	}
	return m.celdas[direccion], nil
}

// Leer devuelve una copia de las celdas [base, base+limite].
func (m *Memoria) Leer(base, limite int) ([]internal.Instruccion, error) {
	fin := base + limite
	if base < 0 || limite < 0 || fin >= len(m.celdas) {
		m.Log.Debug("Lectura fuera de rango",
			log.IntAttr("base", base),
			log.IntAttr("limite", limite),
		)
		return nil, fmt.Errorf("%w: [%d, %d] (tamaño %d)", ErrDireccionInvalida, base, fin, len(m.celdas))
	}
	return append([]internal.Instruccion(nil), m.celdas[base:fin+1]...), nil
}
