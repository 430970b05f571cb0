package io

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

var ErrDispositivoOcupado = errors.New("dispositivo ocupado")

// Dispositivo es el dispositivo físico de entrada/salida. Ejecuta una operación por vez y avisa
// el fin de cada una con una interrupción IO_OUT.
type Dispositivo interface {
	ID() string
	IsIdle() bool
	Execute(ctx context.Context, pid int, instruccion internal.Instruccion) error
}

// DispositivoLocal completa cada operación después de Demora ticks del reloj.
type DispositivoLocal struct {
	id       string
	Demora   int
	Log      *slog.Logger
	vector   *irq.Vector
	restante int
	ocupado  bool
	pid      int
}

func NuevoDispositivoLocal(id string, demora int, vector *irq.Vector, logger *slog.Logger) *DispositivoLocal {
	return &DispositivoLocal{
		id:     id,
		Demora: demora,
		Log:    logger,
		vector: vector,
	}
}

func (d *DispositivoLocal) ID() string {
	return d.id
}

func (d *DispositivoLocal) IsIdle() bool {
	return !d.ocupado
}

func (d *DispositivoLocal) Execute(_ context.Context, pid int, instruccion internal.Instruccion) error {
	if d.ocupado {
		return fmt.Errorf("%w: %s atendiendo al pid %d", ErrDispositivoOcupado, d.id, d.pid)
	}
	d.ocupado = true
	d.restante = d.Demora
	d.pid = pid

	//Log obligatorio: Inicio de IO
	d.Log.Info(fmt.Sprintf("## PID: %d - Inicio de IO - Dispositivo: %s", pid, d.id),
		log.StringAttr("instruccion", string(instruccion)),
		log.IntAttr("demora", d.Demora),
	)
	return nil
}

// Tick avanza la operación en curso y levanta IO_OUT cuando termina.
func (d *DispositivoLocal) Tick(ctx context.Context) error {
	if !d.ocupado {
		return nil
	}
	d.restante--
	if d.restante > 0 {
		return nil
	}

	d.ocupado = false

	//Log obligatorio: Fin de IO
	d.Log.Info(fmt.Sprintf("## PID: %d - Fin de IO", d.pid))

	return d.vector.Handle(ctx, irq.IRQ{Tipo: irq.InterrupcionIoOut, Parametros: d.pid})
}
