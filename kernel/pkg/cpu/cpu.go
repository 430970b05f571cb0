package cpu

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/memoria"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

// PCOcioso es el valor del program counter cuando no hay proceso en la CPU.
const PCOcioso = -1

type Cpu struct {
	PC      int
	Log     *slog.Logger
	mmu     *MMU
	memoria *memoria.Memoria
	vector  *irq.Vector
}

func NewCpu(mmu *MMU, mem *memoria.Memoria, vector *irq.Vector, logger *slog.Logger) *Cpu {
	return &Cpu{
		PC:      PCOcioso,
		Log:     logger,
		mmu:     mmu,
		memoria: mem,
		vector:  vector,
	}
}

func (c *Cpu) Ocioso() bool {
	return c.PC == PCOcioso
}

// Tick ejecuta un ciclo: busca la instrucción apuntada por el PC a través de la MMU y la ejecuta.
// IO avanza el PC antes de levantar IO_IN para que el proceso retome en la instrucción siguiente.
func (c *Cpu) Tick(ctx context.Context) error {
	if c.Ocioso() {
		return nil
	}

	direccion, err := c.mmu.Traducir(c.PC)
	if err != nil {
		return err
	}
	instruccion, err := c.memoria.Get(direccion)
	if err != nil {
		return fmt.Errorf("fetch pc %d: %w", c.PC, err)
	}

	c.Log.Debug("Ejecutando instrucción",
		log.IntAttr("pc", c.PC),
		log.IntAttr("direccion", direccion),
		log.StringAttr("instruccion", string(instruccion)),
	)

	switch instruccion {
	case internal.InstruccionExit:
		return c.vector.Handle(ctx, irq.IRQ{Tipo: irq.InterrupcionKill})
	case internal.InstruccionIO:
		c.PC++
		return c.vector.Handle(ctx, irq.IRQ{Tipo: irq.InterrupcionIoIn, Parametros: instruccion})
	default:
		c.PC++
		return nil
	}
}
