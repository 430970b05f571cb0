package cpu

import (
	"context"

	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
)

// Timer levanta TIMEOUT cuando el proceso en ejecución consumió su quantum.
// Con Quantum <= 0 está deshabilitado.
type Timer struct {
	Quantum int
	ticks   int
	cpu     *Cpu
	vector  *irq.Vector
}

func NewTimer(quantum int, cpu *Cpu, vector *irq.Vector) *Timer {
	return &Timer{
		Quantum: quantum,
		cpu:     cpu,
		vector:  vector,
	}
}

func (t *Timer) Reset() {
	t.ticks = 0
}

func (t *Timer) Ticks() int {
	return t.ticks
}

func (t *Timer) Tick(ctx context.Context) error {
	if t.Quantum <= 0 || t.cpu.Ocioso() {
		return nil
	}
	if t.ticks >= t.Quantum {
		return t.vector.Handle(ctx, irq.IRQ{Tipo: irq.InterrupcionTimeout})
	}
	t.ticks++
	return nil
}
