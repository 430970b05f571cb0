package planificadores

import (
	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/cpu"
)

// Dispatcher es el único punto donde el estado pasa entre un PCB y la CPU/MMU.
// Load y Save siempre van de a pares alrededor de cada salida del slot de ejecución.
type Dispatcher struct {
	hw *cpu.Hardware
}

func NewDispatcher(hw *cpu.Hardware) *Dispatcher {
	return &Dispatcher{hw: hw}
}

// Load sube el contexto del PCB a la CPU y reinicia el quantum.
func (d *Dispatcher) Load(pcb *internal.PCB) {
	d.hw.Cpu.PC = pcb.PC
	d.hw.MMU.Base = pcb.Base
	d.hw.MMU.Limite = pcb.Limite
	d.hw.Timer.Reset()
}

// Save guarda el PC en el PCB y deja la CPU ociosa.
func (d *Dispatcher) Save(pcb *internal.PCB) {
	pcb.PC = d.hw.Cpu.PC
	d.hw.Cpu.PC = cpu.PCOcioso
}
