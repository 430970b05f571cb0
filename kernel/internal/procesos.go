package internal

import (
	"errors"
	"fmt"

	uniqueid "github.com/cpu-warriors/so-emulador/utils/unique-id"
)

var (
	ErrMultiplesRunning   = errors.New("más de un proceso en estado RUNNING")
	ErrProcesoInexistente = errors.New("proceso inexistente")
	ErrProcesoVivo        = errors.New("el proceso no terminó")
)

// TablaPCB es dueña de todos los PCBs. Mantiene el orden de alta y el slot del proceso en ejecución.
type TablaPCB struct {
	pcbs    map[int]*PCB
	orden   []int
	pids    *uniqueid.Secuencia
	running *PCB
}

func NuevaTablaPCB() *TablaPCB {
	return &TablaPCB{
		pcbs:  make(map[int]*PCB),
		orden: make([]int, 0),
		pids:  uniqueid.Nueva(),
	}
}

// NewPid devuelve el próximo pid. Son estrictamente crecientes y no se reutilizan.
func (t *TablaPCB) NewPid() int {
	return t.pids.Siguiente()
}

// Add registra el PCB. Si ya está en RUNNING además ocupa el slot de ejecución.
func (t *TablaPCB) Add(pcb *PCB) error {
	if _, existe := t.pcbs[pcb.PID]; existe {
		return fmt.Errorf("pid %d ya registrado", pcb.PID)
	}

	if pcb.Estado == EstadoRunning {
		if err := t.SetRunningPCB(pcb); err != nil {
			return err
		}
	}

	t.pcbs[pcb.PID] = pcb
	t.orden = append(t.orden, pcb.PID)
	return nil
}

func (t *TablaPCB) Get(pid int) (*PCB, bool) {
	pcb, ok := t.pcbs[pid]
	return pcb, ok
}

func (t *TablaPCB) RunningPCB() *PCB {
	return t.running
}

// SetRunningPCB instala el PCB en el slot de ejecución; nil deja la CPU ociosa.
// Falla si el PCB que estaba corriendo sigue marcado RUNNING.
func (t *TablaPCB) SetRunningPCB(pcb *PCB) error {
	if pcb != nil && t.running != nil && t.running != pcb && t.running.Estado == EstadoRunning {
		return fmt.Errorf("%w: pid %d sigue en ejecución al instalar pid %d",
			ErrMultiplesRunning, t.running.PID, pcb.PID)
	}
	t.running = pcb
	return nil
}

// Procesos devuelve los PCBs en orden de alta.
func (t *TablaPCB) Procesos() []*PCB {
	procesos := make([]*PCB, 0, len(t.orden))
	for _, pid := range t.orden {
		procesos = append(procesos, t.pcbs[pid])
	}
	return procesos
}

// Remover saca de la tabla un proceso terminado.
func (t *TablaPCB) Remover(pid int) error {
	pcb, ok := t.pcbs[pid]
	if !ok {
		return fmt.Errorf("%w: pid %d", ErrProcesoInexistente, pid)
	}
	if pcb.Estado != EstadoTerminated {
		return fmt.Errorf("%w: pid %d está en %s", ErrProcesoVivo, pid, pcb.Estado)
	}

	delete(t.pcbs, pid)
	for i, p := range t.orden {
		if p == pid {
			t.orden = append(t.orden[:i], t.orden[i+1:]...)
			break
		}
	}
	return nil
}

func (t *TablaPCB) CantidadEnEstado(estado Estado) int {
	cantidad := 0
	for _, pcb := range t.pcbs {
		if pcb.Estado == estado {
			cantidad++
		}
	}
	return cantidad
}

func (t *TablaPCB) Len() int {
	return len(t.orden)
}
