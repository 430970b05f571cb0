package planificadores

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
)

const (
	AlgoritmoFIFO                  = "FIFO"
	AlgoritmoPrioridad             = "PRIORIDAD"
	AlgoritmoPrioridadExpropiativo = "PRIORIDAD_EXPROPIATIVO"
	AlgoritmoRoundRobin            = "RR"
)

var (
	ErrColaVacia            = errors.New("cola de ready vacía")
	ErrEstadoInvalido       = errors.New("el proceso no está en READY")
	ErrAlgoritmoDesconocido = errors.New("algoritmo de corto plazo no reconocido")
)

// Scheduler es dueño de la cola de ready. La cola guarda pids: los PCBs viven en la TablaPCB.
type Scheduler interface {
	// Add admite un PCB que ya está en READY.
	Add(pcb *internal.PCB) error
	// GetNext saca el próximo pid a ejecutar. Con la cola vacía devuelve ErrColaVacia.
	GetNext() (int, error)
	IsPreemptive() bool
	Len() int
	// Pids devuelve la cola en orden de salida.
	Pids() []int
}

// NuevoScheduler elige el algoritmo de corto plazo. Se decide una vez al bootear el kernel.
func NuevoScheduler(algoritmo string) (Scheduler, error) {
	switch strings.ToUpper(algoritmo) {
	case AlgoritmoFIFO:
		return &SchedulerFIFO{}, nil
	case AlgoritmoPrioridad:
		return &SchedulerPrioridad{}, nil
	case AlgoritmoPrioridadExpropiativo:
		return &SchedulerPrioridad{expropiativo: true}, nil
	case AlgoritmoRoundRobin:
		return &SchedulerRoundRobin{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAlgoritmoDesconocido, algoritmo)
	}
}

// UsaQuantum indica si el algoritmo desaloja por fin de quantum (timer).
func UsaQuantum(algoritmo string) bool {
	return strings.ToUpper(algoritmo) == AlgoritmoRoundRobin
}

type entradaReady struct {
	PID       int
	Prioridad int
}

type colaReady struct {
	entradas []entradaReady
}

func (c *colaReady) encolar(pcb *internal.PCB) error {
	if pcb.Estado != internal.EstadoReady {
		return fmt.Errorf("%w: pid %d está en %s", ErrEstadoInvalido, pcb.PID, pcb.Estado)
	}
	c.entradas = append(c.entradas, entradaReady{PID: pcb.PID, Prioridad: pcb.Prioridad})
	return nil
}

func (c *colaReady) GetNext() (int, error) {
	if len(c.entradas) == 0 {
		return 0, ErrColaVacia
	}
	head := c.entradas[0]
	c.entradas = c.entradas[1:]
	return head.PID, nil
}

func (c *colaReady) Len() int {
	return len(c.entradas)
}

func (c *colaReady) Pids() []int {
	pids := make([]int, 0, len(c.entradas))
	for _, e := range c.entradas {
		pids = append(pids, e.PID)
	}
	return pids
}

// SchedulerFIFO atiende por orden de llegada y nunca desaloja.
type SchedulerFIFO struct {
	colaReady
}

func (s *SchedulerFIFO) Add(pcb *internal.PCB) error {
	return s.encolar(pcb)
}

func (s *SchedulerFIFO) IsPreemptive() bool {
	return false
}

// SchedulerPrioridad ordena por prioridad ascendente (menor valor, más prioritario).
// A igual prioridad se respeta el orden de llegada.
type SchedulerPrioridad struct {
	colaReady
	expropiativo bool
}

func (s *SchedulerPrioridad) Add(pcb *internal.PCB) error {
	if err := s.encolar(pcb); err != nil {
		return err
	}
	sort.SliceStable(s.entradas, func(i, j int) bool {
		return s.entradas[i].Prioridad < s.entradas[j].Prioridad
	})
	return nil
}

func (s *SchedulerPrioridad) IsPreemptive() bool {
	return s.expropiativo
}

// SchedulerRoundRobin atiende en orden de llegada. El desalojo lo produce el timer, no el scheduler.
type SchedulerRoundRobin struct {
	colaReady
}

func (s *SchedulerRoundRobin) Add(pcb *internal.PCB) error {
	return s.encolar(pcb)
}

func (s *SchedulerRoundRobin) IsPreemptive() bool {
	return false
}
