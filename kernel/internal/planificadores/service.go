package planificadores

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/cpu"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

var (
	ErrInvariante            = errors.New("invariante del kernel violado")
	ErrParametrosInvalidos   = errors.New("parámetros de interrupción inválidos")
	ErrSinProcesoEnEjecucion = errors.New("no hay proceso en ejecución")
)

// Service es el kernel: arma el planificador con el hardware que recibe y atiende las
// interrupciones. Todo su estado se modifica solo desde los handlers.
type Service struct {
	Log          *slog.Logger
	Hardware     *cpu.Hardware
	Tabla        *internal.TablaPCB
	Scheduler    Scheduler
	Dispatcher   *Dispatcher
	IoController *IoDeviceController
	Loader       *Loader
}

// ParametrosNew viaja en la interrupción NEW. El handler completa PID.
type ParametrosNew struct {
	Programa  *internal.Programa
	Prioridad int
	PID       int
}

// Snapshot es una foto del planificador para inspección.
type Snapshot struct {
	Running  *int           `json:"running"`
	Ready    []int          `json:"ready"`
	IoActual *int           `json:"io_actual"`
	IoEspera []int          `json:"io_espera"`
	Procesos []internal.PCB `json:"procesos"`
}

// NewKernel registra los handlers de las cinco interrupciones en el vector del hardware.
func NewKernel(hw *cpu.Hardware, scheduler Scheduler, logger *slog.Logger) *Service {
	s := &Service{
		Log:          logger,
		Hardware:     hw,
		Tabla:        internal.NuevaTablaPCB(),
		Scheduler:    scheduler,
		Dispatcher:   NewDispatcher(hw),
		IoController: NewIoDeviceController(hw.Dispositivo, logger),
		Loader:       NewLoader(hw.Memoria, logger),
	}

	s.registrar(irq.InterrupcionNew, s.manejarNew)
	s.registrar(irq.InterrupcionKill, s.manejarKill)
	s.registrar(irq.InterrupcionIoIn, s.manejarIoIn)
	s.registrar(irq.InterrupcionIoOut, s.manejarIoOut)
	s.registrar(irq.InterrupcionTimeout, s.manejarTimeout)

	return s
}

func (s *Service) registrar(tipo irq.Tipo, handler irq.HandlerFunc) {
	s.Hardware.Vector.Register(tipo, irq.HandlerFunc(func(ctx context.Context, i irq.IRQ) error {
		if err := handler(ctx, i); err != nil {
			return err
		}
		return s.ChequearInvariantes()
	}))
}

// Run admite el programa levantando NEW y vuelve cuando termina la admisión, no la ejecución.
func (s *Service) Run(ctx context.Context, programa *internal.Programa, prioridad int) (int, error) {
	params := &ParametrosNew{Programa: programa, Prioridad: prioridad}
	if err := s.Hardware.Vector.Handle(ctx, irq.IRQ{Tipo: irq.InterrupcionNew, Parametros: params}); err != nil {
		return 0, err
	}
	return params.PID, nil
}

// Terminado es verdadero cuando hay procesos admitidos y todos terminaron.
func (s *Service) Terminado() bool {
	return s.Tabla.Len() > 0 && s.Tabla.CantidadEnEstado(internal.EstadoTerminated) == s.Tabla.Len()
}

func (s *Service) Snapshot() Snapshot {
	snapshot := Snapshot{
		Ready:    s.Scheduler.Pids(),
		IoEspera: s.IoController.PidsEnEspera(),
		Procesos: make([]internal.PCB, 0, s.Tabla.Len()),
	}
	if running := s.Tabla.RunningPCB(); running != nil {
		pid := running.PID
		snapshot.Running = &pid
	}
	if pid, ok := s.IoController.Actual(); ok {
		snapshot.IoActual = &pid
	}
	for _, pcb := range s.Tabla.Procesos() {
		snapshot.Procesos = append(snapshot.Procesos, pcb.Clonar())
	}
	return snapshot
}

// ChequearInvariantes verifica que cada proceso vivo esté en exactamente una estructura
// acorde a su estado y que haya a lo sumo uno en RUNNING.
func (s *Service) ChequearInvariantes() error {
	if n := s.Tabla.CantidadEnEstado(internal.EstadoRunning); n > 1 {
		return s.violacion(fmt.Errorf("%w: %d procesos", internal.ErrMultiplesRunning, n))
	}

	running := s.Tabla.RunningPCB()
	switch {
	case running == nil && s.Tabla.CantidadEnEstado(internal.EstadoRunning) != 0:
		return s.violacion(errors.New("hay un proceso RUNNING fuera del slot de ejecución"))
	case running != nil && running.Estado != internal.EstadoRunning:
		return s.violacion(fmt.Errorf("el slot de ejecución tiene al pid %d en %s", running.PID, running.Estado))
	case (running == nil) != s.Hardware.Cpu.Ocioso():
		return s.violacion(fmt.Errorf("slot de ejecución y CPU desincronizados (pc %d)", s.Hardware.Cpu.PC))
	}

	if err := s.chequearMiembros("ready", s.Scheduler.Pids(), internal.EstadoReady); err != nil {
		return s.violacion(err)
	}

	enIO := s.IoController.PidsEnEspera()
	if pid, ok := s.IoController.Actual(); ok {
		enIO = append(enIO, pid)
	}
	if err := s.chequearMiembros("io", enIO, internal.EstadoWaiting); err != nil {
		return s.violacion(err)
	}
	return nil
}

func (s *Service) chequearMiembros(cola string, pids []int, estado internal.Estado) error {
	vistos := make(map[int]bool, len(pids))
	for _, pid := range pids {
		if vistos[pid] {
			return fmt.Errorf("pid %d repetido en la cola %s", pid, cola)
		}
		vistos[pid] = true

		pcb, ok := s.Tabla.Get(pid)
		if !ok {
			return fmt.Errorf("%w: pid %d en la cola %s", internal.ErrProcesoInexistente, pid, cola)
		}
		if pcb.Estado != estado {
			return fmt.Errorf("pid %d en la cola %s con estado %s", pid, cola, pcb.Estado)
		}
	}
	if n := s.Tabla.CantidadEnEstado(estado); n != len(pids) {
		return fmt.Errorf("%d procesos en %s pero %d en la cola %s", n, estado, len(pids), cola)
	}
	return nil
}

func (s *Service) violacion(err error) error {
	running := s.Tabla.RunningPCB()
	attrs := []any{log.ErrAttr(err)}
	if running != nil {
		attrs = append(attrs,
			log.IntAttr("pid", running.PID),
			log.StringAttr("estado", string(running.Estado)),
		)
	}
	s.Log.Error("Invariante del kernel violado", attrs...)
	return fmt.Errorf("%w: %w", ErrInvariante, err)
}

// cambiarEstado aplica la transición y emite el log obligatorio.
func (s *Service) cambiarEstado(pcb *internal.PCB, nuevo internal.Estado) {
	anterior := pcb.CambiarEstado(nuevo)

	//Log obligatorio: Cambio de estado
	s.Log.Info(fmt.Sprintf("## (%d) Pasa del estado %s al estado %s", pcb.PID, anterior, nuevo))
}
