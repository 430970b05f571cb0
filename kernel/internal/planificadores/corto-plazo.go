package planificadores

import (
	"context"
	"fmt"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
)

func (s *Service) manejarTimeout(_ context.Context, _ irq.IRQ) error {
	pcb := s.Tabla.RunningPCB()
	if pcb == nil || s.Scheduler.Len() == 0 {
		s.Hardware.Timer.Reset()
		return nil
	}

	if err := s.desalojar(pcb); err != nil {
		return err
	}

	//Log obligatorio: Desalojo
	s.Log.Info(fmt.Sprintf("## (%d) - Desalojado por fin de quantum", pcb.PID))

	return s.ponerProximoEnRunning()
}

// admitirListo decide qué hacer con un proceso que queda listo para ejecutar: si la CPU está
// libre lo despacha, si el algoritmo desaloja y es más prioritario que el que corre lo reemplaza,
// y si no lo encola en READY.
func (s *Service) admitirListo(pcb *internal.PCB) error {
	running := s.Tabla.RunningPCB()

	switch {
	case running == nil:
		return s.despachar(pcb)
	case s.Scheduler.IsPreemptive() && pcb.Prioridad < running.Prioridad:
		if err := s.desalojar(running); err != nil {
			return err
		}

		//Log obligatorio: Desalojo
		s.Log.Info(fmt.Sprintf("## (%d) - Desalojado por prioridad", running.PID))

		return s.despachar(pcb)
	default:
		s.cambiarEstado(pcb, internal.EstadoReady)
		return s.Scheduler.Add(pcb)
	}
}

// desalojar saca al proceso de la CPU y lo devuelve a la cola de ready.
func (s *Service) desalojar(pcb *internal.PCB) error {
	s.Dispatcher.Save(pcb)
	s.cambiarEstado(pcb, internal.EstadoReady)
	if err := s.Tabla.SetRunningPCB(nil); err != nil {
		return err
	}
	return s.Scheduler.Add(pcb)
}

// ponerProximoEnRunning despacha el próximo proceso listo o deja la CPU ociosa.
func (s *Service) ponerProximoEnRunning() error {
	if s.Scheduler.Len() == 0 {
		return s.Tabla.SetRunningPCB(nil)
	}

	pid, err := s.Scheduler.GetNext()
	if err != nil {
		return s.violacion(err)
	}
	pcb, ok := s.Tabla.Get(pid)
	if !ok {
		return s.violacion(fmt.Errorf("%w: pid %d en ready", internal.ErrProcesoInexistente, pid))
	}
	return s.despachar(pcb)
}

func (s *Service) despachar(pcb *internal.PCB) error {
	s.cambiarEstado(pcb, internal.EstadoRunning)
	if err := s.Tabla.SetRunningPCB(pcb); err != nil {
		return s.violacion(err)
	}
	s.Dispatcher.Load(pcb)
	return nil
}
