package planificadores

import (
	"context"
	"fmt"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

func (s *Service) manejarIoIn(ctx context.Context, i irq.IRQ) error {
	instruccion, ok := i.Parametros.(internal.Instruccion)
	if !ok {
		return fmt.Errorf("%w: IO_IN con %T", ErrParametrosInvalidos, i.Parametros)
	}

	pcb := s.Tabla.RunningPCB()
	if pcb == nil {
		return s.violacion(fmt.Errorf("%w: IO_IN", ErrSinProcesoEnEjecucion))
	}

	s.Dispatcher.Save(pcb)
	s.cambiarEstado(pcb, internal.EstadoWaiting)
	if err := s.Tabla.SetRunningPCB(nil); err != nil {
		return err
	}

	//Log obligatorio: Motivo de bloqueo
	s.Log.Info(fmt.Sprintf("## (%d) - Bloqueado por IO", pcb.PID),
		log.IntAttr("pc", pcb.PC),
	)

	errIO := s.IoController.Request(ctx, pcb.PID, instruccion)
	if err := s.ponerProximoEnRunning(); err != nil {
		return err
	}
	return errIO
}

func (s *Service) manejarIoOut(ctx context.Context, _ irq.IRQ) error {
	pid, ok, errIO := s.IoController.Completed(ctx)
	if !ok {
		if errIO != nil {
			return errIO
		}
		s.Log.Warn("Fin de IO sin operación en curso")
		return nil
	}

	pcb, existe := s.Tabla.Get(pid)
	if !existe {
		return s.violacion(fmt.Errorf("%w: fin de IO del pid %d", internal.ErrProcesoInexistente, pid))
	}

	//Log obligatorio: Fin de IO
	s.Log.Info(fmt.Sprintf("## (%d) finalizó IO y pasa a READY", pid))

	if err := s.admitirListo(pcb); err != nil {
		return err
	}
	return errIO
}
