package planificadores

import (
	"fmt"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

// DumpProceso devuelve la ventana de memoria [base, base+limite] del proceso.
func (s *Service) DumpProceso(pid int) ([]internal.Instruccion, error) {
	pcb, ok := s.Tabla.Get(pid)
	if !ok {
		return nil, fmt.Errorf("%w: pid %d", internal.ErrProcesoInexistente, pid)
	}

	//Log obligatorio: Dump
	s.Log.Info(fmt.Sprintf("## (%d) - Memory Dump solicitado", pid),
		log.IntAttr("base", pcb.Base),
		log.IntAttr("limite", pcb.Limite),
	)

	return s.Hardware.Memoria.Leer(pcb.Base, pcb.Limite)
}
