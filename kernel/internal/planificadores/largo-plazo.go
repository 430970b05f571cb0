package planificadores

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/memoria"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

// Loader copia los programas a memoria uno detrás de otro. Las direcciones no se reutilizan.
type Loader struct {
	Log       *slog.Logger
	memoria   *memoria.Memoria
	siguiente int
}

func NewLoader(mem *memoria.Memoria, logger *slog.Logger) *Loader {
	return &Loader{
		Log:     logger,
		memoria: mem,
	}
}

// Load devuelve la dirección base donde quedó el programa.
func (l *Loader) Load(programa *internal.Programa) (int, error) {
	instrucciones := programa.Instrucciones()
	if l.siguiente+len(instrucciones) > l.memoria.Tamanio() {
		return 0, fmt.Errorf("%w: %s necesita %d celdas y quedan %d", memoria.ErrMemoriaInsuficiente,
			programa.Nombre(), len(instrucciones), l.memoria.Tamanio()-l.siguiente)
	}

	base := l.siguiente
	for i, instruccion := range instrucciones {
		if err := l.memoria.Put(base+i, instruccion); err != nil {
			return 0, err
		}
	}
	l.siguiente += len(instrucciones)

	l.Log.Debug("Programa cargado en memoria",
		log.StringAttr("programa", programa.Nombre()),
		log.IntAttr("base", base),
		log.IntAttr("tamanio", len(instrucciones)),
	)
	return base, nil
}

// Libre devuelve cuántas celdas quedan sin asignar.
func (l *Loader) Libre() int {
	return l.memoria.Tamanio() - l.siguiente
}

func (s *Service) manejarNew(_ context.Context, i irq.IRQ) error {
	params, ok := i.Parametros.(*ParametrosNew)
	if !ok || params.Programa == nil {
		return fmt.Errorf("%w: NEW con %T", ErrParametrosInvalidos, i.Parametros)
	}

	base, err := s.Loader.Load(params.Programa)
	if err != nil {
		s.Log.Error("No se pudo cargar el programa",
			log.ErrAttr(err),
			log.StringAttr("programa", params.Programa.Nombre()),
		)
		return err
	}

	pcb := internal.NuevoPCB(s.Tabla.NewPid(), params.Programa, base, params.Prioridad)
	if err := s.Tabla.Add(pcb); err != nil {
		return err
	}
	params.PID = pcb.PID

	//Log obligatorio: Creación de proceso
	s.Log.Info(fmt.Sprintf("## (%d) Se crea el proceso - Estado: NEW", pcb.PID),
		log.StringAttr("programa", pcb.Path),
		log.IntAttr("prioridad", pcb.Prioridad),
	)

	return s.admitirListo(pcb)
}

func (s *Service) manejarKill(_ context.Context, _ irq.IRQ) error {
	pcb := s.Tabla.RunningPCB()
	if pcb == nil {
		return s.violacion(fmt.Errorf("%w: KILL", ErrSinProcesoEnEjecucion))
	}

	s.Dispatcher.Save(pcb)
	s.cambiarEstado(pcb, internal.EstadoTerminated)
	if err := s.Tabla.SetRunningPCB(nil); err != nil {
		return err
	}

	//Log obligatorio: Fin de proceso
	s.Log.Info(fmt.Sprintf("## (%d) Finaliza el proceso", pcb.PID))
	s.logMetricas(pcb)

	return s.ponerProximoEnRunning()
}

func (s *Service) logMetricas(pcb *internal.PCB) {
	//Log obligatorio: Métricas de estado
	s.Log.Info(fmt.Sprintf("## (%d) - Métricas de estado: NEW %d %d, READY %d %d, RUNNING %d %d, WAITING %d %d, TERMINATED %d",
		pcb.PID,
		pcb.MetricasEstado[internal.EstadoNew], pcb.TiempoEn(internal.EstadoNew).Milliseconds(),
		pcb.MetricasEstado[internal.EstadoReady], pcb.TiempoEn(internal.EstadoReady).Milliseconds(),
		pcb.MetricasEstado[internal.EstadoRunning], pcb.TiempoEn(internal.EstadoRunning).Milliseconds(),
		pcb.MetricasEstado[internal.EstadoWaiting], pcb.TiempoEn(internal.EstadoWaiting).Milliseconds(),
		pcb.MetricasEstado[internal.EstadoTerminated],
	))
}
