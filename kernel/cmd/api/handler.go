package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cpu-warriors/so-emulador/kernel/internal/planificadores"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/cpu"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/io"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/programas"
	"github.com/cpu-warriors/so-emulador/utils/config"
	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/go-chi/chi/v5"
	"github.com/viant/afs"
)

type Handler struct {
	Log        *slog.Logger
	Config     *Config
	Kernel     *planificadores.Service
	FileSystem *programas.FileSystem
	remoto     *io.DispositivoRemoto
	admitidos  atomic.Bool
}

func CargarConfig(configFile string) (*Config, error) {
	return config.IniciarConfiguracion[Config](configFile)
}

// NewHandler arma el hardware y el kernel según la configuración.
func NewHandler(cfg *Config) (*Handler, error) {
	logger := log.BuildLogger(cfg.LogLevel)

	scheduler, err := planificadores.NuevoScheduler(cfg.SchedulerAlgorithm)
	if err != nil {
		logger.Error("Algoritmo de planificación inválido",
			log.ErrAttr(err),
			log.StringAttr("scheduler_algorithm", cfg.SchedulerAlgorithm),
		)
		return nil, err
	}

	quantum := 0
	if planificadores.UsaQuantum(cfg.SchedulerAlgorithm) {
		if cfg.Quantum <= 0 {
			return nil, fmt.Errorf("el algoritmo %s necesita un quantum positivo", cfg.SchedulerAlgorithm)
		}
		quantum = cfg.Quantum
	}

	h := &Handler{
		Log:        logger,
		Config:     cfg,
		FileSystem: programas.NewFileSystem(afs.New(), logger),
	}

	var nuevoDispositivo func(*irq.Vector) io.Dispositivo
	switch cfg.IoMode {
	case ModoIORemoto:
		h.remoto = io.NuevoDispositivoRemoto(cfg.IpIo, cfg.PortIo, cfg.IoDelay, logger)
		nuevoDispositivo = func(*irq.Vector) io.Dispositivo { return h.remoto }
	case ModoIOLocal, "":
		nuevoDispositivo = func(vector *irq.Vector) io.Dispositivo {
			return io.NuevoDispositivoLocal("disco", cfg.IoDelay, vector, logger)
		}
	default:
		return nil, fmt.Errorf("io_mode desconocido: %q", cfg.IoMode)
	}

	hw := cpu.NuevoHardware(cpu.Config{
		TamanioMemoria: cfg.MemorySize,
		Quantum:        quantum,
		Intervalo:      time.Duration(cfg.ClockInterval) * time.Millisecond,
	}, logger, nuevoDispositivo)

	h.Kernel = planificadores.NewKernel(hw, scheduler, logger)

	logger.Debug("Kernel inicializado",
		log.StringAttr("scheduler_algorithm", cfg.SchedulerAlgorithm),
		log.IntAttr("quantum", quantum),
		log.IntAttr("memory_size", cfg.MemorySize),
		log.StringAttr("io_mode", cfg.IoMode),
	)
	return h, nil
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/kernel/procesos", h.CrearProceso)
	r.Get("/kernel/procesos", h.ListarProcesos)
	r.Get("/kernel/procesos/{pid}/dump", h.DumpProceso)
	r.Post("/io/peticion-finalizada", h.FinalizarPeticionIO)
	return r
}

// Correr ejecuta el reloj. Sin API habilitada se detiene cuando, admitidos los programas
// iniciales, terminan todos los procesos.
func (h *Handler) Correr(ctx context.Context) error {
	var detener func() bool
	if h.Config.PortKernel <= 0 {
		detener = func() bool {
			return h.admitidos.Load() && (h.Kernel.Tabla.Len() == 0 || h.Kernel.Terminado())
		}
	}
	return h.Kernel.Hardware.Reloj.Iniciar(ctx, detener)
}

// ejecutar corre f en el loop del reloj, el único que toca el kernel.
func (h *Handler) ejecutar(ctx context.Context, f func(ctx context.Context) error) error {
	return h.Kernel.Hardware.Reloj.Ejecutar(ctx, f)
}

// AdmitirProgramas admite los programas de la configuración en orden.
func (h *Handler) AdmitirProgramas(ctx context.Context) error {
	for _, inicial := range h.Config.Programas {
		programa, err := h.FileSystem.Read(ctx, inicial.Path)
		if err != nil {
			h.Log.Error("No se pudo leer el programa",
				log.ErrAttr(err),
				log.StringAttr("path", inicial.Path),
			)
			return err
		}

		err = h.ejecutar(ctx, func(ctx context.Context) error {
			_, err := h.Kernel.Run(ctx, programa, inicial.Prioridad)
			return err
		})
		if err != nil {
			return fmt.Errorf("admitir %s: %w", inicial.Path, err)
		}
	}
	h.admitidos.Store(true)
	return nil
}
