package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cpu-warriors/so-emulador/utils/config"
	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Log        *slog.Logger
	Config     *Config
	HttpClient *http.Client
	// dormir simula la duración de la operación; los tests la reemplazan.
	dormir func(time.Duration)
	// dispositivo atiende de a una operación por vez.
	dispositivo sync.Mutex
	pendientes  sync.WaitGroup
}

func CargarConfig(configFile string) (*Config, error) {
	return config.IniciarConfiguracion[Config](configFile)
}

func NewHandler(cfg *Config) *Handler {
	return &Handler{
		Log:    log.BuildLogger(cfg.LogLevel),
		Config: cfg,
		HttpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		dormir: time.Sleep,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/kernel/usleep", h.EjecutarPeticion)
	return r
}

// Esperar bloquea hasta que terminen las operaciones aceptadas.
func (h *Handler) Esperar() {
	h.pendientes.Wait()
}
