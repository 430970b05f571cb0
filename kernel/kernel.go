package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cpu-warriors/so-emulador/kernel/cmd/api"
	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/cpu-warriors/so-emulador/utils/tracing"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	configFile := "./configs/config.json"
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	cfg, err := api.CargarConfig(configFile)
	if err != nil {
		panic(err)
	}

	h, err := api.NewHandler(cfg)
	if err != nil {
		panic(err)
	}

	shutdownTracing, err := tracing.Init("kernel", version, cfg.TracingOutput)
	if err != nil {
		h.Log.Error("Error al iniciar el tracing", log.ErrAttr(err))
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				h.Log.Error("Error al cerrar el tracing", log.ErrAttr(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.PortKernel > 0 {
		server := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.IpKernel, cfg.PortKernel),
			Handler: h.Router(),
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				h.Log.Error("Error starting server", log.ErrAttr(err))
				stop()
			}
		}()
		defer func() {
			_ = server.Shutdown(context.Background())
		}()
	}

	go func() {
		if err := h.AdmitirProgramas(ctx); err != nil {
			h.Log.Error("Error al admitir los programas iniciales", log.ErrAttr(err))
			stop()
		}
	}()

	if err := h.Correr(ctx); err != nil && !errors.Is(err, context.Canceled) {
		h.Log.Error("El kernel se detuvo por un error", log.ErrAttr(err))
		return err
	}

	h.Log.Info("## Fin de la ejecución del kernel")
	return nil
}
