package cpu

import (
	"context"
	"log/slog"
	"time"

	"github.com/cpu-warriors/so-emulador/utils/log"
)

type Suscriptor interface {
	Tick(ctx context.Context) error
}

type trabajo struct {
	f         func(ctx context.Context) error
	resultado chan error
}

// Reloj es el único hilo que toca el hardware y el kernel: los ticks y cualquier trabajo externo
// (pedidos HTTP, fines de IO remotos) se ejecutan de a uno en su loop.
type Reloj struct {
	Intervalo    time.Duration
	Log          *slog.Logger
	suscriptores []Suscriptor
	trabajos     chan trabajo
	ticks        int
}

func NewReloj(intervalo time.Duration, logger *slog.Logger, suscriptores ...Suscriptor) *Reloj {
	return &Reloj{
		Intervalo:    intervalo,
		Log:          logger,
		suscriptores: suscriptores,
		trabajos:     make(chan trabajo),
	}
}

func (r *Reloj) Ticks() int {
	return r.ticks
}

// Tick avisa a los suscriptores en orden. Corta en el primer error.
func (r *Reloj) Tick(ctx context.Context) error {
	r.ticks++
	for _, s := range r.suscriptores {
		if err := s.Tick(ctx); err != nil {
			r.Log.Error("Error en tick del reloj",
				log.ErrAttr(err),
				log.IntAttr("tick", r.ticks),
			)
			return err
		}
	}
	return nil
}

// Iniciar corre el loop hasta que se cancele el contexto, un tick falle o detener devuelva true.
func (r *Reloj) Iniciar(ctx context.Context, detener func() bool) error {
	intervalo := r.Intervalo
	if intervalo <= 0 {
		intervalo = time.Millisecond
	}
	ticker := time.NewTicker(intervalo)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-r.trabajos:
			t.resultado <- t.f(ctx)
		case <-ticker.C:
			if err := r.Tick(ctx); err != nil {
				return err
			}
			if detener != nil && detener() {
				r.Log.Debug("Reloj detenido", log.IntAttr("ticks", r.ticks))
				return nil
			}
		}
	}
}

// Ejecutar corre f dentro del loop del reloj y espera su resultado.
func (r *Reloj) Ejecutar(ctx context.Context, f func(ctx context.Context) error) error {
	t := trabajo{f: f, resultado: make(chan error, 1)}
	select {
	case r.trabajos <- t:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.resultado:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
