package irq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/cpu-warriors/so-emulador/utils/tracing"
)

const (
	InterrupcionNew     Tipo = "NEW"
	InterrupcionKill    Tipo = "KILL"
	InterrupcionIoIn    Tipo = "IO_IN"
	InterrupcionIoOut   Tipo = "IO_OUT"
	InterrupcionTimeout Tipo = "TIMEOUT"
)

var (
	ErrHandlerNoRegistrado = errors.New("interrupción sin handler registrado")
	ErrReentrante          = errors.New("interrupción recibida mientras se atendía otra")
)

type Tipo string

type IRQ struct {
	Tipo       Tipo
	Parametros any
}

type Handler interface {
	Execute(ctx context.Context, irq IRQ) error
}

type HandlerFunc func(ctx context.Context, irq IRQ) error

func (f HandlerFunc) Execute(ctx context.Context, irq IRQ) error {
	return f(ctx, irq)
}

// Vector es el vector de interrupciones. Atiende una interrupción por vez y hasta completarla:
// quien la levanta desde varias goroutines debe serializar las llamadas (ver cpu.Reloj).
type Vector struct {
	Log        *slog.Logger
	mu         sync.RWMutex
	handlers   map[Tipo]Handler
	atendiendo atomic.Bool
}

func NuevoVector(logger *slog.Logger) *Vector {
	return &Vector{
		Log:      logger,
		handlers: make(map[Tipo]Handler),
	}
}

func (v *Vector) Register(tipo Tipo, handler Handler) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.handlers[tipo] = handler
}

// Handle atiende la interrupción de forma sincrónica. Un tipo sin handler es un error de
// configuración del kernel y no se reintenta.
func (v *Vector) Handle(ctx context.Context, interrupcion IRQ) (err error) {
	v.mu.RLock()
	handler, ok := v.handlers[interrupcion.Tipo]
	v.mu.RUnlock()

	if !ok {
		v.Log.Error("Interrupción sin handler registrado",
			log.StringAttr("irq", string(interrupcion.Tipo)),
		)
		return fmt.Errorf("%w: %s", ErrHandlerNoRegistrado, interrupcion.Tipo)
	}

	if !v.atendiendo.CompareAndSwap(false, true) {
		v.Log.Error("Interrupción reentrante",
			log.StringAttr("irq", string(interrupcion.Tipo)),
		)
		return fmt.Errorf("%w: %s", ErrReentrante, interrupcion.Tipo)
	}
	defer v.atendiendo.Store(false)

	ctx, span := tracing.StartSpan(ctx, "irq."+string(interrupcion.Tipo))
	span.WithString("irq.tipo", string(interrupcion.Tipo))
	defer func() { tracing.EndSpan(span, err) }()

	v.Log.Debug("Atendiendo interrupción",
		log.StringAttr("irq", string(interrupcion.Tipo)),
	)

	return handler.Execute(ctx, interrupcion)
}
