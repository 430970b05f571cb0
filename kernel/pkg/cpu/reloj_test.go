package cpu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type suscriptorPrueba struct {
	nombre string
	orden  *[]string
	err    error
}

func (s *suscriptorPrueba) Tick(context.Context) error {
	*s.orden = append(*s.orden, s.nombre)
	return s.err
}

func TestReloj_Tick(t *testing.T) {
	orden := make([]string, 0)
	boom := errors.New("boom")
	r := NewReloj(time.Millisecond, log.BuildLogger("error"),
		&suscriptorPrueba{nombre: "io", orden: &orden},
		&suscriptorPrueba{nombre: "timer", orden: &orden, err: boom},
		&suscriptorPrueba{nombre: "cpu", orden: &orden},
	)

	assert.ErrorIs(t, r.Tick(context.Background()), boom)
	assert.Equal(t, []string{"io", "timer"}, orden)
	assert.Equal(t, 1, r.Ticks())
}

func TestReloj_IniciarYEjecutar(t *testing.T) {
	orden := make([]string, 0)
	r := NewReloj(time.Millisecond, log.BuildLogger("error"), &suscriptorPrueba{nombre: "cpu", orden: &orden})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ejecutado := make(chan struct{})
	terminado := make(chan error, 1)
	go func() {
		terminado <- r.Iniciar(ctx, func() bool {
			select {
			case <-ejecutado:
				return true
			default:
				return false
			}
		})
	}()

	err := r.Ejecutar(ctx, func(context.Context) error {
		close(ejecutado)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, <-terminado)
	assert.GreaterOrEqual(t, r.Ticks(), 1)
}

func TestReloj_EjecutarDevuelveError(t *testing.T) {
	r := NewReloj(time.Hour, log.BuildLogger("error"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = r.Iniciar(ctx, nil) }()

	boom := errors.New("boom")
	assert.ErrorIs(t, r.Ejecutar(ctx, func(context.Context) error { return boom }), boom)
}

func TestReloj_EjecutarContextoCancelado(t *testing.T) {
	r := NewReloj(time.Hour, log.BuildLogger("error"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Ejecutar(ctx, func(context.Context) error { return nil }), context.Canceled)
}
