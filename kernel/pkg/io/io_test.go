package io

import (
	"context"
	"testing"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispositivoLocal(t *testing.T) {
	logger := log.BuildLogger("error")
	vector := irq.NuevoVector(logger)

	finalizados := make([]int, 0)
	vector.Register(irq.InterrupcionIoOut, irq.HandlerFunc(func(_ context.Context, i irq.IRQ) error {
		finalizados = append(finalizados, i.Parametros.(int))
		return nil
	}))

	d := NuevoDispositivoLocal("printer", 2, vector, logger)
	ctx := context.Background()

	assert.True(t, d.IsIdle())
	require.NoError(t, d.Tick(ctx), "ocioso no hace nada")

	require.NoError(t, d.Execute(ctx, 7, internal.InstruccionIO))
	assert.False(t, d.IsIdle())
	assert.ErrorIs(t, d.Execute(ctx, 8, internal.InstruccionIO), ErrDispositivoOcupado)

	require.NoError(t, d.Tick(ctx))
	assert.False(t, d.IsIdle())
	assert.Empty(t, finalizados)

	require.NoError(t, d.Tick(ctx))
	assert.True(t, d.IsIdle())
	assert.Equal(t, []int{7}, finalizados)
}
