package memoria

import (
	"testing"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoria_PutGet(t *testing.T) {
	m := NewMemoria(4, log.BuildLogger("error"))

	require.NoError(t, m.Put(0, internal.InstruccionCPU))
	require.NoError(t, m.Put(3, internal.InstruccionExit))

	got, err := m.Get(3)
	require.NoError(t, err)
	assert.Equal(t, internal.InstruccionExit, got)

	assert.ErrorIs(t, m.Put(4, internal.InstruccionIO), ErrDireccionInvalida)
	_, err = m.Get(-1)
	assert.ErrorIs(t, err, ErrDireccionInvalida)
}

func TestMemoria_Leer(t *testing.T) {
	m := NewMemoria(5, log.BuildLogger("error"))
	for i, instr := range []internal.Instruccion{"CPU", "IO", "EXIT", "CPU", "EXIT"} {
		require.NoError(t, m.Put(i, instr))
	}

	tests := []struct {
		name    string
		base    int
		limite  int
		want    []internal.Instruccion
		wantErr bool
	}{
		{name: "primer programa", base: 0, limite: 2, want: []internal.Instruccion{"CPU", "IO", "EXIT"}},
		{name: "segundo programa", base: 3, limite: 1, want: []internal.Instruccion{"CPU", "EXIT"}},
		{name: "fuera de rango", base: 3, limite: 2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Leer(tt.base, tt.limite)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDireccionInvalida)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
