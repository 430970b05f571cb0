package planificadores

import (
	"testing"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcbListo(pid, prioridad int) *internal.PCB {
	pcb := internal.NuevoPCB(pid, internal.NuevoPrograma("prg", internal.CPU(1)), 0, prioridad)
	pcb.CambiarEstado(internal.EstadoReady)
	return pcb
}

func vaciar(t *testing.T, s Scheduler) []int {
	pids := make([]int, 0)
	for s.Len() > 0 {
		pid, err := s.GetNext()
		require.NoError(t, err)
		pids = append(pids, pid)
	}
	return pids
}

func TestNuevoScheduler(t *testing.T) {
	tests := []struct {
		name         string
		algoritmo    string
		expropiativo bool
		wantErr      bool
	}{
		{name: "FIFO", algoritmo: "FIFO"},
		{name: "Prioridad", algoritmo: "PRIORIDAD"},
		{name: "Prioridad expropiativo", algoritmo: "PRIORIDAD_EXPROPIATIVO", expropiativo: true},
		{name: "Round robin en minúscula", algoritmo: "rr"},
		{name: "Desconocido", algoritmo: "SJF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NuevoScheduler(tt.algoritmo)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAlgoritmoDesconocido)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expropiativo, s.IsPreemptive())
		})
	}
}

func TestUsaQuantum(t *testing.T) {
	assert.True(t, UsaQuantum(AlgoritmoRoundRobin))
	assert.False(t, UsaQuantum(AlgoritmoFIFO))
	assert.False(t, UsaQuantum(AlgoritmoPrioridadExpropiativo))
}

func TestScheduler_Orden(t *testing.T) {
	// pid -> prioridad, en orden de admisión
	admitidos := [][2]int{{1, 3}, {2, 1}, {3, 2}, {4, 1}, {5, 3}}

	tests := []struct {
		name      string
		algoritmo string
		want      []int
	}{
		{name: "FIFO respeta la llegada", algoritmo: AlgoritmoFIFO, want: []int{1, 2, 3, 4, 5}},
		{name: "RR respeta la llegada", algoritmo: AlgoritmoRoundRobin, want: []int{1, 2, 3, 4, 5}},
		{name: "Prioridad estable", algoritmo: AlgoritmoPrioridad, want: []int{2, 4, 3, 1, 5}},
		{name: "Prioridad expropiativo estable", algoritmo: AlgoritmoPrioridadExpropiativo, want: []int{2, 4, 3, 1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NuevoScheduler(tt.algoritmo)
			require.NoError(t, err)

			for _, a := range admitidos {
				require.NoError(t, s.Add(pcbListo(a[0], a[1])))
			}
			assert.Equal(t, tt.want, s.Pids())
			assert.Equal(t, tt.want, vaciar(t, s))
		})
	}
}

func TestScheduler_PrioridadIntercalada(t *testing.T) {
	s, err := NuevoScheduler(AlgoritmoPrioridad)
	require.NoError(t, err)

	require.NoError(t, s.Add(pcbListo(1, 2)))
	require.NoError(t, s.Add(pcbListo(2, 2)))
	pid, err := s.GetNext()
	require.NoError(t, err)
	assert.Equal(t, 1, pid)

	require.NoError(t, s.Add(pcbListo(3, 0)))
	require.NoError(t, s.Add(pcbListo(1, 2)))
	assert.Equal(t, []int{3, 2, 1}, vaciar(t, s))
}

func TestScheduler_AddFueraDeReady(t *testing.T) {
	for _, algoritmo := range []string{AlgoritmoFIFO, AlgoritmoPrioridad, AlgoritmoPrioridadExpropiativo, AlgoritmoRoundRobin} {
		t.Run(algoritmo, func(t *testing.T) {
			s, err := NuevoScheduler(algoritmo)
			require.NoError(t, err)

			pcb := internal.NuevoPCB(1, internal.NuevoPrograma("prg"), 0, 0)
			assert.ErrorIs(t, s.Add(pcb), ErrEstadoInvalido)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestScheduler_GetNextVacia(t *testing.T) {
	for _, algoritmo := range []string{AlgoritmoFIFO, AlgoritmoPrioridad, AlgoritmoPrioridadExpropiativo, AlgoritmoRoundRobin} {
		t.Run(algoritmo, func(t *testing.T) {
			s, err := NuevoScheduler(algoritmo)
			require.NoError(t, err)

			_, err = s.GetNext()
			assert.ErrorIs(t, err, ErrColaVacia)
		})
	}
}
