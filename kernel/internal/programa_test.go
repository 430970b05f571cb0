package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandir(t *testing.T) {
	tests := []struct {
		name   string
		grupos [][]Instruccion
		want   []Instruccion
	}{
		{
			name:   "agrega EXIT si falta",
			grupos: [][]Instruccion{CPU(2), IO(), CPU(1)},
			want:   []Instruccion{InstruccionCPU, InstruccionCPU, InstruccionIO, InstruccionCPU, InstruccionExit},
		},
		{
			name:   "no duplica EXIT",
			grupos: [][]Instruccion{CPU(1), EXIT()},
			want:   []Instruccion{InstruccionCPU, InstruccionExit},
		},
		{
			name:   "programa vacío",
			grupos: nil,
			want:   []Instruccion{InstruccionExit},
		},
		{
			name:   "EXIT en el medio no cuenta como final",
			grupos: [][]Instruccion{EXIT(), IO()},
			want:   []Instruccion{InstruccionExit, InstruccionIO, InstruccionExit},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expandir(tt.grupos...)
			assert.Equal(t, tt.want, got)
			assert.True(t, got[len(got)-1].EsExit())
		})
	}
}

func TestPrograma(t *testing.T) {
	prg := NuevoPrograma("prg1", CPU(2), IO(), CPU(3), IO(), CPU(2))

	assert.Equal(t, "prg1", prg.Nombre())
	assert.Equal(t, 10, prg.Len())

	// la copia devuelta no modifica el programa
	instrucciones := prg.Instrucciones()
	instrucciones[0] = InstruccionIO
	assert.Equal(t, InstruccionCPU, prg.Instrucciones()[0])

	prg.AddInstr(InstruccionCPU)
	assert.Equal(t, 11, prg.Len())
	assert.Equal(t, InstruccionCPU, prg.Instrucciones()[10])
}

func TestParsearInstruccion(t *testing.T) {
	tests := []struct {
		linea   string
		want    []Instruccion
		wantErr bool
	}{
		{linea: "CPU 3", want: CPU(3)},
		{linea: "cpu", want: CPU(1)},
		{linea: "IO", want: IO()},
		{linea: " exit ", want: EXIT()},
		{linea: "CPU cero", wantErr: true},
		{linea: "CPU 0", wantErr: true},
		{linea: "JMP 2", wantErr: true},
		{linea: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.linea, func(t *testing.T) {
			got, err := ParsearInstruccion(tt.linea)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
