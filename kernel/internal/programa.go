package internal

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	InstruccionCPU  Instruccion = "CPU"
	InstruccionIO   Instruccion = "IO"
	InstruccionExit Instruccion = "EXIT"
)

type Instruccion string

func (i Instruccion) EsExit() bool {
	return i == InstruccionExit
}

// CPU devuelve n ciclos de CPU.
func CPU(n int) []Instruccion {
	instrucciones := make([]Instruccion, 0, n)
	for i := 0; i < n; i++ {
		instrucciones = append(instrucciones, InstruccionCPU)
	}
	return instrucciones
}

func IO() []Instruccion {
	return []Instruccion{InstruccionIO}
}

func EXIT() []Instruccion {
	return []Instruccion{InstruccionExit}
}

// ParsearInstruccion interpreta una línea de programa: "CPU <n>", "CPU", "IO" o "EXIT".
func ParsearInstruccion(linea string) ([]Instruccion, error) {
	campos := strings.Fields(strings.ToUpper(linea))
	if len(campos) == 0 {
		return nil, fmt.Errorf("instrucción vacía")
	}

	switch Instruccion(campos[0]) {
	case InstruccionCPU:
		if len(campos) == 1 {
			return CPU(1), nil
		}
		n, err := strconv.Atoi(campos[1])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("cantidad de ciclos inválida en %q", linea)
		}
		return CPU(n), nil
	case InstruccionIO:
		return IO(), nil
	case InstruccionExit:
		return EXIT(), nil
	default:
		return nil, fmt.Errorf("instrucción desconocida %q", linea)
	}
}

// Programa emula un programa compilado: una secuencia de instrucciones que siempre termina en EXIT.
type Programa struct {
	nombre        string
	instrucciones []Instruccion
}

func NuevoPrograma(nombre string, grupos ...[]Instruccion) *Programa {
	return &Programa{
		nombre:        nombre,
		instrucciones: Expandir(grupos...),
	}
}

// Expandir aplana los grupos de instrucciones y agrega un EXIT final si no lo tienen.
func Expandir(grupos ...[]Instruccion) []Instruccion {
	expandido := make([]Instruccion, 0)
	for _, grupo := range grupos {
		expandido = append(expandido, grupo...)
	}

	if len(expandido) == 0 || !expandido[len(expandido)-1].EsExit() {
		expandido = append(expandido, InstruccionExit)
	}

	return expandido
}

func (p *Programa) Nombre() string {
	return p.nombre
}

// Instrucciones devuelve una copia de las instrucciones del programa.
func (p *Programa) Instrucciones() []Instruccion {
	return append([]Instruccion(nil), p.instrucciones...)
}

func (p *Programa) Len() int {
	return len(p.instrucciones)
}

func (p *Programa) AddInstr(instruccion Instruccion) {
	p.instrucciones = append(p.instrucciones, instruccion)
}

func (p *Programa) String() string {
	return fmt.Sprintf("Programa(%s, %v)", p.nombre, p.instrucciones)
}
