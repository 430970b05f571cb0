package api

import (
	"github.com/cpu-warriors/so-emulador/kernel/internal"
)

const (
	ModoIOLocal  = "local"
	ModoIORemoto = "remoto"
)

type Config struct {
	IpKernel           string            `json:"ip_kernel" yaml:"ip_kernel"`
	PortKernel         int               `json:"port_kernel" yaml:"port_kernel"`
	SchedulerAlgorithm string            `json:"scheduler_algorithm" yaml:"scheduler_algorithm"`
	Quantum            int               `json:"quantum" yaml:"quantum"`
	MemorySize         int               `json:"memory_size" yaml:"memory_size"`
	ClockInterval      int               `json:"clock_interval" yaml:"clock_interval"`
	IoMode             string            `json:"io_mode" yaml:"io_mode"`
	IoDelay            int               `json:"io_delay" yaml:"io_delay"`
	IpIo               string            `json:"ip_io" yaml:"ip_io"`
	PortIo             int               `json:"port_io" yaml:"port_io"`
	LogLevel           string            `json:"log_level" yaml:"log_level"`
	TracingOutput      string            `json:"tracing_output" yaml:"tracing_output"`
	Programas          []ProgramaInicial `json:"programas" yaml:"programas"`
}

// ProgramaInicial es un programa que se admite al bootear.
type ProgramaInicial struct {
	Path      string `json:"path" yaml:"path"`
	Prioridad int    `json:"prioridad" yaml:"prioridad"`
}

// CrearProceso es el cuerpo de POST /kernel/procesos. Con path se lee el programa del
// file system; si no, se arma con nombre e instrucciones.
type CrearProceso struct {
	Path          string   `json:"path"`
	Nombre        string   `json:"nombre"`
	Instrucciones []string `json:"instrucciones"`
	Prioridad     int      `json:"prioridad"`
}

type ProcesoCreado struct {
	PID int `json:"pid"`
}

type Dump struct {
	PID           int                    `json:"pid"`
	Instrucciones []internal.Instruccion `json:"instrucciones"`
}
