package internal

import (
	"time"
)

const (
	EstadoNew        Estado = "NEW"
	EstadoReady      Estado = "READY"
	EstadoRunning    Estado = "RUNNING"
	EstadoWaiting    Estado = "WAITING"
	EstadoTerminated Estado = "TERMINATED"
)

type Estado string

// Estados en el orden en que se loguean las métricas.
var Estados = []Estado{EstadoNew, EstadoReady, EstadoRunning, EstadoWaiting, EstadoTerminated}

// ahora se reemplaza en los tests para tener tiempos deterministas.
var ahora = time.Now

type EstadoTiempo struct {
	TiempoInicio    time.Time     `json:"tiempo_inicio"`
	TiempoAcumulado time.Duration `json:"tiempo"`
}

type PCB struct {
	PID            int                      `json:"pid"`
	Programa       *Programa                `json:"-"`
	Path           string                   `json:"path"`
	Estado         Estado                   `json:"estado"`
	PC             int                      `json:"pc"`
	Base           int                      `json:"base"`
	Limite         int                      `json:"limite"`
	Prioridad      int                      `json:"prioridad"`
	MetricasEstado map[Estado]int           `json:"metricas_estado"`
	MetricasTiempo map[Estado]*EstadoTiempo `json:"metricas_tiempo"`
}

// NuevoPCB crea el PCB de un programa ya cargado en memoria a partir de base.
// El límite es la cantidad de instrucciones - 1 y el proceso arranca en NEW con pc 0.
func NuevoPCB(pid int, programa *Programa, base, prioridad int) *PCB {
	pcb := &PCB{
		PID:            pid,
		Programa:       programa,
		Path:           programa.Nombre(),
		Base:           base,
		Limite:         programa.Len() - 1,
		Prioridad:      prioridad,
		MetricasEstado: make(map[Estado]int),
		MetricasTiempo: make(map[Estado]*EstadoTiempo),
	}
	pcb.entrarEn(EstadoNew)
	return pcb
}

// CambiarEstado pasa el PCB al nuevo estado actualizando sus métricas y devuelve el estado anterior.
func (p *PCB) CambiarEstado(nuevo Estado) Estado {
	anterior := p.Estado
	if t := p.MetricasTiempo[anterior]; t != nil {
		t.TiempoAcumulado += ahora().Sub(t.TiempoInicio)
	}
	p.entrarEn(nuevo)
	return anterior
}

func (p *PCB) entrarEn(estado Estado) {
	p.Estado = estado
	if p.MetricasTiempo[estado] == nil {
		p.MetricasTiempo[estado] = &EstadoTiempo{}
	}
	p.MetricasTiempo[estado].TiempoInicio = ahora()
	p.MetricasEstado[estado]++
}

// TiempoEn devuelve el tiempo acumulado en el estado. El estado actual no suma hasta que se abandona.
func (p *PCB) TiempoEn(estado Estado) time.Duration {
	if t := p.MetricasTiempo[estado]; t != nil {
		return t.TiempoAcumulado
	}
	return 0
}

// Clonar devuelve una copia del PCB que no comparte las métricas con el original.
func (p *PCB) Clonar() PCB {
	copia := *p
	copia.MetricasEstado = make(map[Estado]int, len(p.MetricasEstado))
	for estado, veces := range p.MetricasEstado {
		copia.MetricasEstado[estado] = veces
	}
	copia.MetricasTiempo = make(map[Estado]*EstadoTiempo, len(p.MetricasTiempo))
	for estado, t := range p.MetricasTiempo {
		tiempo := *t
		copia.MetricasTiempo[estado] = &tiempo
	}
	return copia
}
