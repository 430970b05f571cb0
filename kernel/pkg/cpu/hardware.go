package cpu

import (
	"log/slog"
	"time"

	"github.com/cpu-warriors/so-emulador/kernel/pkg/io"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/memoria"
)

type Config struct {
	TamanioMemoria int
	Quantum        int
	Intervalo      time.Duration
}

// Hardware agrupa el hardware simulado que usa el kernel. Reemplaza a un singleton global:
// el kernel lo recibe en su constructor.
type Hardware struct {
	Cpu         *Cpu
	MMU         *MMU
	Timer       *Timer
	Memoria     *memoria.Memoria
	Vector      *irq.Vector
	Dispositivo io.Dispositivo
	Reloj       *Reloj
}

// NuevoHardware arma el hardware. nuevoDispositivo recibe el vector para poder avisar los fines
// de IO; si el dispositivo es un Suscriptor se engancha al reloj antes que el timer y la CPU.
func NuevoHardware(cfg Config, logger *slog.Logger, nuevoDispositivo func(*irq.Vector) io.Dispositivo) *Hardware {
	vector := irq.NuevoVector(logger)
	mem := memoria.NewMemoria(cfg.TamanioMemoria, logger)
	mmu := &MMU{}
	cpu := NewCpu(mmu, mem, vector, logger)
	timer := NewTimer(cfg.Quantum, cpu, vector)
	dispositivo := nuevoDispositivo(vector)

	suscriptores := make([]Suscriptor, 0, 3)
	if s, ok := dispositivo.(Suscriptor); ok {
		suscriptores = append(suscriptores, s)
	}
	suscriptores = append(suscriptores, timer, cpu)

	return &Hardware{
		Cpu:         cpu,
		MMU:         mmu,
		Timer:       timer,
		Memoria:     mem,
		Vector:      vector,
		Dispositivo: dispositivo,
		Reloj:       NewReloj(cfg.Intervalo, logger, suscriptores...),
	}
}
