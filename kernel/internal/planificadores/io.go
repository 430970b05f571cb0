package planificadores

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/io"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

type operacionIO struct {
	PID         int
	Instruccion internal.Instruccion
}

// IoDeviceController serializa los pedidos al dispositivo. La cola de espera es FIFO
// sin importar la prioridad de los procesos.
type IoDeviceController struct {
	Log         *slog.Logger
	dispositivo io.Dispositivo
	colaEspera  []operacionIO
	actual      *operacionIO
}

func NewIoDeviceController(dispositivo io.Dispositivo, logger *slog.Logger) *IoDeviceController {
	return &IoDeviceController{
		Log:         logger,
		dispositivo: dispositivo,
		colaEspera:  make([]operacionIO, 0),
	}
}

// Request encola el pedido y, si el dispositivo está libre, lo pone a ejecutar.
// Un error del dispositivo deja el pedido en la cola.
func (c *IoDeviceController) Request(ctx context.Context, pid int, instruccion internal.Instruccion) error {
	c.colaEspera = append(c.colaEspera, operacionIO{PID: pid, Instruccion: instruccion})

	c.Log.Debug("Pedido de IO encolado",
		log.IntAttr("pid", pid),
		log.StringAttr("dispositivo", c.dispositivo.ID()),
		log.IntAttr("en_espera", len(c.colaEspera)),
	)

	return c.cargarSiCorresponde(ctx)
}

// Completed devuelve el pid de la operación que terminó y carga la siguiente.
// Sin operación en curso devuelve ok en false y no toca la cola. Si la siguiente
// no se pudo cargar, el pid devuelto igual es válido y la operación sigue en espera.
func (c *IoDeviceController) Completed(ctx context.Context) (pid int, ok bool, err error) {
	if c.actual == nil {
		return 0, false, nil
	}

	pid = c.actual.PID
	c.actual = nil

	if err := c.cargarSiCorresponde(ctx); err != nil {
		return pid, true, err
	}
	return pid, true, nil
}

// Actual devuelve el pid de la operación en curso.
func (c *IoDeviceController) Actual() (int, bool) {
	if c.actual == nil {
		return 0, false
	}
	return c.actual.PID, true
}

func (c *IoDeviceController) PidsEnEspera() []int {
	pids := make([]int, 0, len(c.colaEspera))
	for _, op := range c.colaEspera {
		pids = append(pids, op.PID)
	}
	return pids
}

func (c *IoDeviceController) cargarSiCorresponde(ctx context.Context) error {
	if c.actual != nil || len(c.colaEspera) == 0 || !c.dispositivo.IsIdle() {
		return nil
	}

	siguiente := c.colaEspera[0]
	if err := c.dispositivo.Execute(ctx, siguiente.PID, siguiente.Instruccion); err != nil {
		c.Log.Error("No se pudo iniciar la operación de IO",
			log.ErrAttr(err),
			log.IntAttr("pid", siguiente.PID),
		)
		return fmt.Errorf("iniciar IO del pid %d: %w", siguiente.PID, err)
	}

	c.colaEspera = c.colaEspera[1:]
	c.actual = &siguiente
	return nil
}
