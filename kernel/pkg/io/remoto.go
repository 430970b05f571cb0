package io

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/google/uuid"
)

var ErrSolicitudDesconocida = errors.New("fin de IO de una solicitud desconocida")

// Usleep es el pedido que recibe el módulo IO en /kernel/usleep.
type Usleep struct {
	ID          string `json:"id"`
	PID         int    `json:"pid"`
	Instruccion string `json:"instruccion"`
	TiempoSleep int    `json:"tiempo_sleep"`
}

// FinIO es el aviso que manda el módulo IO al kernel en /io/peticion-finalizada.
type FinIO struct {
	ID  string `json:"id"`
	PID int    `json:"pid"`
}

// DispositivoRemoto delega cada operación en el módulo IO por HTTP. El fin de la operación llega
// como un FinIO que hay que pasar a Completar antes de levantar IO_OUT.
type DispositivoRemoto struct {
	IP          string
	Puerto      int
	TiempoSleep int
	HttpClient  *http.Client
	Log         *slog.Logger
	actual      string
}

func NuevoDispositivoRemoto(ip string, puerto, tiempoSleep int, logger *slog.Logger) *DispositivoRemoto {
	return &DispositivoRemoto{
		IP:          ip,
		Puerto:      puerto,
		TiempoSleep: tiempoSleep,
		HttpClient:  &http.Client{},
		Log:         logger,
	}
}

func (d *DispositivoRemoto) ID() string {
	return fmt.Sprintf("%s:%d", d.IP, d.Puerto)
}

func (d *DispositivoRemoto) IsIdle() bool {
	return d.actual == ""
}

// SolicitudActual devuelve el id de la operación en curso, vacío si está ocioso.
func (d *DispositivoRemoto) SolicitudActual() string {
	return d.actual
}

// Execute envía el usleep al módulo IO
func (d *DispositivoRemoto) Execute(ctx context.Context, pid int, instruccion internal.Instruccion) error {
	if !d.IsIdle() {
		return fmt.Errorf("%w: %s con solicitud %s", ErrDispositivoOcupado, d.ID(), d.actual)
	}

	usleep := &Usleep{
		ID:          uuid.New().String(),
		PID:         pid,
		Instruccion: string(instruccion),
		TiempoSleep: d.TiempoSleep,
	}

	body, err := json.Marshal(usleep)
	if err != nil {
		return fmt.Errorf("serializar usleep: %w", err)
	}

	url := fmt.Sprintf("http://%s:%d/kernel/usleep", d.IP, d.Puerto)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.HttpClient.Do(req)
	if err != nil {
		d.Log.Error("Error al enviar el usleep al IO",
			log.ErrAttr(err),
			log.IntAttr("pid", pid),
		)
		return fmt.Errorf("enviar usleep a %s: %w", d.ID(), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("el módulo IO respondió con status %d", resp.StatusCode)
	}

	d.actual = usleep.ID
	d.Log.Debug("Usleep enviado al IO",
		log.StringAttr("id", usleep.ID),
		log.IntAttr("pid", pid),
		log.IntAttr("status_code", resp.StatusCode),
	)
	return nil
}

// Completar libera el dispositivo si el aviso corresponde a la operación en curso.
func (d *DispositivoRemoto) Completar(fin FinIO) error {
	if d.actual == "" || fin.ID != d.actual {
		return fmt.Errorf("%w: %s (pid %d)", ErrSolicitudDesconocida, fin.ID, fin.PID)
	}
	d.actual = ""
	return nil
}
