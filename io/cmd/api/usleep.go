package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cpu-warriors/so-emulador/kernel/pkg/io"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

// EjecutarPeticion acepta el usleep y responde en el momento. La espera y el aviso al kernel
// corren aparte porque el kernel está bloqueado esperando esta respuesta.
func (h *Handler) EjecutarPeticion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	usleep := io.Usleep{}

	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(&usleep)
	if err != nil {
		h.Log.ErrorContext(ctx, "Error al decodificar el usleep",
			log.ErrAttr(err),
		)
		http.Error(w, "Error al decodificar el usleep", http.StatusBadRequest)
		return
	}
	if usleep.ID == "" {
		http.Error(w, "id de solicitud no proporcionado", http.StatusBadRequest)
		return
	}

	if usleep.TiempoSleep <= 0 {
		usleep.TiempoSleep = h.Config.IoDelay
	}

	h.pendientes.Add(1)
	go h.atender(usleep)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) atender(usleep io.Usleep) {
	defer h.pendientes.Done()

	h.dispositivo.Lock()
	defer h.dispositivo.Unlock()

	//Log obligatorio: Inicio de IO
	//"## PID: <PID> - Inicio de IO - Tiempo: <TIEMPO_IO>"
	h.Log.Info(fmt.Sprintf("## PID: %d - Inicio de IO - Tiempo: %d", usleep.PID, usleep.TiempoSleep),
		log.StringAttr("id", usleep.ID),
		log.StringAttr("instruccion", usleep.Instruccion),
	)

	h.dormir(time.Duration(usleep.TiempoSleep) * time.Millisecond)

	//Log obligatorio: Fin de IO
	//"## PID: <PID> - Fin de IO".
	h.Log.Info(fmt.Sprintf("## PID: %d - Fin de IO", usleep.PID))

	if err := h.notificarKernelFinIO(usleep); err != nil {
		h.Log.Error("Error al notificar kernel fin de IO",
			log.ErrAttr(err),
			log.IntAttr("PID", usleep.PID),
		)
	}
}

// notificarKernelFinIO envía el fin de la operación a /io/peticion-finalizada.
func (h *Handler) notificarKernelFinIO(usleep io.Usleep) error {
	body, err := json.Marshal(io.FinIO{ID: usleep.ID, PID: usleep.PID})
	if err != nil {
		return fmt.Errorf("error serializing fin IO data: %w", err)
	}

	url := fmt.Sprintf("http://%s:%d/io/peticion-finalizada", h.Config.IpKernel, h.Config.PortKernel)
	resp, err := h.HttpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error sending POST to kernel: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("kernel returned non-OK status: %s", resp.Status)
	}

	h.Log.Debug("Kernel notificado exitosamente de fin de IO",
		log.IntAttr("PID", usleep.PID),
		log.StringAttr("id", usleep.ID),
		log.StringAttr("kernel_response", resp.Status),
	)
	return nil
}
