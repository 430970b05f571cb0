package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cpu-warriors/so-emulador/kernel/pkg/io"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/irq"
	"github.com/cpu-warriors/so-emulador/utils/log"
)

// FinalizarPeticionIO recibe el aviso del módulo IO y levanta IO_OUT.
func (h *Handler) FinalizarPeticionIO(w http.ResponseWriter, r *http.Request) {
	if h.remoto == nil {
		http.Error(w, "el kernel no usa un dispositivo remoto", http.StatusConflict)
		return
	}

	var fin io.FinIO
	if err := json.NewDecoder(r.Body).Decode(&fin); err != nil {
		h.Log.Error("Error al decodificar el fin de IO",
			log.ErrAttr(err),
		)
		http.Error(w, "error al decodificar el fin de IO", http.StatusBadRequest)
		return
	}

	err := h.ejecutar(r.Context(), func(ctx context.Context) error {
		if err := h.remoto.Completar(fin); err != nil {
			return err
		}
		return h.Kernel.Hardware.Vector.Handle(ctx, irq.IRQ{Tipo: irq.InterrupcionIoOut, Parametros: fin.PID})
	})
	if errors.Is(err, io.ErrSolicitudDesconocida) {
		h.Log.Warn("Fin de IO desconocido",
			log.StringAttr("id", fin.ID),
			log.IntAttr("pid", fin.PID),
		)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("Error al atender el fin de IO",
			log.ErrAttr(err),
			log.IntAttr("pid", fin.PID),
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
