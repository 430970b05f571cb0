package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cpu-warriors/so-emulador/kernel/internal"
	"github.com/cpu-warriors/so-emulador/kernel/internal/planificadores"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/memoria"
	"github.com/cpu-warriors/so-emulador/kernel/pkg/programas"
	"github.com/cpu-warriors/so-emulador/utils/log"
	"github.com/go-chi/chi/v5"
)

// CrearProceso admite un programa y responde con su pid.
func (h *Handler) CrearProceso(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var pedido CrearProceso
	if err := json.NewDecoder(r.Body).Decode(&pedido); err != nil {
		h.Log.Error("Error al decodificar el pedido de proceso",
			log.ErrAttr(err),
		)
		http.Error(w, "error al decodificar el pedido", http.StatusBadRequest)
		return
	}

	programa, status, err := h.programaDelPedido(ctx, pedido)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	var pid int
	err = h.ejecutar(ctx, func(ctx context.Context) error {
		var err error
		pid, err = h.Kernel.Run(ctx, programa, pedido.Prioridad)
		return err
	})
	if err != nil {
		h.Log.Error("Error al admitir el proceso",
			log.ErrAttr(err),
			log.StringAttr("programa", programa.Nombre()),
		)
		if errors.Is(err, memoria.ErrMemoriaInsuficiente) {
			http.Error(w, err.Error(), http.StatusInsufficientStorage)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.responderJSON(w, http.StatusCreated, ProcesoCreado{PID: pid})
}

func (h *Handler) programaDelPedido(ctx context.Context, pedido CrearProceso) (*internal.Programa, int, error) {
	if pedido.Path != "" {
		programa, err := h.FileSystem.Read(ctx, pedido.Path)
		if errors.Is(err, programas.ErrProgramaInexistente) {
			return nil, http.StatusNotFound, err
		}
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return programa, 0, nil
	}

	if pedido.Nombre == "" {
		return nil, http.StatusBadRequest, errors.New("nombre o path no proporcionado")
	}

	archivo := programas.Archivo{Nombre: pedido.Nombre, Instrucciones: pedido.Instrucciones}
	programa, err := archivo.Programa("")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return programa, 0, nil
}

// ListarProcesos devuelve la foto del planificador.
func (h *Handler) ListarProcesos(w http.ResponseWriter, r *http.Request) {
	var snapshot planificadores.Snapshot
	err := h.ejecutar(r.Context(), func(context.Context) error {
		snapshot = h.Kernel.Snapshot()
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.responderJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) DumpProceso(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(chi.URLParam(r, "pid"))
	if err != nil {
		http.Error(w, "error al convertir PID a entero", http.StatusBadRequest)
		return
	}

	var instrucciones []internal.Instruccion
	err = h.ejecutar(r.Context(), func(context.Context) error {
		var err error
		instrucciones, err = h.Kernel.DumpProceso(pid)
		return err
	})
	if errors.Is(err, internal.ErrProcesoInexistente) {
		http.Error(w, fmt.Sprintf("proceso %d no encontrado", pid), http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("Error en el dump de memoria",
			log.ErrAttr(err),
			log.IntAttr("pid", pid),
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.responderJSON(w, http.StatusOK, Dump{PID: pid, Instrucciones: instrucciones})
}

func (h *Handler) responderJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Log.Error("Error al codificar la respuesta",
			log.ErrAttr(err),
		)
	}
}
