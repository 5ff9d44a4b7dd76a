package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chalkgo/chalk/internal/engine"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.List())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	detail, err := h.service.Get(name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Commands serves the compiled draw commands, as JSON by default or as
// MessagePack with ?format=msgpack.
func (h *Handler) Commands(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	cmds, err := h.service.Commands(name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, cmds)
	case "msgpack":
		data, err := engine.DrawCommandsToMsgpack(cmds)
		if err != nil {
			slog.Error("encode msgpack failed", "diagram", name, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		w.Header().Set("Content-Type", "application/msgpack")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid format: must be json or msgpack"})
	}
}

func (h *Handler) Bounds(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	rect, err := h.service.Bounds(vars["name"], vars["sub"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rect)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "diagram not found"})
	case errors.Is(err, ErrNameNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "name not found"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
