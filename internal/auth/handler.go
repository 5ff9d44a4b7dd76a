package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type whoamiResponse struct {
	Subject string `json:"subject"`
}

// Whoami reports the subject of the caller's token. It must sit behind
// AuthMiddleware.
func (h *Handler) Whoami(w http.ResponseWriter, r *http.Request) {
	subject := SubjectFromContext(r.Context())
	if subject == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}
	writeJSON(w, http.StatusOK, whoamiResponse{Subject: subject})
}

// Refresh issues a fresh token for the caller's subject.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	subject := SubjectFromContext(r.Context())
	if subject == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	token, err := h.service.IssueToken(subject)
	if err != nil {
		slog.Error("refresh token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
