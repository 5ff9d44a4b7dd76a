package preview

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/chalkgo/chalk/internal/engine"
	"github.com/chalkgo/chalk/internal/typeid"
)

// Handler upgrades requests to preview sessions.
type Handler struct {
	hub            *Hub
	catalog        engine.Catalog
	originPatterns []string
}

// NewHandler serves sessions over catalog. originPatterns are host
// patterns accepted in the Origin header, as for websocket.AcceptOptions.
func NewHandler(hub *Hub, catalog engine.Catalog, originPatterns []string) *Handler {
	return &Handler{hub: hub, catalog: catalog, originPatterns: originPatterns}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	s := NewSession(h.hub, conn, engine.NewEngine(h.catalog), typeid.NewSessionID())
	h.hub.Register(s)

	ctx := r.Context()
	go s.WritePump(ctx)
	s.ReadPump(ctx)
}
