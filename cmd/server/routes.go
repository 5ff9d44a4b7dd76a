package main

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/chalkgo/chalk/internal/auth"
	"github.com/chalkgo/chalk/internal/catalog"
	"github.com/chalkgo/chalk/internal/config"
	"github.com/chalkgo/chalk/internal/engine"
	"github.com/chalkgo/chalk/internal/export"
	mw "github.com/chalkgo/chalk/internal/middleware"
	"github.com/chalkgo/chalk/internal/preview"
)

func newRouter(cfg *config.Config, diagrams engine.Catalog, hub *preview.Hub) *mux.Router {
	catalogHandler := catalog.NewHandler(catalog.NewService(diagrams))
	exportHandler := export.NewHandler(diagrams, cfg.RenderOptions()...)
	previewHandler := preview.NewHandler(hub, diagrams, originPatterns(cfg.Origins()))

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "sessions": hub.Count()})
	}).Methods("GET")

	// Export endpoint (public)
	r.HandleFunc("/export/{file}", exportHandler.Export).Methods("GET", "OPTIONS")

	// Diagram API, protected when a signing secret is configured
	api := r.PathPrefix("/api").Subrouter()
	if cfg.JWTSecret != "" {
		authService := auth.NewService(cfg.JWTSecret)
		authHandler := auth.NewHandler(authService)
		api.Use(authService.AuthMiddleware)

		api.HandleFunc("/whoami", authHandler.Whoami).Methods("GET", "OPTIONS")
		api.HandleFunc("/token", authHandler.Refresh).Methods("POST", "OPTIONS")
	}

	api.HandleFunc("/diagrams", catalogHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/diagrams/{name}", catalogHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/diagrams/{name}/commands", catalogHandler.Commands).Methods("GET", "OPTIONS")
	api.HandleFunc("/diagrams/{name}/bounds/{sub}", catalogHandler.Bounds).Methods("GET", "OPTIONS")

	// WebSocket endpoint
	r.Handle("/ws/preview", previewHandler)

	return r
}

// originPatterns turns allowed origins into the host patterns the
// websocket handshake matches against.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}
