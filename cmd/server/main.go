package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chalkgo/chalk/internal/config"
	"github.com/chalkgo/chalk/internal/gallery"
	"github.com/chalkgo/chalk/internal/preview"
	"github.com/chalkgo/chalk/internal/render"
	"github.com/chalkgo/chalk/internal/shape"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger.With("component", "render"))

	font, err := cfg.Font()
	if err != nil {
		slog.Error("load font", "error", err)
		os.Exit(1)
	}
	if font != nil {
		shape.SetFont(font)
		slog.Info("font loaded", "path", cfg.FontPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog := gallery.Catalog{}
	hub := preview.NewHub(catalog.Names)
	go hub.Run(ctx)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg, catalog, hub),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server", "sessions", hub.Count())
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "auth", cfg.JWTSecret != "")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
