package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"illumicheck/internal/app"
	"illumicheck/internal/config"
	"illumicheck/internal/http"
	"illumicheck/internal/service"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API checks the spelling of editor texts against a word list loaded
// in the background from a SQL table.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: illumicheck API
//   description: |
//     Incremental spell checking. Open a session per document and send the full
//     text on every change; misspelled words come back with their character offsets.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Merge the cache and start loading the word table in the background
	dict := app.StartDictionary(ctx, cfg)
	defer dict.Close()
	slog.Info("Dictionary initialized",
		"cache", cfg.CachePath, "locale", cfg.Locale.String(), "mode", dict.Mode.String(), "words", dict.Set.Len())

	spellService := service.NewSpellService(dict.Set, dict.Loader, dict.Normalizer, dict.Mode,
		service.WithSessionTTL(cfg.SessionTTL))

	// Create router with dependencies
	deps := &http.Deps{
		SpellService: spellService,
		DB:           dict,
	}
	router := http.NewRouter(deps)

	go func() {
		if err := dict.Loader.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Dictionary load completed with errors", "error", err, "words", dict.Set.Len())
			return
		}
		slog.Info("Dictionary load finished", "words", dict.Set.Len())
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}
