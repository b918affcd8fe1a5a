package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/dinnermenu/api"
	"github.com/use-agent/dinnermenu/api/handler"
	"github.com/use-agent/dinnermenu/approval"
	"github.com/use-agent/dinnermenu/config"
	"github.com/use-agent/dinnermenu/fetch"
	"github.com/use-agent/dinnermenu/recipe"
	"github.com/use-agent/dinnermenu/webhook"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	slog.SetDefault(config.NewLogger(cfg.Log, os.Stdout))
	slog.Info("recipe server starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"fetchTimeout", cfg.Fetch.Timeout,
		"tlsFingerprint", cfg.Fetch.TLSFingerprint,
	)

	// ── 3. Initialise extractor ─────────────────────────────────────
	ex := recipe.New(fetch.NewHTTPFetcher(cfg.Fetch))

	// ── 4. Initialise batch and approval registries ─────────────────
	bgCtx, stopBg := context.WithCancel(context.Background())
	defer stopBg()
	batches := handler.NewBatches(ex, cfg.Batch, webhook.NewNotifier())
	go batches.Run(bgCtx)

	approvals := approval.New(cfg.Approval.TokenTTL)
	go approvals.Run(bgCtx)

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(ex, batches, approvals, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// In-flight extractions are bounded by the fetch timeout.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Fetch.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("recipe server stopped")
}
