package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/web3-frozen/spro-fees/internal/adapter"
	"github.com/web3-frozen/spro-fees/internal/adapter/spro"
	"github.com/web3-frozen/spro-fees/internal/config"
	"github.com/web3-frozen/spro-fees/internal/handler"
	"github.com/web3-frozen/spro-fees/internal/middleware"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.SubgraphAPIKey == "" {
		logger.Warn("SMARDEX_SUBGRAPH_API_KEY is empty, subgraph queries may be rejected")
	}

	// Adapters
	httpClient := &http.Client{Timeout: cfg.SubgraphTimeout}
	fetcher := spro.NewFetcher(spro.Options{APIKey: cfg.SubgraphAPIKey}, httpClient, logger)

	runner := adapter.NewRunner(logger)
	runner.Register(spro.NewAdapter(fetcher))

	// HTTP routes
	r := chi.NewRouter()
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.FrontendOrigin))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handler.Health())
	r.Get("/readyz", handler.Ready(runner))

	r.Route("/api", func(r chi.Router) {
		r.Get("/adapters", handler.ListAdapters(runner))
		r.Get("/adapters/{name}/{chain}", handler.FetchAdapter(runner))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SubgraphTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
