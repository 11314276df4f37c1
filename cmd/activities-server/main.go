// cmd/activities-server/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mergington-activities/internal/api/activities"
	"mergington-activities/internal/common/config"
	httpmw "mergington-activities/internal/common/http"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/common/validation"
	"mergington-activities/internal/registry"
	"mergington-activities/pkg/catalog"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting activities server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Seed the registry ---
	cat, err := loadCatalog(cfg)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	reg, err := registry.New(cat)
	if err != nil {
		zapLog.Fatal("registry seed failed", zap.Error(err))
	}

	snap := reg.List()
	for name, act := range snap.Activities {
		metrics.RosterSize.WithLabelValues(name).Set(float64(len(act.Participants)))
	}
	zapLog.Info("Registry seeded", zap.Int("activities", len(snap.Names)))

	// --- HTTP routes ---
	mux := http.NewServeMux()

	apiHandler := activities.NewHandler(
		&activities.Config{
			IndexRedirect: cfg.Server.IndexRedirect,
		},
		reg, log,
	)
	apiHandler.Register(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := httpmw.Chain(mux,
		httpmw.RequestID(),
		httpmw.RequestLogging(log),
		httpmw.RequestMetrics(obs),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Activities server stopped gracefully")
}

// loadCatalog picks the configured catalog file, or the built-in one when no
// path is set. Files are schema-validated before parsing.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}

	raw, err := os.ReadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateCatalog(raw); err != nil {
		return nil, err
	}
	return catalog.Parse(raw)
}
