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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"applicant-records/internal/platform/config"
	"applicant-records/internal/platform/health"
	"applicant-records/internal/platform/httpserver"
	"applicant-records/internal/platform/logger"
	"applicant-records/internal/platform/tracer"
	httptransport "applicant-records/internal/transport/http"
	"applicant-records/pkg/platform/middleware/basicauth"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/records.
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	log := logger.New(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return err
	}
	log = logger.New(cfg.LogLevel)

	log.Info("initializing applicant-records",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"store_driver", cfg.StoreDriver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open record store", "driver", cfg.StoreDriver, "error", err)
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("record_store", records.Health)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Records:        records,
		Verifier:       newVerifier(cfg),
		Logger:         log,
		Registry:       reg,
		Tracer:         tracer.NewOTel(),
		Health:         healthHandler,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		return err
	}

	log.Info("server stopped")
	return nil
}

// newVerifier prefers the bcrypt hash so the plaintext key need not be
// deployed.
func newVerifier(cfg config.Server) basicauth.Verifier {
	if cfg.APIKeyHash != "" {
		return basicauth.NewHashedKey(cfg.APIKeyHash)
	}
	return basicauth.NewStaticKey(cfg.APIKey)
}
