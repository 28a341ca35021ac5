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

	"github.com/go-chi/chi/v5"

	httpadapter "impactcompare/internal/adapters/http"
	"impactcompare/internal/adapters/llm"
	pg "impactcompare/internal/adapters/postgres"
	"impactcompare/internal/config"
	"impactcompare/internal/ports"
	"impactcompare/internal/services/analyzer"
	cmpsvc "impactcompare/internal/services/comparisons"
	"impactcompare/internal/workers/comparisonrunner"
	"impactcompare/internal/workers/retention"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	logger := newLogger(cfg.Production())
	slog.SetDefault(logger)
	var missing *config.MissingError
	switch {
	case errors.As(err, &missing):
		logger.Warn("configuration incomplete", "missing", missing.Keys)
	case err != nil:
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.LLM().HasCredential() {
		logger.Warn("backend credential missing, analysis requests will fail", "provider", cfg.LLMProvider)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := llm.New(cfg.LLM(), logger)
	if err != nil {
		return err
	}
	an := analyzer.New(backend, backend, cfg.BackendTimeoutDuration(), logger)

	var (
		comparisons ports.Comparisons
		jobs        ports.JobRepository
		processor   comparisonrunner.Processor
	)
	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer db.Close()
		n, err := db.Migrate(ctx)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "count", n)

		var _ ports.ComparisonStore = db
		var _ ports.JobRepository = db
		comparisons = cmpsvc.New(db, db)
		jobs = db
		processor = comparisonrunner.AnalysisProcessor{Store: db, Analyzer: an}

		if cfg.ComparisonWorkers > 0 {
			comparisonrunner.Run(ctx, db, processor, cfg.ComparisonWorkers, 500*time.Millisecond, logger)
			logger.Info("comparison workers started", "count", cfg.ComparisonWorkers)
		}
		if err := retention.Start(ctx, db, cfg.RetentionSchedule, cfg.RetentionDays, logger); err != nil {
			return err
		}
	} else {
		logger.Warn("DATABASE_URL not set, comparisons API disabled")
	}

	srv := httpadapter.New(an, comparisons, jobs, processor, logger)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	logger.Info("listening", "addr", cfg.ListenAddr, "provider", cfg.LLMProvider)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

func newLogger(production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
