package main

import (
	"context"
	"errors"
	_ "github.com/joho/godotenv/autoload"
	"job-traveler/internal/clock"
	"job-traveler/internal/config"
	"job-traveler/internal/service/analysis"
	"job-traveler/internal/service/cleanup"
	generate_excel "job-traveler/internal/service/generate-excel"
	"job-traveler/internal/service/traveler"
	"job-traveler/internal/storage/mysql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env, cfg.Log.ErrorFile)

	storage, err := mysql.New(*cfg)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	clk := clock.New()

	classifier := traveler.NewClassifier(cfg.Traveler.SetupWorkCenter, cfg.Traveler.CompletionStatuses)
	builder := traveler.NewBuilder(classifier, cfg.Traveler.TimeWindow())
	travelerService := traveler.NewTravelerService(storage, builder, clk)

	if cfg.Analysis.APIKey == "" {
		log.Warn("ANTHROPIC_API_KEY is not set, job analysis requests will fail")
	}

	svc := services{
		traveler: travelerService,
		analysis: analysis.NewService(travelerService, analysis.NewClient(cfg.Analysis), clk),
		cleanup:  cleanup.NewSweep(travelerService, cfg.Cleanup.Concurrency),
		excel:    generate_excel.NewGenerateService(travelerService),
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, storage, svc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: writeTimeout(*cfg),
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

func analysisTimeout(cfg config.Config) time.Duration {
	return cfg.Traveler.RequestTimeout + cfg.Analysis.Timeout
}

// writeTimeout leaves room for the slowest route so the server never cuts a
// handler off before its own deadline fires.
func writeTimeout(cfg config.Config) time.Duration {
	return max(
		cfg.HTTPServer.Timeout,
		analysisTimeout(cfg)+time.Second,
		cfg.CleanupTimeout()+time.Second,
	)
}

// dualHandler writes every record to the core handler and copies records at
// or above slog.LevelError to the error handler.
type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return lvl >= slog.LevelError || h.coreHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		// error-file failures are ignored
		_ = h.errorHandler.Handle(ctx, r.Clone())
	}

	if !h.coreHandler.Enabled(ctx, r.Level) {
		return nil
	}

	return h.coreHandler.Handle(ctx, r)
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env, errorFilePath string) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	switch env {
	case envProd:
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case envLocal, envProd:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	if errorFilePath == "" {
		return slog.New(coreHandler)
	}

	errorFile, err := os.OpenFile(errorFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		slog.Warn("Cannot open error log file", "path", errorFilePath, "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}
