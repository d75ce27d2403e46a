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

	"github.com/alexanderramin/sprout/internal/cli"
	"github.com/alexanderramin/sprout/internal/config"
	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/alexanderramin/sprout/internal/service"
	"github.com/alexanderramin/sprout/internal/storage"
	"github.com/alexanderramin/sprout/internal/telemetry"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, warnings := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	for _, w := range warnings {
		logger.Warn("config", "detail", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open journal
	database, err := db.OpenDB(cfg.JournalPath())
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer database.Close()

	answerRepo := repository.NewSQLiteAnswerEventRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	levelRepo := repository.NewSQLiteLevelChangeRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := telemetry.NewMetrics(reg)
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Load progress
	writer := storage.NewDurableWriter(cfg.ProgressPath(), nil, logger)
	store, _ := progress.Open(writer, writer,
		progress.WithLogger(logger),
		progress.WithMetrics(metrics),
		progress.WithRestInterval(cfg.RestInterval),
		progress.WithNewUser(cfg.UserName, cfg.UserAge),
	)
	store.StartAutoFlush(ctx, cfg.FlushInterval)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	app := &cli.App{
		Store:    store,
		Answers:  service.NewAnswerService(store, uow, logger, observers...),
		Sessions: service.NewSessionService(store, sessionRepo, logger, observers...),
		History:  service.NewHistoryService(answerRepo, sessionRepo, levelRepo, store.Now, observers...),
	}

	// Detect interactive terminal for password prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	runErr := cli.NewRootCmd(app).ExecuteContext(ctx)
	if err := store.Close(); err != nil {
		return errors.Join(runErr, fmt.Errorf("saving progress: %w", err))
	}
	return runErr
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "addr", addr, "error", err)
		}
	}()
	return srv
}
