package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fhd3v0p/fsr-backend/internal/adapter"
	"github.com/fhd3v0p/fsr-backend/internal/config"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
	"github.com/fhd3v0p/fsr-backend/internal/logger"
	"github.com/fhd3v0p/fsr-backend/internal/reconciler"
	"github.com/fhd3v0p/fsr-backend/internal/store"
	"github.com/fhd3v0p/fsr-backend/internal/verification"
	"github.com/fhd3v0p/fsr-backend/internal/verifier"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadReconcilerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	log, err := logger.New(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "reconciler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Flush(2 * time.Second)
	log.Info("Starting subscription reconciler")

	// Open database
	db, err := store.Open(ctx, store.OpenConfig{
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		Debug:           cfg.Debug,
	})
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err), zap.String("path", cfg.Database.Path))
	}

	// Initialize clock adapter
	clock := adapter.NewClock()

	tb, err := adapter.NewTelegramBot(adapter.TelegramSettings{
		Token:          cfg.Telegram.BotToken,
		APIURL:         cfg.Telegram.APIURL,
		PollTimeout:    cfg.Telegram.PollTimeout,
		RequestTimeout: cfg.Telegram.RequestTimeout,
		Offline:        true,
		Username:       cfg.Telegram.BotUsername,
	})
	if err != nil {
		log.Fatal("Failed to create telegram client", zap.Error(err))
	}

	l := ledger.New(
		ledger.Config{BotUsername: cfg.Telegram.BotUsername},
		store.NewSQLiteStore(db),
		ledger.NewCodeGenerator(),
		clock,
		log.Logger,
	)

	v := verifier.NewTelegramVerifier(verifier.Config{
		Channels:          cfg.Campaign.RequiredChannels,
		PerChannelTimeout: cfg.Verification.PerChannelTimeout,
		RequestsPerSecond: cfg.Verification.RequestsPerSecond,
	}, adapter.NewTelegram(tb), log.Logger)

	scheduler := verification.NewScheduler(verification.Config{
		WorkerPoolSize:  cfg.Verification.Worker.WorkerPoolSize,
		WorkerQueueSize: cfg.Verification.Worker.WorkerQueueSize,
	}, v, l, clock, log.Logger)

	r := reconciler.New(reconciler.Config{
		Interval:   cfg.Reconcile.Interval,
		StaleAfter: cfg.Reconcile.StaleAfter,
		BatchSize:  cfg.Reconcile.BatchSize,
	}, l, scheduler, log.Logger)

	log.Info("Initialized reconciler",
		zap.Duration("interval", cfg.Reconcile.Interval),
		zap.Duration("stale_after", cfg.Reconcile.StaleAfter),
		zap.Int("batch_size", cfg.Reconcile.BatchSize),
	)

	// Start the reconciler in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := r.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		log.Error("Reconciler failed", zap.Error(err))
	}

	// Cancel context to stop the reconciler
	cancel()

	// Give the reconciler and in-flight checks time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := r.Stop(shutdownCtx); err != nil {
		log.Error("Reconciler forced to stop", zap.Error(err))
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Error("Verification scheduler forced to stop", zap.Error(err))
	}

	log.Info("Reconciler stopped")
}
