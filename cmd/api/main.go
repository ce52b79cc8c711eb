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
	"github.com/fhd3v0p/fsr-backend/internal/api/middleware"
	"github.com/fhd3v0p/fsr-backend/internal/api/rest"
	"github.com/fhd3v0p/fsr-backend/internal/api/server"
	"github.com/fhd3v0p/fsr-backend/internal/config"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
	"github.com/fhd3v0p/fsr-backend/internal/logger"
	"github.com/fhd3v0p/fsr-backend/internal/messaging"
	"github.com/fhd3v0p/fsr-backend/internal/notifier"
	"github.com/fhd3v0p/fsr-backend/internal/providers/jetstream"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	log, err := logger.New(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Flush(2 * time.Second)
	log.Info("Starting FSR ledger API")

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
	log.Info("Opened database", zap.String("path", cfg.Database.Path))

	// Telegram client for membership checks and operator messages, it never polls
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
	telegram := adapter.NewTelegram(tb)
	clock := adapter.NewClock()

	dataStore := store.NewSQLiteStore(db)
	l := ledger.New(
		ledger.Config{BotUsername: cfg.Telegram.BotUsername},
		dataStore,
		ledger.NewCodeGenerator(),
		clock,
		log.Logger,
	)

	v := verifier.NewTelegramVerifier(verifier.Config{
		Channels:          cfg.Campaign.RequiredChannels,
		PerChannelTimeout: cfg.Verification.PerChannelTimeout,
		RequestsPerSecond: cfg.Verification.RequestsPerSecond,
	}, telegram, log.Logger)

	scheduler := verification.NewScheduler(verification.Config{
		WorkerPoolSize:  cfg.Verification.Worker.WorkerPoolSize,
		WorkerQueueSize: cfg.Verification.Worker.WorkerQueueSize,
	}, v, l, clock, log.Logger)

	// Operator notifications: chat sink plus the optional event stream
	sinks := []notifier.Notifier{
		notifier.NewTelegramNotifier(notifier.TelegramConfig{
			ChatID:      cfg.Notifier.OperatorChatID,
			MaxRetries:  cfg.Notifier.MaxRetries,
			SendTimeout: cfg.Notifier.SendTimeout,
		}, telegram, log.Logger),
	}
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), log.Logger)
		if err != nil {
			log.Fatal("Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
		sinks = append(sinks, notifier.NewStreamNotifier(publisher))
	} else {
		log.Warn("NATS url not configured, ledger events are only sent to the operator chat")
	}

	dispatcher := notifier.NewDispatcher(notifier.DispatcherConfig{
		WorkerPoolSize:  cfg.Notifier.Worker.WorkerPoolSize,
		WorkerQueueSize: cfg.Notifier.Worker.WorkerQueueSize,
	}, notifier.NewMulti(sinks...), clock, log.Logger)

	handler := rest.NewHandler(rest.HandlerConfig{
		VerificationDelay: cfg.Verification.Delay,
	}, l, scheduler, dispatcher, clock, log.Logger)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			TokenSecret: cfg.Auth.TokenSecret,
			AdminIDs:    cfg.Campaign.AdminIDs,
			APIKeys:     cfg.Auth.APIKeys,
		},
	}
	srv := server.New(serverConfig, handler, clock, log.Logger)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		log.Error("Server failed", zap.Error(err), zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	log.Info("Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Error("Verification scheduler forced to stop", zap.Error(err))
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error("Notification dispatcher forced to stop", zap.Error(err))
	}

	log.Info("API server stopped")
}
