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
	"github.com/fhd3v0p/fsr-backend/internal/bot"
	"github.com/fhd3v0p/fsr-backend/internal/config"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
	"github.com/fhd3v0p/fsr-backend/internal/logger"
	"github.com/fhd3v0p/fsr-backend/internal/messaging"
	"github.com/fhd3v0p/fsr-backend/internal/notifier"
	"github.com/fhd3v0p/fsr-backend/internal/providers/jetstream"
	"github.com/fhd3v0p/fsr-backend/internal/store"
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
	cfg, err := config.LoadBotConfig(*configFile, *envPath)
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
			"service": "bot",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Flush(2 * time.Second)
	log.Info("Starting FSR bot")

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

	tb, err := adapter.NewTelegramBot(adapter.TelegramSettings{
		Token:          cfg.Telegram.BotToken,
		APIURL:         cfg.Telegram.APIURL,
		PollTimeout:    cfg.Telegram.PollTimeout,
		RequestTimeout: cfg.Telegram.RequestTimeout,
	})
	if err != nil {
		log.Fatal("Failed to create telegram bot", zap.Error(err))
	}
	log.Info("Connected to Telegram", zap.String("username", tb.Me.Username))

	telegram := adapter.NewTelegram(tb)
	clock := adapter.NewClock()

	// The deep link must point at the bot that is actually running
	botUsername := cfg.Telegram.BotUsername
	if tb.Me.Username != "" {
		botUsername = tb.Me.Username
	}

	l := ledger.New(
		ledger.Config{BotUsername: botUsername},
		store.NewSQLiteStore(db),
		ledger.NewCodeGenerator(),
		clock,
		log.Logger,
	)

	v := verifier.NewTelegramVerifier(verifier.Config{
		Channels: cfg.Campaign.RequiredChannels,
	}, telegram, log.Logger)

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
	}

	dispatcher := notifier.NewDispatcher(notifier.DispatcherConfig{
		WorkerPoolSize:  cfg.Notifier.Worker.WorkerPoolSize,
		WorkerQueueSize: cfg.Notifier.Worker.WorkerQueueSize,
	}, notifier.NewMulti(sinks...), clock, log.Logger)

	if cfg.Auth.TokenSecret == "" {
		log.Warn("Admin token secret not configured, /stats replies without the admin panel link")
	}

	b := bot.NewBot(bot.Config{
		WebAppURL:        cfg.Campaign.WebAppURL,
		FolderLink:       cfg.Campaign.FolderLink,
		AdminIDs:         cfg.Campaign.AdminIDs,
		AdminTokenSecret: cfg.Auth.TokenSecret,
		AdminTokenTTL:    cfg.Auth.TokenTTL,
	}, tb, l, v, dispatcher, clock, log.Logger)

	// Poll in a goroutine, Start returns once ctx is canceled
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Start(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn("Bot polling did not stop in time")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error("Notification dispatcher forced to stop", zap.Error(err))
	}

	log.Info("Bot stopped")
}
