package logger

import (
	"context"
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	Debug           bool
	SentryDSN       string
	SentryClient    *sentry.Client
	BreadcrumbLevel zapcore.Level
	Tags            map[string]string
}

// Logger is a process-scoped zap logger with its optional sentry client.
// It is built once in main and handed to every component that logs.
type Logger struct {
	*zap.Logger
	sentryClient *sentry.Client
}

// New builds a logger with sentry integration
func New(cfg Config) (*Logger, error) {
	// Create zap config based on debug flag
	var zapConfig zap.Config
	if cfg.Debug {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	// Build base logger
	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	if len(cfg.Tags) > 0 {
		fields := make([]zap.Field, 0, len(cfg.Tags))
		for k, v := range cfg.Tags {
			fields = append(fields, zap.String(k, v))
		}
		baseLogger = baseLogger.With(fields...)
	}

	if cfg.SentryDSN == "" && cfg.SentryClient == nil {
		return &Logger{Logger: baseLogger}, nil
	}

	// Setup sentry client if DSN is provided
	client := cfg.SentryClient
	if client == nil {
		client, err = sentry.NewClient(sentry.ClientOptions{
			Dsn:   cfg.SentryDSN,
			Debug: cfg.Debug,
		})
		if err != nil {
			return nil, err
		}
	}

	breadcrumbLevel := cfg.BreadcrumbLevel
	if breadcrumbLevel == zapcore.InvalidLevel {
		breadcrumbLevel = zapcore.InfoLevel // Default to Info level for breadcrumbs
	}

	core, err := zapsentry.NewCore(zapsentry.Configuration{
		Level:             zapcore.ErrorLevel, // Send errors to sentry
		EnableBreadcrumbs: true,
		BreadcrumbLevel:   breadcrumbLevel,
		Tags:              cfg.Tags,
	}, zapsentry.NewSentryClientFromClient(client))
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger:       zapsentry.AttachCoreToLogger(core, baseLogger),
		sentryClient: client,
	}, nil
}

// Nop returns a logger that discards everything, for tests
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Flush flushes buffered zap output and any pending sentry events
func (l *Logger) Flush(timeout time.Duration) {
	_ = l.Sync()
	if l.sentryClient != nil {
		l.sentryClient.Flush(timeout)
	}
}

// Ctx returns a logger carrying the sentry scope from ctx
func (l *Logger) Ctx(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.Logger
	}
	return l.With(zapsentry.Context(ctx))
}
