package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fhd3v0p/fsr-backend/internal/config"
	"github.com/fhd3v0p/fsr-backend/internal/logger"
	"github.com/fhd3v0p/fsr-backend/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	timeout    = flag.Duration("timeout", 2*time.Minute, "Maximum time to apply migrations")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadMigrateConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "migrate",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Flush(2 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := store.Open(ctx, store.OpenConfig{
		DSN:          cfg.Database.DSN(),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		Debug:        cfg.Debug,
	})
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err), zap.String("path", cfg.Database.Path))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	applied, err := store.Migrate(ctx, db)
	if err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	if len(applied) == 0 {
		log.Info("Database is up to date", zap.String("path", cfg.Database.Path))
		return
	}
	log.Info("Applied migrations",
		zap.Strings("versions", applied),
		zap.String("path", cfg.Database.Path))
}
