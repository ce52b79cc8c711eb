package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
	"github.com/fhd3v0p/fsr-backend/internal/verification"
)

const (
	DEFAULT_INTERVAL    = 15 * time.Minute
	DEFAULT_STALE_AFTER = 24 * time.Hour
	DEFAULT_BATCH_SIZE  = 200
)

// Config holds the reconciler configuration
type Config struct {
	Interval   time.Duration // Time between reconcile cycles
	StaleAfter time.Duration // Re-verify statuses older than this
	BatchSize  int           // Users queued per cycle
}

// Reconciler periodically re-verifies users whose subscription status is missing or stale
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// Start runs a cycle immediately and then every interval.
	// This is a blocking call that runs until the context is canceled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the reconciler, waiting for a running cycle
	Stop(ctx context.Context) error

	// RunOnce runs a single cycle and returns how many users were queued
	RunOnce(ctx context.Context) (int, error)

	// Name returns the reconciler's name for logging
	Name() string
}

type reconciler struct {
	config    Config
	ledger    ledger.Ledger
	scheduler verification.Scheduler
	logger    *zap.Logger
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// New creates a reconciler that queues checks on the verification scheduler
func New(cfg Config, l ledger.Ledger, s verification.Scheduler, log *zap.Logger) Reconciler {
	if cfg.Interval <= 0 {
		cfg.Interval = DEFAULT_INTERVAL
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DEFAULT_STALE_AFTER
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DEFAULT_BATCH_SIZE
	}
	return &reconciler{
		config:    cfg,
		ledger:    l,
		scheduler: s,
		logger:    log,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (r *reconciler) Name() string {
	return "subscription-reconciler"
}

func (r *reconciler) Start(ctx context.Context) error {
	select {
	case <-r.stopChan:
		return fmt.Errorf("reconciler already stopped")
	default:
	}
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("reconciler already running")
	}
	defer close(r.stoppedCh)

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(r.config.Interval),
		gocron.NewTask(func() {
			if _, err := r.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Error("Reconcile cycle failed", zap.Error(err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("failed to register reconcile job: %w", err)
	}

	r.logger.Info("Starting subscription reconciler",
		zap.Duration("interval", r.config.Interval),
		zap.Duration("stale_after", r.config.StaleAfter),
		zap.Int("batch_size", r.config.BatchSize))
	sched.Start()

	select {
	case <-ctx.Done():
		r.logger.Info("Reconciler stopping due to context cancellation", zap.Error(ctx.Err()))
	case <-r.stopChan:
		r.logger.Info("Reconciler stop requested")
	}

	// Shutdown waits for a running cycle
	if err := sched.Shutdown(); err != nil {
		r.logger.Warn("Failed to shut down reconcile scheduler", zap.Error(err))
	}
	return nil
}

func (r *reconciler) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}

	close(r.stopChan)

	select {
	case <-r.stoppedCh:
		r.logger.Info("Reconciler stopped gracefully")
		return nil
	case <-ctx.Done():
		r.logger.Warn("Reconciler stop interrupted by context timeout")
		return ctx.Err()
	}
}

func (r *reconciler) RunOnce(ctx context.Context) (int, error) {
	userIDs, err := r.ledger.UsersDueForVerification(ctx, r.config.StaleAfter, r.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list users due for verification: %w", err)
	}

	queued := 0
	for _, userID := range userIDs {
		if err := r.scheduler.Schedule(userID, 0); err != nil {
			if errors.Is(err, domain.ErrQueueFull) {
				// the rest is picked up next cycle
				r.logger.Warn("Verification queue full, ending cycle early",
					zap.Int("queued", queued),
					zap.Int("due", len(userIDs)))
				break
			}
			r.logger.Warn("Failed to queue verification", zap.Int64("userID", userID), zap.Error(err))
			continue
		}
		queued++
	}

	r.logger.Info("Reconcile cycle finished", zap.Int("due", len(userIDs)), zap.Int("queued", queued))
	return queued, nil
}
