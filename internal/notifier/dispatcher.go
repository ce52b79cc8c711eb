package notifier

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/adapter"
	"github.com/fhd3v0p/fsr-backend/internal/domain"
)

const (
	DEFAULT_DISPATCH_POOL_SIZE  = 2
	DEFAULT_DISPATCH_QUEUE_SIZE = 256
	DEFAULT_DISPATCH_TIMEOUT    = 30 * time.Second
)

// DispatcherConfig holds the async dispatcher configuration
type DispatcherConfig struct {
	WorkerPoolSize  int
	WorkerQueueSize int
	// Timeout bounds one delivery across every sink
	Timeout time.Duration
}

// Dispatcher hands events to a notifier off the request path
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// Dispatch stamps the event and queues it. Returns domain.ErrQueueFull when the queue is full.
	Dispatch(event domain.Event) error
	// Stop waits for queued deliveries until ctx ends
	Stop(ctx context.Context) error
}

type dispatcher struct {
	cfg      DispatcherConfig
	notifier Notifier
	clock    adapter.Clock
	logger   *zap.Logger
	pool     pond.Pool
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewDispatcher creates a dispatcher delivering to n on its own worker pool
func NewDispatcher(cfg DispatcherConfig, n Notifier, clock adapter.Clock, log *zap.Logger) Dispatcher {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = DEFAULT_DISPATCH_POOL_SIZE
	}
	if cfg.WorkerQueueSize <= 0 {
		cfg.WorkerQueueSize = DEFAULT_DISPATCH_QUEUE_SIZE
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DEFAULT_DISPATCH_TIMEOUT
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := pond.NewPool(
		cfg.WorkerPoolSize,
		pond.WithQueueSize(cfg.WorkerQueueSize),
		pond.WithContext(ctx),
	)

	return &dispatcher{
		cfg:      cfg,
		notifier: n,
		clock:    clock,
		logger:   log,
		pool:     pool,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (d *dispatcher) Dispatch(event domain.Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = d.clock.Now()
	}
	if event.ID == "" {
		id, err := ulid.New(ulid.Timestamp(event.OccurredAt), rand.Reader)
		if err != nil {
			return fmt.Errorf("failed to generate event id: %w", err)
		}
		event.ID = id.String()
	}

	_, ok := d.pool.TrySubmit(func() {
		ctx, cancel := context.WithTimeout(d.ctx, d.cfg.Timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, event); err != nil {
			d.logger.Warn("Failed to deliver event",
				zap.String("eventID", event.ID),
				zap.String("type", string(event.Type)),
				zap.Int64("userID", event.UserID),
				zap.Error(err))
			return
		}
		d.logger.Debug("Event delivered", zap.String("eventID", event.ID), zap.String("type", string(event.Type)))
	})
	if !ok {
		return fmt.Errorf("event %s dropped: %w", event.Type, domain.ErrQueueFull)
	}

	return nil
}

func (d *dispatcher) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.pool.StopAndWait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("Event dispatcher stopped",
			zap.Uint64("successful", d.pool.SuccessfulTasks()),
			zap.Uint64("failed", d.pool.FailedTasks()))
		return nil
	case <-ctx.Done():
		d.cancel()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			d.logger.Warn("Event dispatcher shutdown timed out")
		}
		return ctx.Err()
	}
}
