package verification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/adapter"
	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
	"github.com/fhd3v0p/fsr-backend/internal/verifier"
)

const (
	DEFAULT_WORKER_POOL_SIZE  = 8
	DEFAULT_WORKER_QUEUE_SIZE = 1024
	DEFAULT_TASK_TIMEOUT      = time.Minute
)

// Config holds the scheduler configuration
type Config struct {
	// WorkerPoolSize bounds concurrent verification passes
	WorkerPoolSize int
	// WorkerQueueSize bounds checks that are waiting, queued or running
	WorkerQueueSize int
	// TaskTimeout bounds a single verify and persist run
	TaskTimeout time.Duration
}

// Outcome is the persisted result of a verification run
type Outcome struct {
	UserID     int64
	Subscribed bool
	Tickets    int
	Result     *verifier.Result
}

// Scheduler runs verify-then-persist passes, immediately or after a delay
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler.go -package=mocks -mock_names=Scheduler=MockScheduler
type Scheduler interface {
	// Schedule queues a check of userID that starts after delay.
	// A user already waiting is not queued twice. Returns domain.ErrQueueFull when no slot is left.
	Schedule(userID int64, delay time.Duration) error
	// VerifyNow runs the check synchronously and returns the persisted outcome
	VerifyNow(ctx context.Context, userID int64) (*Outcome, error)
	// Stop cancels waiting checks and waits for running ones until ctx ends
	Stop(ctx context.Context) error
}

type scheduler struct {
	cfg      Config
	verifier verifier.Verifier
	ledger   ledger.Ledger
	clock    adapter.Clock
	logger   *zap.Logger
	pool     pond.Pool

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending map[int64]struct{}
	stopped bool
	waiters sync.WaitGroup
}

// NewScheduler creates a scheduler with its own worker pool
func NewScheduler(cfg Config, v verifier.Verifier, l ledger.Ledger, clock adapter.Clock, log *zap.Logger) Scheduler {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = DEFAULT_WORKER_POOL_SIZE
	}
	if cfg.WorkerQueueSize <= 0 {
		cfg.WorkerQueueSize = DEFAULT_WORKER_QUEUE_SIZE
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = DEFAULT_TASK_TIMEOUT
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := pond.NewPool(
		cfg.WorkerPoolSize,
		pond.WithQueueSize(cfg.WorkerQueueSize),
		pond.WithContext(ctx),
	)

	log.Info("Verification worker pool created",
		zap.Int("workers", cfg.WorkerPoolSize),
		zap.Int("queue_size", cfg.WorkerQueueSize))

	return &scheduler{
		cfg:      cfg,
		verifier: v,
		ledger:   l,
		clock:    clock,
		logger:   log,
		pool:     pool,
		ctx:      ctx,
		cancel:   cancel,
		pending:  make(map[int64]struct{}),
	}
}

func (s *scheduler) Schedule(userID int64, delay time.Duration) error {
	if userID <= 0 {
		return fmt.Errorf("user id must be positive: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return fmt.Errorf("scheduler stopped: %w", domain.ErrQueueFull)
	}
	if _, ok := s.pending[userID]; ok {
		s.logger.Debug("Verification already pending", zap.Int64("userID", userID))
		return nil
	}
	if len(s.pending) >= s.cfg.WorkerQueueSize {
		return fmt.Errorf("%d checks pending: %w", len(s.pending), domain.ErrQueueFull)
	}

	s.pending[userID] = struct{}{}
	s.waiters.Add(1)
	go s.waitAndSubmit(userID, delay)

	return nil
}

// waitAndSubmit holds the check outside the pool until its delay elapses
func (s *scheduler) waitAndSubmit(userID int64, delay time.Duration) {
	defer s.waiters.Done()

	if delay > 0 {
		select {
		case <-s.ctx.Done():
			s.logger.Debug("Delayed verification canceled", zap.Int64("userID", userID))
			s.release(userID)
			return
		case <-s.clock.After(delay):
		}
	}

	_, ok := s.pool.TrySubmit(func() {
		defer s.release(userID)

		ctx, cancel := context.WithTimeout(s.ctx, s.cfg.TaskTimeout)
		defer cancel()

		outcome, err := s.run(ctx, userID)
		if err != nil {
			s.logger.Warn("Delayed verification failed", zap.Int64("userID", userID), zap.Error(err))
			return
		}
		s.logger.Info("Delayed verification done",
			zap.Int64("userID", userID),
			zap.Bool("subscribed", outcome.Subscribed),
			zap.Int("tickets", outcome.Tickets))
	})
	if !ok {
		s.release(userID)
		s.logger.Warn("Verification pool rejected task", zap.Int64("userID", userID), zap.Error(domain.ErrQueueFull))
	}
}

func (s *scheduler) release(userID int64) {
	s.mu.Lock()
	delete(s.pending, userID)
	s.mu.Unlock()
}

func (s *scheduler) VerifyNow(ctx context.Context, userID int64) (*Outcome, error) {
	return s.run(ctx, userID)
}

// run verifies first and only then opens the short ledger write
func (s *scheduler) run(ctx context.Context, userID int64) (*Outcome, error) {
	// unknown users are rejected before any platform call
	if _, err := s.ledger.GetTicketTotal(ctx, userID); err != nil {
		return nil, err
	}

	result, err := s.verifier.Verify(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("verification interrupted: %w", err)
	}

	if err := s.ledger.SetSubscriptionStatus(ctx, userID, result.AllSubscribed); err != nil {
		return nil, err
	}

	tickets, err := s.ledger.GetTicketTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		UserID:     userID,
		Subscribed: result.AllSubscribed,
		Tickets:    tickets,
		Result:     result,
	}, nil
}

func (s *scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	s.mu.Unlock()

	s.logger.Info("Shutting down verification worker pool",
		zap.Uint64("submitted", s.pool.SubmittedTasks()),
		zap.Uint64("waiting", s.pool.WaitingTasks()),
		zap.Uint64("successful", s.pool.SuccessfulTasks()),
		zap.Uint64("failed", s.pool.FailedTasks()))

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.waiters.Wait()
		s.pool.StopAndWait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Verification worker pool shutdown complete",
			zap.Uint64("total_completed", s.pool.CompletedTasks()))
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			s.logger.Warn("Verification worker pool shutdown timed out")
		}
		return ctx.Err()
	}
}
