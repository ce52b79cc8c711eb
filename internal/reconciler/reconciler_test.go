package reconciler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/mocks"
	"github.com/fhd3v0p/fsr-backend/internal/reconciler"
)

type testReconcilerMocks struct {
	ledger    *mocks.MockLedger
	scheduler *mocks.MockScheduler
}

func setupTestReconciler(t *testing.T, cfg reconciler.Config) (reconciler.Reconciler, *testReconcilerMocks) {
	ctrl := gomock.NewController(t)
	tm := &testReconcilerMocks{
		ledger:    mocks.NewMockLedger(ctrl),
		scheduler: mocks.NewMockScheduler(ctrl),
	}
	return reconciler.New(cfg, tm.ledger, tm.scheduler, zap.NewNop()), tm
}

func TestRunOnce(t *testing.T) {
	cfg := reconciler.Config{Interval: time.Minute, StaleAfter: 6 * time.Hour, BatchSize: 50}

	t.Run("queues every due user", func(t *testing.T) {
		r, tm := setupTestReconciler(t, cfg)
		tm.ledger.EXPECT().UsersDueForVerification(gomock.Any(), 6*time.Hour, 50).Return([]int64{1, 2, 3}, nil)
		tm.scheduler.EXPECT().Schedule(gomock.Any(), time.Duration(0)).Return(nil).Times(3)

		queued, err := r.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, queued)
	})

	t.Run("stops on a full queue", func(t *testing.T) {
		r, tm := setupTestReconciler(t, cfg)
		tm.ledger.EXPECT().UsersDueForVerification(gomock.Any(), gomock.Any(), gomock.Any()).Return([]int64{1, 2, 3}, nil)
		gomock.InOrder(
			tm.scheduler.EXPECT().Schedule(int64(1), time.Duration(0)).Return(nil),
			tm.scheduler.EXPECT().Schedule(int64(2), time.Duration(0)).Return(domain.ErrQueueFull),
		)

		queued, err := r.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, queued)
	})

	t.Run("skips users that cannot be queued", func(t *testing.T) {
		r, tm := setupTestReconciler(t, cfg)
		tm.ledger.EXPECT().UsersDueForVerification(gomock.Any(), gomock.Any(), gomock.Any()).Return([]int64{1, 2}, nil)
		tm.scheduler.EXPECT().Schedule(int64(1), time.Duration(0)).Return(domain.ErrInvalidInput)
		tm.scheduler.EXPECT().Schedule(int64(2), time.Duration(0)).Return(nil)

		queued, err := r.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, queued)
	})

	t.Run("store failure", func(t *testing.T) {
		r, tm := setupTestReconciler(t, cfg)
		tm.ledger.EXPECT().UsersDueForVerification(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrStoreUnavailable)

		_, err := r.RunOnce(context.Background())
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestStartStop(t *testing.T) {
	r, tm := setupTestReconciler(t, reconciler.Config{Interval: time.Hour})

	var once sync.Once
	ran := make(chan struct{})
	tm.ledger.EXPECT().UsersDueForVerification(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, time.Duration, int) ([]int64, error) {
			once.Do(func() { close(ran) })
			return nil, nil
		}).MinTimes(1)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(context.Background()) }()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("reconcile cycle did not run on start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
	assert.NoError(t, <-errCh)

	// a stopped reconciler cannot be restarted
	assert.Error(t, r.Start(context.Background()))
}

func TestStart_ContextCanceled(t *testing.T) {
	r, tm := setupTestReconciler(t, reconciler.Config{Interval: time.Hour})
	tm.ledger.EXPECT().UsersDueForVerification(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("closed")).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reconciler did not stop")
	}
}
