package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/fhd3v0p/fsr-backend/internal/adapter"
	"github.com/fhd3v0p/fsr-backend/internal/domain"
)

const (
	DEFAULT_MAX_RETRIES      = 3
	DEFAULT_SEND_TIMEOUT     = 10 * time.Second
	DEFAULT_INITIAL_INTERVAL = 500 * time.Millisecond
)

// TelegramConfig holds the operator chat sink configuration
type TelegramConfig struct {
	ChatID          int64
	MaxRetries      uint64
	SendTimeout     time.Duration
	InitialInterval time.Duration
}

type telegramNotifier struct {
	cfg    TelegramConfig
	api    adapter.Telegram
	logger *zap.Logger
}

// NewTelegramNotifier posts every event as a plain text message to the operator chat
func NewTelegramNotifier(cfg TelegramConfig, api adapter.Telegram, log *zap.Logger) Notifier {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DEFAULT_MAX_RETRIES
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DEFAULT_SEND_TIMEOUT
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DEFAULT_INITIAL_INTERVAL
	}
	return &telegramNotifier{
		cfg:    cfg,
		api:    api,
		logger: log,
	}
}

func (n *telegramNotifier) Notify(ctx context.Context, event domain.Event) error {
	if n.cfg.ChatID == 0 {
		return nil
	}

	text := FormatOperatorMessage(event)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = n.cfg.InitialInterval
	b.MaxElapsedTime = n.cfg.SendTimeout
	b.RandomizationFactor = 0.5

	operation := func() error {
		err := n.api.SendText(n.cfg.ChatID, text)
		if err != nil && !isRetryableSendError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var attemptCount int
	notifyOnError := func(err error, d time.Duration) {
		attemptCount++
		n.logger.Warn("Operator chat notification failed, retrying",
			zap.String("eventID", event.ID),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", d))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, n.cfg.MaxRetries), ctx)
	if err := backoff.RetryNotify(operation, policy, notifyOnError); err != nil {
		return fmt.Errorf("failed to notify operator chat after %d attempts: %w", attemptCount+1, err)
	}

	return nil
}

// isRetryableSendError reports whether a failed send may succeed later.
// Client errors such as an unknown chat or a bot removed from it are final.
func isRetryableSendError(err error) bool {
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return true
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= http.StatusInternalServerError || apiErr.Code == http.StatusTooManyRequests
	}
	return true
}
