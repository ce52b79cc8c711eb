package verifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v3"

	"github.com/fhd3v0p/fsr-backend/internal/adapter"
	"github.com/fhd3v0p/fsr-backend/internal/domain"
)

const (
	DEFAULT_PER_CHANNEL_TIMEOUT = 5 * time.Second
	DEFAULT_REQUESTS_PER_SECOND = 25
	DEFAULT_REQUEST_BURST       = 5
)

// Config holds the verifier configuration
type Config struct {
	// Channels are the chat ids a user must be a member of
	Channels []int64
	// PerChannelTimeout bounds every membership lookup
	PerChannelTimeout time.Duration
	// RequestsPerSecond caps getChatMember calls made by this process
	RequestsPerSecond float64
	RequestBurst      int
}

// ChannelResult is the outcome of one membership lookup
type ChannelResult struct {
	ChannelID int64
	// Status is the member status reported by Telegram, empty on failure
	Status     string
	Subscribed bool
	// Err is set when the lookup failed or timed out, it always wraps domain.ErrExternalServiceUnavailable
	Err error
}

// Result is the outcome of a complete verification pass
type Result struct {
	UserID        int64
	AllSubscribed bool
	Channels      []ChannelResult
}

// Verifier checks channel membership against the messaging platform. It never touches the store.
//
//go:generate mockgen -source=verifier.go -destination=../mocks/verifier.go -package=mocks -mock_names=Verifier=MockVerifier
type Verifier interface {
	// Verify runs a complete pass over the required channels.
	// Platform failures count as not subscribed; an error is only returned when ctx ends mid-pass.
	Verify(ctx context.Context, userID int64) (*Result, error)
	// CheckBotAdmin reports, per required channel, whether botID administers it
	CheckBotAdmin(ctx context.Context, botID int64) ([]ChannelResult, error)
}

type telegramVerifier struct {
	cfg     Config
	api     adapter.Telegram
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewTelegramVerifier creates a verifier backed by the Bot API getChatMember call
func NewTelegramVerifier(cfg Config, api adapter.Telegram, log *zap.Logger) Verifier {
	if cfg.PerChannelTimeout <= 0 {
		cfg.PerChannelTimeout = DEFAULT_PER_CHANNEL_TIMEOUT
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DEFAULT_REQUESTS_PER_SECOND
	}
	if cfg.RequestBurst <= 0 {
		cfg.RequestBurst = DEFAULT_REQUEST_BURST
	}
	return &telegramVerifier{
		cfg:     cfg,
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
		logger:  log,
	}
}

func (v *telegramVerifier) Verify(ctx context.Context, userID int64) (*Result, error) {
	result := &Result{UserID: userID}

	if len(v.cfg.Channels) == 0 {
		v.logger.Warn("No required channels configured, treating user as not subscribed", zap.Int64("userID", userID))
		return result, nil
	}

	result.AllSubscribed = true
	for _, channelID := range v.cfg.Channels {
		status, err := v.memberStatus(ctx, channelID, userID)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("verification of user %d interrupted: %w", userID, ctx.Err())
		}

		channel := ChannelResult{ChannelID: channelID, Status: status}
		if err != nil {
			channel.Err = err
			v.logger.Warn("Membership lookup failed",
				zap.Int64("userID", userID),
				zap.Int64("channelID", channelID),
				zap.Error(err))
		} else {
			channel.Subscribed = domain.IsSubscribedMemberStatus(status)
		}
		result.Channels = append(result.Channels, channel)

		if !channel.Subscribed {
			result.AllSubscribed = false
			break
		}
	}

	v.logger.Debug("Verification pass finished",
		zap.Int64("userID", userID),
		zap.Bool("allSubscribed", result.AllSubscribed),
		zap.Int("channelsChecked", len(result.Channels)))

	return result, nil
}

func (v *telegramVerifier) CheckBotAdmin(ctx context.Context, botID int64) ([]ChannelResult, error) {
	results := make([]ChannelResult, 0, len(v.cfg.Channels))
	for _, channelID := range v.cfg.Channels {
		status, err := v.memberStatus(ctx, channelID, botID)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		results = append(results, ChannelResult{
			ChannelID:  channelID,
			Status:     status,
			Subscribed: err == nil && (status == domain.MEMBER_STATUS_ADMINISTRATOR || status == domain.MEMBER_STATUS_CREATOR),
			Err:        err,
		})
	}
	return results, nil
}

type memberReply struct {
	member *tele.ChatMember
	err    error
}

// memberStatus looks up one membership, bounded by the per channel timeout
func (v *telegramVerifier) memberStatus(ctx context.Context, channelID, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.PerChannelTimeout)
	defer cancel()

	if err := v.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: rate limit wait for %d: %v", domain.ErrExternalServiceUnavailable, channelID, err)
	}

	// telebot calls take no context, the reply is abandoned on timeout
	replies := make(chan memberReply, 1)
	go func() {
		member, err := v.api.ChatMemberOf(channelID, userID)
		replies <- memberReply{member: member, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: membership lookup in %d timed out", domain.ErrExternalServiceUnavailable, channelID)
		}
		return "", ctx.Err()
	case reply := <-replies:
		if reply.err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrExternalServiceUnavailable, reply.err)
		}
		if reply.member == nil {
			return "", fmt.Errorf("%w: empty membership for %d", domain.ErrExternalServiceUnavailable, channelID)
		}
		return string(reply.member.Role), nil
	}
}
