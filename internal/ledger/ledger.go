package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fhd3v0p/fsr-backend/internal/adapter"
	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/store"
	"github.com/fhd3v0p/fsr-backend/internal/store/schema"
	"github.com/fhd3v0p/fsr-backend/internal/types"
)

// activeWindow bounds "active users" in the global stats
const activeWindow = 7 * 24 * time.Hour

// RegisterUserInput is the profile of a user contacting the campaign plus an optional invite token
type RegisterUserInput struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	// InviterReferralCode is the invite token from a deep link, empty when absent
	InviterReferralCode string
}

// RegistrationResult reports the outcome of RegisterUser
type RegistrationResult struct {
	User domain.User
	// Created is false when the user was already registered
	Created bool
	// Credited is true when the inviter received a new referral edge
	Credited bool
	// Inviter is the resolved inviter, nil when no valid token was given
	Inviter *domain.User
	// Tickets is the user's ticket total after registration
	Tickets int
	// InviterCompletedGiveaway is true when this registration finished the inviter's last task
	InviterCompletedGiveaway bool
}

// CreditResult reports the outcome of CreditReferral
type CreditResult struct {
	Credited bool
	// InviterTickets is the inviter's ticket total after the call
	InviterTickets int
	// InviterCompletedGiveaway is true when this credit finished the inviter's last task
	InviterCompletedGiveaway bool
}

// ActivityResult reports the outcome of RecordActivity
type ActivityResult struct {
	// Tasks is the user's checklist after the entry was recorded
	Tasks domain.TaskStatus
	// Tickets is the user's ticket total
	Tickets int
	// GiveawayCompleted is true only for the call that completed the giveaway
	GiveawayCompleted bool
}

// Ledger is the only component that mutates users, referral edges and subscription status
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// RegisterUser creates the user on first contact and credits the inviter, idempotent per user id
	RegisterUser(ctx context.Context, input RegisterUserInput) (*RegistrationResult, error)
	// CreditReferral records that inviterID brought in inviteeID, at most once per pair
	CreditReferral(ctx context.Context, inviterID, inviteeID int64) (*CreditResult, error)
	// SetSubscriptionStatus records the outcome of a complete verification pass
	SetSubscriptionStatus(ctx context.Context, userID int64, allSubscribed bool) error
	// GetTicketTotal recomputes the user's tickets from the current rows
	GetTicketTotal(ctx context.Context, userID int64) (int, error)
	// GetReferralSummary returns the user's code, link, credited invites and tickets
	GetReferralSummary(ctx context.Context, userID int64) (*domain.ReferralSummary, error)
	// GenerateReferralCode returns a fresh code not yet assigned to anyone
	GenerateReferralCode(ctx context.Context) (string, error)
	// ResolveReferralCode returns the owner of an invite token
	ResolveReferralCode(ctx context.Context, code string) (*domain.User, error)

	// GetTicketStatus returns the ticket read model of a user
	GetTicketStatus(ctx context.Context, userID int64) (*domain.TicketStatus, error)
	// GetUserStats returns the profile with its derived ledger values
	GetUserStats(ctx context.Context, userID int64) (*domain.UserStats, error)
	// ListPrizes returns the prize catalog, highest value first
	ListPrizes(ctx context.Context) (*domain.PrizeCatalog, error)
	// GetGlobalStats returns campaign-wide counters
	GetGlobalStats(ctx context.Context) (*domain.GlobalStats, error)
	// TopReferrers returns the users with the most credited invites
	TopReferrers(ctx context.Context, limit int) ([]domain.ReferrerRank, error)
	// RecordActivity appends an entry to the activity log of an existing user
	RecordActivity(ctx context.Context, userID int64, eventType domain.EventType, details map[string]interface{}) (*ActivityResult, error)
	// UsersDueForVerification returns users never verified or verified longer than olderThan ago
	UsersDueForVerification(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error)
}

// Config holds the ledger settings
type Config struct {
	// BotUsername is used to build referral links
	BotUsername string
}

type ledger struct {
	cfg    Config
	store  store.Store
	codes  CodeGenerator
	clock  adapter.Clock
	logger *zap.Logger
}

// New creates a ledger on top of the given store
func New(cfg Config, st store.Store, codes CodeGenerator, clock adapter.Clock, log *zap.Logger) Ledger {
	return &ledger{
		cfg:    cfg,
		store:  st,
		codes:  codes,
		clock:  clock,
		logger: log,
	}
}

// storeError keeps ErrNotFound for the caller and hides every other store failure behind ErrStoreUnavailable
func (l *ledger) storeError(operation string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	l.logger.Error("Store operation failed", zap.String("operation", operation), zap.Error(err))
	return fmt.Errorf("%s: %w", operation, domain.ErrStoreUnavailable)
}

func (l *ledger) RegisterUser(ctx context.Context, input RegisterUserInput) (*RegistrationResult, error) {
	if input.ID <= 0 {
		return nil, fmt.Errorf("user id must be positive: %w", domain.ErrInvalidInput)
	}

	existing, err := l.store.GetUser(ctx, input.ID)
	if err != nil {
		return nil, l.storeError("get user", err)
	}
	if existing != nil {
		user, err := l.refreshProfile(ctx, *existing, input)
		if err != nil {
			return nil, err
		}
		return l.registrationResult(ctx, user, false, false, nil)
	}

	inviter := l.resolveInviter(ctx, input.ID, input.InviterReferralCode)
	var inviterID *int64
	if inviter != nil {
		inviterID = types.Int64Ptr(inviter.ID)
	}

	now := l.clock.Now()
	for attempt := 1; attempt <= domain.MAX_REFERRAL_CODE_ATTEMPTS; attempt++ {
		code, err := l.GenerateReferralCode(ctx)
		if err != nil {
			return nil, err
		}

		result, err := l.store.CreateUser(ctx, store.CreateUserInput{
			User: schema.User{
				ID:           input.ID,
				Username:     input.Username,
				FirstName:    input.FirstName,
				LastName:     input.LastName,
				ReferralCode: code,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			InviterID: inviterID,
		})
		if err != nil {
			if errors.Is(err, store.ErrReferralCodeTaken) {
				l.logger.Warn("Referral code taken on insert, retrying",
					zap.String("code", code),
					zap.Int("attempt", attempt))
				continue
			}
			return nil, l.storeError("create user", err)
		}

		user := types.UserToDomain(result.User)
		if !result.Created {
			// registered concurrently by another request
			return l.registrationResult(ctx, user, false, false, nil)
		}

		l.logger.Info("User registered",
			zap.Int64("userID", user.ID),
			zap.String("referralCode", user.ReferralCode),
			zap.Bool("credited", result.Credited))

		registration, err := l.registrationResult(ctx, user, true, result.Credited, inviter)
		if err != nil {
			return nil, err
		}
		if result.Credited && inviter != nil {
			registration.InviterCompletedGiveaway = l.markGiveawayCompleted(ctx, inviter.ID)
		}
		return registration, nil
	}

	return nil, fmt.Errorf("no free code after %d inserts: %w", domain.MAX_REFERRAL_CODE_ATTEMPTS, domain.ErrCodeSpaceExhausted)
}

// refreshProfile updates the non-empty profile fields that changed
func (l *ledger) refreshProfile(ctx context.Context, existing schema.User, input RegisterUserInput) (domain.User, error) {
	user := types.UserToDomain(existing)

	update := store.UpdateUserProfileInput{UserID: existing.ID}
	changed := false
	if input.Username != "" && input.Username != existing.Username {
		update.Username = input.Username
		user.Username = input.Username
		changed = true
	}
	if input.FirstName != "" && input.FirstName != existing.FirstName {
		update.FirstName = input.FirstName
		user.FirstName = input.FirstName
		changed = true
	}
	if input.LastName != "" && input.LastName != existing.LastName {
		update.LastName = input.LastName
		user.LastName = input.LastName
		changed = true
	}
	if !changed {
		return user, nil
	}

	update.UpdatedAt = l.clock.Now()
	if err := l.store.UpdateUserProfile(ctx, update); err != nil {
		return domain.User{}, l.storeError("update user profile", err)
	}
	user.UpdatedAt = update.UpdatedAt

	return user, nil
}

// resolveInviter returns the inviter owning code, nil when code is empty, unknown or the user's own
func (l *ledger) resolveInviter(ctx context.Context, inviteeID int64, code string) *domain.User {
	if code == "" {
		return nil
	}

	inviter, err := l.ResolveReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = fmt.Errorf("%w: %q", domain.ErrInvalidReferralCode, code)
		}
		l.logger.Warn("Ignoring invite token", zap.Int64("userID", inviteeID), zap.Error(err))
		return nil
	}
	if inviter.ID == inviteeID {
		l.logger.Info("Ignoring invite token", zap.Int64("userID", inviteeID), zap.Error(domain.ErrSelfReferral))
		return nil
	}

	return inviter
}

func (l *ledger) registrationResult(ctx context.Context, user domain.User, created, credited bool, inviter *domain.User) (*RegistrationResult, error) {
	tickets, err := l.GetTicketTotal(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &RegistrationResult{
		User:     user,
		Created:  created,
		Credited: credited,
		Inviter:  inviter,
		Tickets:  tickets,
	}, nil
}

func (l *ledger) CreditReferral(ctx context.Context, inviterID, inviteeID int64) (*CreditResult, error) {
	if inviterID <= 0 || inviteeID <= 0 {
		return nil, fmt.Errorf("user ids must be positive: %w", domain.ErrInvalidInput)
	}

	credited := false
	if inviterID != inviteeID {
		inserted, err := l.store.CreateReferralEdge(ctx, inviterID, inviteeID, l.clock.Now())
		if err != nil {
			return nil, l.storeError("create referral edge", err)
		}
		credited = inserted
	}

	if credited {
		l.logger.Info("Referral credited", zap.Int64("inviterID", inviterID), zap.Int64("inviteeID", inviteeID))
	} else {
		l.logger.Debug("Referral not credited", zap.Int64("inviterID", inviterID), zap.Int64("inviteeID", inviteeID))
	}

	tickets, err := l.GetTicketTotal(ctx, inviterID)
	if err != nil {
		return nil, err
	}

	result := &CreditResult{Credited: credited, InviterTickets: tickets}
	if credited {
		result.InviterCompletedGiveaway = l.markGiveawayCompleted(ctx, inviterID)
	}
	return result, nil
}

// markGiveawayCompleted reports whether this call completed the user's giveaway.
// A failure is only logged: the read models derive completion from the rows, only the announcement is lost.
func (l *ledger) markGiveawayCompleted(ctx context.Context, userID int64) bool {
	marked, err := l.store.MarkGiveawayCompleted(ctx, userID, l.clock.Now())
	if err != nil {
		l.logger.Error("Failed to mark giveaway completed", zap.Int64("userID", userID), zap.Error(err))
		return false
	}
	if marked {
		l.logger.Info("Giveaway completed", zap.Int64("userID", userID))
	}
	return marked
}

func (l *ledger) SetSubscriptionStatus(ctx context.Context, userID int64, allSubscribed bool) error {
	err := l.store.UpsertSubscriptionStatus(ctx, schema.SubscriptionStatus{
		UserID:        userID,
		AllSubscribed: allSubscribed,
		CheckedAt:     l.clock.Now(),
	})
	if err != nil {
		return l.storeError("upsert subscription status", err)
	}
	return nil
}

// ticketComponents loads one consistent snapshot of the user's ticket inputs
func (l *ledger) ticketComponents(ctx context.Context, userID int64) (*store.TicketComponents, error) {
	components, err := l.store.GetTicketComponents(ctx, userID)
	if err != nil {
		return nil, l.storeError("get ticket components", err)
	}
	if components == nil {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	return components, nil
}

func subscribed(components *store.TicketComponents) bool {
	return components.Status != nil && components.Status.AllSubscribed
}

func tasks(components *store.TicketComponents) domain.TaskStatus {
	return domain.TaskStatus{
		FolderSubscribed: components.FolderSubscribed,
		InvitedFriend:    components.CreditedInvites > 0,
	}
}

func (l *ledger) GetTicketTotal(ctx context.Context, userID int64) (int, error) {
	components, err := l.ticketComponents(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.TicketTotal(subscribed(components), components.CreditedInvites), nil
}

func (l *ledger) GetReferralSummary(ctx context.Context, userID int64) (*domain.ReferralSummary, error) {
	components, err := l.ticketComponents(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.ReferralSummary{
		Code:                components.User.ReferralCode,
		Link:                domain.ReferralLink(l.cfg.BotUsername, components.User.ReferralCode),
		CreditedInviteCount: components.CreditedInvites,
		Tickets:             domain.TicketTotal(subscribed(components), components.CreditedInvites),
	}, nil
}

func (l *ledger) GenerateReferralCode(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= domain.MAX_REFERRAL_CODE_ATTEMPTS; attempt++ {
		code, err := l.codes.Generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate referral code: %w", err)
		}

		exists, err := l.store.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", l.storeError("check referral code", err)
		}
		if !exists {
			return code, nil
		}
		l.logger.Debug("Referral code already assigned", zap.String("code", code), zap.Int("attempt", attempt))
	}

	return "", fmt.Errorf("after %d attempts: %w", domain.MAX_REFERRAL_CODE_ATTEMPTS, domain.ErrCodeSpaceExhausted)
}

func (l *ledger) ResolveReferralCode(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, fmt.Errorf("empty referral code: %w", domain.ErrInvalidInput)
	}

	user, err := l.store.GetUserByReferralCode(ctx, code)
	if err != nil {
		return nil, l.storeError("get user by referral code", err)
	}

	// links shared before codes existed carry the inviter's numeric id
	if user == nil && types.IsPositiveNumeric(code) {
		id, err := strconv.ParseInt(code, 10, 64)
		if err == nil {
			user, err = l.store.GetUser(ctx, id)
			if err != nil {
				return nil, l.storeError("get user", err)
			}
		}
	}

	if user == nil {
		return nil, fmt.Errorf("referral code %q: %w", code, domain.ErrNotFound)
	}

	u := types.UserToDomain(*user)
	return &u, nil
}

func (l *ledger) GetTicketStatus(ctx context.Context, userID int64) (*domain.TicketStatus, error) {
	components, err := l.ticketComponents(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &domain.TicketStatus{
		UserID:              components.User.ID,
		Username:            components.User.Username,
		ReferralCode:        components.User.ReferralCode,
		Subscribed:          subscribed(components),
		CreditedInviteCount: components.CreditedInvites,
		Tickets:             domain.TicketTotal(subscribed(components), components.CreditedInvites),
		Tasks:               tasks(components),
	}
	if components.Status != nil {
		checkedAt := components.Status.CheckedAt
		status.CheckedAt = &checkedAt
	}

	return status, nil
}

func (l *ledger) GetUserStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	components, err := l.ticketComponents(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.UserStats{
		User:                types.UserToDomain(components.User),
		Subscribed:          subscribed(components),
		CreditedInviteCount: components.CreditedInvites,
		Tickets:             domain.TicketTotal(subscribed(components), components.CreditedInvites),
		Tasks:               tasks(components),
	}, nil
}

func (l *ledger) ListPrizes(ctx context.Context) (*domain.PrizeCatalog, error) {
	prizes, err := l.store.ListPrizes(ctx)
	if err != nil {
		return nil, l.storeError("list prizes", err)
	}

	catalog := &domain.PrizeCatalog{Prizes: make([]domain.Prize, 0, len(prizes))}
	for _, p := range prizes {
		catalog.Prizes = append(catalog.Prizes, types.PrizeToDomain(p))
		catalog.TotalValue += p.Value
	}

	return catalog, nil
}

func (l *ledger) GetGlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	stats, err := l.store.GetGlobalStats(ctx, l.clock.Now().Add(-activeWindow))
	if err != nil {
		return nil, l.storeError("get global stats", err)
	}

	return &domain.GlobalStats{
		TotalUsers:      stats.TotalUsers,
		SubscribedUsers: stats.SubscribedUsers,
		TotalReferrals:  stats.TotalReferrals,
		ActiveUsers7d:   stats.ActiveUsers,
	}, nil
}

func (l *ledger) TopReferrers(ctx context.Context, limit int) ([]domain.ReferrerRank, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", domain.ErrInvalidInput)
	}

	referrers, err := l.store.GetTopReferrers(ctx, limit)
	if err != nil {
		return nil, l.storeError("get top referrers", err)
	}

	ranks := make([]domain.ReferrerRank, 0, len(referrers))
	for _, r := range referrers {
		ranks = append(ranks, domain.ReferrerRank{
			UserID:    r.UserID,
			Username:  r.Username,
			FirstName: r.FirstName,
			Invites:   r.Invites,
		})
	}
	return ranks, nil
}

func (l *ledger) RecordActivity(ctx context.Context, userID int64, eventType domain.EventType, details map[string]interface{}) (*ActivityResult, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id must be positive: %w", domain.ErrInvalidInput)
	}
	if eventType == domain.EventTypeGiveawayCompleted {
		return nil, fmt.Errorf("giveaway completion is derived from the tasks: %w", domain.ErrInvalidInput)
	}

	var raw datatypes.JSON
	if len(details) > 0 {
		data, err := json.Marshal(details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal activity details: %w", domain.ErrInvalidInput)
		}
		raw = datatypes.JSON(data)
	}

	err := l.store.CreateUserActivity(ctx, &schema.UserActivity{
		UserID:    userID,
		Action:    types.EventTypeToActivityAction(eventType),
		Details:   raw,
		CreatedAt: l.clock.Now(),
	})
	if err != nil {
		return nil, l.storeError("create user activity", err)
	}

	result := &ActivityResult{}
	if advancesTasks(eventType) {
		result.GiveawayCompleted = l.markGiveawayCompleted(ctx, userID)
	}

	components, err := l.ticketComponents(ctx, userID)
	if err != nil {
		return nil, err
	}
	result.Tasks = tasks(components)
	result.Tickets = domain.TicketTotal(subscribed(components), components.CreditedInvites)

	return result, nil
}

// advancesTasks reports whether an activity can finish a giveaway task
func advancesTasks(eventType domain.EventType) bool {
	return eventType == domain.EventTypeFolderSubscription || eventType == domain.EventTypeTaskCompleted
}

func (l *ledger) UsersDueForVerification(ctx context.Context, olderThan time.Duration, limit int) ([]int64, error) {
	ids, err := l.store.GetUserIDsDueForVerification(ctx, l.clock.Now().Add(-olderThan), limit)
	if err != nil {
		return nil, l.storeError("get users due for verification", err)
	}
	return ids, nil
}
