package store

import (
	"context"
	"time"

	"github.com/fhd3v0p/fsr-backend/internal/store/schema"
)

// CreateUserInput represents the data needed to register a user
type CreateUserInput struct {
	User schema.User
	// InviterID is credited with a referral edge in the same transaction when set
	InviterID *int64
}

// CreateUserResult reports what CreateUser actually wrote
type CreateUserResult struct {
	// User is the stored row, the pre-existing one when Created is false
	User schema.User
	// Created is false when a user with the same id already existed
	Created bool
	// Credited is true when a new referral edge was inserted for the inviter
	Credited bool
}

// UpdateUserProfileInput represents the refreshable profile fields of a user.
// Empty values leave the stored field untouched.
type UpdateUserProfileInput struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string
	UpdatedAt time.Time
}

// TicketComponents is a single consistent snapshot of everything a ticket total is derived from
type TicketComponents struct {
	User schema.User
	// Status is nil when the user was never verified
	Status *schema.SubscriptionStatus
	// CreditedInvites is the number of referral edges where the user is the inviter
	CreditedInvites int64
	// FolderSubscribed is true when a folder subscription was logged for the user
	FolderSubscribed bool
}

// GlobalStats holds campaign-wide counters
type GlobalStats struct {
	TotalUsers      int64
	SubscribedUsers int64
	TotalReferrals  int64
	ActiveUsers     int64
}

// ReferrerCount is a user with the number of referral edges they own
type ReferrerCount struct {
	UserID    int64
	Username  string
	FirstName string
	Invites   int64
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetUser retrieves a user by id, returns nil when absent
	GetUser(ctx context.Context, userID int64) (*schema.User, error)
	// GetUserByReferralCode retrieves a user by exact, case-sensitive referral code, returns nil when absent
	GetUserByReferralCode(ctx context.Context, code string) (*schema.User, error)
	// ReferralCodeExists checks whether a referral code is already assigned
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	// CreateUser inserts a user unless the id exists and optionally credits the inviter, in one transaction.
	// A referral code collision fails with ErrReferralCodeTaken and writes nothing.
	CreateUser(ctx context.Context, input CreateUserInput) (*CreateUserResult, error)
	// UpdateUserProfile refreshes username and names, never the referral code or created_at
	UpdateUserProfile(ctx context.Context, input UpdateUserProfileInput) error

	// CreateReferralEdge inserts the (inviter, invitee) edge unless it already exists.
	// Returns false when the edge was already present.
	CreateReferralEdge(ctx context.Context, inviterID, inviteeID int64, createdAt time.Time) (bool, error)
	// CountReferralEdges counts edges where the user is the inviter
	CountReferralEdges(ctx context.Context, inviterID int64) (int64, error)

	// UpsertSubscriptionStatus writes the latest verification result for an existing user
	UpsertSubscriptionStatus(ctx context.Context, status schema.SubscriptionStatus) error
	// GetSubscriptionStatus retrieves the latest verification result, returns nil when never verified
	GetSubscriptionStatus(ctx context.Context, userID int64) (*schema.SubscriptionStatus, error)
	// GetTicketComponents reads user, status and invite count in one statement, returns nil when the user is absent
	GetTicketComponents(ctx context.Context, userID int64) (*TicketComponents, error)
	// GetUserIDsDueForVerification returns users never verified or last verified before checkedBefore, oldest first
	GetUserIDsDueForVerification(ctx context.Context, checkedBefore time.Time, limit int) ([]int64, error)

	// ListPrizes returns the prize catalog ordered by value, highest first
	ListPrizes(ctx context.Context) ([]schema.Prize, error)
	// GetGlobalStats computes campaign-wide counters, activeSince bounds the active users window
	GetGlobalStats(ctx context.Context, activeSince time.Time) (*GlobalStats, error)
	// GetTopReferrers returns users ordered by referral edge count
	GetTopReferrers(ctx context.Context, limit int) ([]ReferrerCount, error)

	// CreateUserActivity appends an entry to the activity log, an unknown user fails with domain.ErrNotFound
	CreateUserActivity(ctx context.Context, activity *schema.UserActivity) error
	// MarkGiveawayCompleted records the giveaway completion of a user who logged a folder subscription
	// and owns at least one referral edge. Returns true only for the call that wrote the marker.
	MarkGiveawayCompleted(ctx context.Context, userID int64, completedAt time.Time) (bool, error)

	// Ping checks the database is reachable
	Ping(ctx context.Context) error
}
