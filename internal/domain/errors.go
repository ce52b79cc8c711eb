package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced user or referral code does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a record already exists.
	// Ledger callers never see it, duplicates resolve to idempotent success.
	ErrConflict = errors.New("conflict")

	// ErrExternalServiceUnavailable is returned when the messaging platform failed or timed out
	ErrExternalServiceUnavailable = errors.New("external service unavailable")

	// ErrStoreUnavailable is returned when the persistent store cannot serve the operation
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrCodeSpaceExhausted is returned when referral code generation ran out of attempts
	ErrCodeSpaceExhausted = errors.New("referral code space exhausted")

	// ErrInvalidReferralCode is returned when an invite token does not resolve to a user
	ErrInvalidReferralCode = errors.New("invalid referral code")

	// ErrSelfReferral is returned when a user tries to refer themselves
	ErrSelfReferral = errors.New("self referral")

	// ErrInvalidInput is returned for malformed arguments
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueueFull is returned when a worker pool cannot accept more tasks
	ErrQueueFull = errors.New("queue full")
)
