package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/store/schema"
)

func TestStringNilOrEmpty(t *testing.T) {
	assert.True(t, StringNilOrEmpty(nil))
	assert.True(t, StringNilOrEmpty(StringPtr("")))
	assert.False(t, StringNilOrEmpty(StringPtr("x")))
	assert.Equal(t, "", SafeString(nil))
	assert.Equal(t, "abc", SafeString(StringPtr("abc")))
	assert.Equal(t, int64(7), *Int64Ptr(7))
}

func TestIsPositiveNumeric(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"telegram id", "123456789", true},
		{"single digit", "7", true},
		{"zero", "0", false},
		{"leading zero", "0123", false},
		{"negative", "-5", false},
		{"referral code", "FSRAB12CD", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPositiveNumeric(tt.input))
		})
	}
}

func TestUserToDomain(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	u := UserToDomain(schema.User{
		ID:           42,
		Username:     "alice",
		FirstName:    "Alice",
		ReferralCode: "FSRAAAAAA",
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "FSRAAAAAA", u.ReferralCode)
	assert.Equal(t, now, u.CreatedAt)
}

func TestPrizeToDomain(t *testing.T) {
	p := PrizeToDomain(schema.Prize{ID: 1, Name: "Certificate", Value: 50000, Category: schema.PrizeCategoryCertificate})
	assert.Equal(t, "certificate", p.Category)
	assert.Equal(t, int64(50000), p.Value)
}

func TestEventTypeToActivityAction(t *testing.T) {
	tests := []struct {
		input    domain.EventType
		expected schema.ActivityAction
	}{
		{domain.EventTypeBotStart, schema.ActivityActionStart},
		{domain.EventTypeUserRegistered, schema.ActivityActionStart},
		{domain.EventTypeTaskCompleted, schema.ActivityActionTaskCompleted},
		{domain.EventTypeFolderSubscription, schema.ActivityActionFolderSubscription},
		{domain.EventTypeSubscriptionCheck, schema.ActivityActionSubscriptionCheck},
		{domain.EventTypeGiveawayCompleted, schema.ActivityActionGiveawayCompleted},
		{domain.EventType("custom"), schema.ActivityAction("custom")},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, EventTypeToActivityAction(tt.input))
		})
	}
}
