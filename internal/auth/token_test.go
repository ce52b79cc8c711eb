package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhd3v0p/fsr-backend/internal/auth"
)

const testSecret = "admin-token-secret"

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func TestIsAdmin(t *testing.T) {
	admins := []int64{42, 43}

	assert.True(t, auth.IsAdmin(admins, 42))
	assert.False(t, auth.IsAdmin(admins, 44))
	assert.False(t, auth.IsAdmin(admins, 0))
	assert.False(t, auth.IsAdmin(nil, 42))
}

func TestAdminToken(t *testing.T) {
	admins := []int64{42}

	t.Run("round trip", func(t *testing.T) {
		token, err := auth.IssueAdminToken(testSecret, 42, time.Hour, fixedNow)
		require.NoError(t, err)

		adminID, err := auth.VerifyAdminToken(token, testSecret, admins, fixedNow.Add(30*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(42), adminID)
	})

	t.Run("zero ttl falls back to the default", func(t *testing.T) {
		token, err := auth.IssueAdminToken(testSecret, 42, 0, fixedNow)
		require.NoError(t, err)

		_, err = auth.VerifyAdminToken(token, testSecret, admins, fixedNow.Add(auth.DEFAULT_TOKEN_TTL-time.Minute))
		assert.NoError(t, err)
		_, err = auth.VerifyAdminToken(token, testSecret, admins, fixedNow.Add(auth.DEFAULT_TOKEN_TTL+time.Minute))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := auth.IssueAdminToken(testSecret, 42, time.Hour, fixedNow)
		require.NoError(t, err)

		_, err = auth.VerifyAdminToken(token, testSecret, admins, fixedNow.Add(2*time.Hour))
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("removed admin is rejected", func(t *testing.T) {
		token, err := auth.IssueAdminToken(testSecret, 42, time.Hour, fixedNow)
		require.NoError(t, err)

		_, err = auth.VerifyAdminToken(token, testSecret, []int64{43}, fixedNow)
		assert.ErrorIs(t, err, auth.ErrNotAdmin)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := auth.IssueAdminToken("other-secret", 42, time.Hour, fixedNow)
		require.NoError(t, err)

		_, err = auth.VerifyAdminToken(token, testSecret, admins, fixedNow)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = auth.VerifyAdminToken(token, testSecret, admins, fixedNow)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("token without expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:  auth.TOKEN_ISSUER,
			Subject: "42",
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = auth.VerifyAdminToken(token, testSecret, admins, fixedNow)
		assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
	})

	t.Run("non numeric subject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    auth.TOKEN_ISSUER,
			Subject:   "operator",
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = auth.VerifyAdminToken(token, testSecret, admins, fixedNow)
		assert.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := auth.IssueAdminToken("", 42, time.Hour, fixedNow)
		assert.ErrorIs(t, err, auth.ErrMissingSecret)

		_, err = auth.VerifyAdminToken("x", "", admins, fixedNow)
		assert.ErrorIs(t, err, auth.ErrMissingSecret)
	})

	t.Run("invalid admin id", func(t *testing.T) {
		_, err := auth.IssueAdminToken(testSecret, 0, time.Hour, fixedNow)
		assert.Error(t, err)
	})
}
