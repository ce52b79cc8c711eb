package auth

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TOKEN_ISSUER is the issuer claim of every admin token
	TOKEN_ISSUER = "fsr-backend"
	// DEFAULT_TOKEN_TTL is how long an admin token stays valid when no ttl is configured
	DEFAULT_TOKEN_TTL = 12 * time.Hour
)

var (
	ErrMissingSecret = errors.New("admin token secret not configured")
	ErrNotAdmin      = errors.New("subject is not a campaign admin")
)

// IsAdmin reports whether the telegram user id is one of the campaign admins
func IsAdmin(adminIDs []int64, userID int64) bool {
	return userID > 0 && slices.Contains(adminIDs, userID)
}

// IssueAdminToken signs a token whose subject is the telegram id of an admin
func IssueAdminToken(secret string, adminID int64, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	if adminID <= 0 {
		return "", fmt.Errorf("invalid admin id %d", adminID)
	}
	if ttl <= 0 {
		ttl = DEFAULT_TOKEN_TTL
	}

	claims := jwt.RegisteredClaims{
		Issuer:    TOKEN_ISSUER,
		Subject:   strconv.FormatInt(adminID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAdminToken validates the token and returns the admin id it was issued to.
// The subject must still be listed in adminIDs, removing an admin revokes their tokens.
func VerifyAdminToken(tokenString, secret string, adminIDs []int64, now time.Time) (int64, error) {
	if secret == "" {
		return 0, ErrMissingSecret
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TOKEN_ISSUER),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}

	adminID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject %q", claims.Subject)
	}
	if !IsAdmin(adminIDs, adminID) {
		return 0, ErrNotAdmin
	}

	return adminID, nil
}
