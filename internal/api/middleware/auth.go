package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/adapter"
	apierrors "github.com/fhd3v0p/fsr-backend/internal/api/shared/errors"
	"github.com/fhd3v0p/fsr-backend/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY contextKey = "auth_type"
	ADMIN_ID_KEY  contextKey = "admin_id"
)

const (
	AUTH_TYPE_ADMIN_TOKEN = "admin_token"
	AUTH_TYPE_API_KEY     = "apikey"
)

// AuthConfig holds authentication configuration for the admin routes
type AuthConfig struct {
	// TokenSecret verifies the admin tokens handed out by the bot
	TokenSecret string
	// AdminIDs are the telegram ids allowed to hold an admin token
	AdminIDs []int64
	// APIKeys are static keys for scripts and dashboards
	APIKeys []string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success  bool
	AuthType string
	// AdminID is the telegram id of the admin, zero for api keys
	AdminID int64
	Error   error
}

// Authenticate validates the Authorization header and returns the authentication result
func Authenticate(authHeader string, cfg AuthConfig, clock adapter.Clock) AuthResult {
	result := AuthResult{}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	scheme := strings.ToLower(parts[0])
	credentials := strings.TrimSpace(parts[1])

	switch scheme {
	case "bearer":
		adminID, err := auth.VerifyAdminToken(credentials, cfg.TokenSecret, cfg.AdminIDs, clock.Now())
		if err != nil {
			result.Error = err
			return result
		}
		result.Success = true
		result.AuthType = AUTH_TYPE_ADMIN_TOKEN
		result.AdminID = adminID

	case "apikey":
		if err := validateAPIKey(credentials, cfg.APIKeys); err != nil {
			result.Error = err
			return result
		}
		result.Success = true
		result.AuthType = AUTH_TYPE_API_KEY

	default:
		result.Error = fmt.Errorf("unsupported authorization type: %s", scheme)
	}

	return result
}

// Auth returns a gin middleware guarding the admin routes.
// It accepts admin tokens issued by the bot (Bearer) and static api keys (ApiKey).
func Auth(cfg AuthConfig, clock adapter.Clock, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := Authenticate(c.GetHeader("Authorization"), cfg, clock)

		if !result.Success {
			log.Warn("Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.NewErrorResponse(apiErr))
			return
		}

		c.Set(string(AUTH_TYPE_KEY), result.AuthType)
		if result.AdminID != 0 {
			c.Set(string(ADMIN_ID_KEY), result.AdminID)
		}
		log.Debug("Admin request authenticated",
			zap.String("path", c.Request.URL.Path),
			zap.String("auth_type", result.AuthType),
			zap.Int64("adminID", result.AdminID),
		)

		c.Next()
	}
}

// validateAPIKey compares the key against every configured key in constant time
func validateAPIKey(apiKey string, validKeys []string) error {
	configured := false
	for _, key := range validKeys {
		if key == "" {
			continue
		}
		configured = true
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
			return nil
		}
	}

	if !configured {
		return errors.New("no API keys configured")
	}
	return errors.New("invalid API key")
}
