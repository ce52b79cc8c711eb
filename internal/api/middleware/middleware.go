package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/api/shared/constants"
	apierrors "github.com/fhd3v0p/fsr-backend/internal/api/shared/errors"
)

const REQUEST_ID_KEY contextKey = "request_id"

// RequestID returns a gin middleware that propagates or assigns a request id
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.REQUEST_ID_HEADER)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(string(REQUEST_ID_KEY), requestID)
		c.Header(constants.REQUEST_ID_HEADER, requestID)
		c.Next()
	}
}

// Logger returns a gin middleware for structured logging using zap
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)

		log.Info("API request",
			zap.String("request_id", c.GetString(string(REQUEST_ID_KEY))),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// Recovery returns a gin middleware for panic recovery with logging
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered",
					zap.Error(fmt.Errorf("%v", err)),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(string(REQUEST_ID_KEY))),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apierrors.NewErrorResponse(apierrors.NewInternalError("Internal server error")))
			}
		}()
		c.Next()
	}
}
