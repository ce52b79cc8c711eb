package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/fhd3v0p/fsr-backend/internal/api/shared/errors"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewErrorResponse(apierrors.NewBadRequestError(message, details...)))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, apierrors.NewErrorResponse(apierrors.NewValidationError(message)))
}

// respondDomainError classifies err and responds with the matching status.
// Server side failures are logged, their detail never reaches the client.
func (h *handler) respondDomainError(c *gin.Context, err error, message string, fields ...zap.Field) {
	status, apiErr := apierrors.FromDomainError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, append(fields, zap.Error(err))...)
	}
	c.JSON(status, apierrors.NewErrorResponse(apiErr))
}
