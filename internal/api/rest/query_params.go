package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fhd3v0p/fsr-backend/internal/api/shared/constants"
	"github.com/fhd3v0p/fsr-backend/internal/types"
)

// AdminStatsQueryParams holds query parameters for GET /admin/stats
type AdminStatsQueryParams struct {
	Limit int `form:"limit,default=5"`
}

// Validate validates the admin stats query parameters
func (p *AdminStatsQueryParams) Validate() error {
	if p.Limit < 1 || p.Limit > constants.MAX_TOP_REFERRERS {
		return fmt.Errorf("limit must be between 1 and %d", constants.MAX_TOP_REFERRERS)
	}
	return nil
}

// ParseAdminStatsQuery parses query parameters for GET /admin/stats
func ParseAdminStatsQuery(c *gin.Context) (*AdminStatsQueryParams, error) {
	var params AdminStatsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// parseUserIDParam reads the :id path parameter as a Telegram user id
func parseUserIDParam(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	if !types.IsPositiveNumeric(raw) {
		return 0, fmt.Errorf("user id must be a positive integer")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("user id out of range")
	}
	return id, nil
}
