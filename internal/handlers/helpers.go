package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fundledger/internal/errors"
	"fundledger/internal/logger"
	"fundledger/internal/middleware"
	"fundledger/internal/models"
)

// getOrgID extracts the authenticated organization ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getOrgID(c *gin.Context) (uint, error) {
	orgID, exists := c.Get(middleware.OrgIDKey)
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	id, ok := orgID.(uint)
	if !ok || id == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// authorizeOrg resolves the organization a request targets. A zero requested
// id means the caller's own organization; any other organization is forbidden.
func authorizeOrg(c *gin.Context, requested uint) (uint, error) {
	orgID, err := getOrgID(c)
	if err != nil {
		return 0, err
	}
	if requested != 0 && requested != orgID {
		return 0, apperrors.ErrForbidden
	}
	return orgID, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// PeriodQuery carries the academic period of a read request.
type PeriodQuery struct {
	Semester   string `form:"semester"`
	SchoolYear string `form:"school_year"`
}

// Period returns the trimmed period.
func (q PeriodQuery) Period() models.Period {
	return models.NewPeriod(q.Semester, q.SchoolYear)
}

// bindPeriod reads semester and school_year from the query string.
func bindPeriod(c *gin.Context) (models.Period, error) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return models.Period{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	period := q.Period()
	if !period.IsComplete() {
		return models.Period{}, apperrors.ErrPeriodRequired
	}
	return period, nil
}

var flexibleTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseFlexibleTime accepts RFC 3339 timestamps, HTML datetime-local values,
// and plain dates. Values without a zone are read as UTC.
func parseFlexibleTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range flexibleTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", value)
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. A deficit
// additionally carries the confirmation prompt. Otherwise it logs the
// unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var deficit *apperrors.DeficitError
	if errors.As(err, &deficit) {
		c.JSON(apperrors.ErrDeficitConfirmationNeeded.StatusCode, gin.H{
			"success":               false,
			"requires_confirmation": true,
			"message":               deficit.Error(),
			"current_balance":       deficit.CurrentBalance.StringFixed(2),
			"amount":                deficit.Amount.StringFixed(2),
			"fund_id":               deficit.FundID,
			"error": gin.H{
				"code":    apperrors.ErrDeficitConfirmationNeeded.Code,
				"message": deficit.Error(),
			},
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, errorBody(appErr))
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, errorBody(apperrors.ErrInternalServer))
}

func errorBody(appErr *apperrors.AppError) gin.H {
	return gin.H{
		"success": false,
		"message": appErr.Message,
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	}
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   ErrorDetail `json:"error"`
}

// DeficitResponse is returned with 409 when an outflow needs confirmation.
type DeficitResponse struct {
	Success              bool        `json:"success"`
	RequiresConfirmation bool        `json:"requires_confirmation"`
	Message              string      `json:"message"`
	CurrentBalance       string      `json:"current_balance"`
	Amount               string      `json:"amount"`
	FundID               uint        `json:"fund_id"`
	Error                ErrorDetail `json:"error"`
}
