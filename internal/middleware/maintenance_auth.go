package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fundledger/internal/errors"
)

// MaintenanceKeyMiddleware guards ledger maintenance routes with the X-API-Key
// header. An empty configured key disables the routes.
func MaintenanceKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWithError(c, &apperrors.AppError{
				Code:       "MAINTENANCE_NOT_CONFIGURED",
				Message:    "Maintenance endpoints are not configured",
				StatusCode: http.StatusServiceUnavailable,
			})
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithError(c, &apperrors.AppError{
				Code:       "INVALID_API_KEY",
				Message:    "Invalid or missing API key",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}
		c.Next()
	}
}
