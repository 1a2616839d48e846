package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/acadtrack/tracker-api/internal/authz"
	"github.com/acadtrack/tracker-api/internal/models"
	"github.com/acadtrack/tracker-api/internal/service"
	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
	"github.com/acadtrack/tracker-api/pkg/response"
)

// Require gates a route on the authorization table. It runs after JWT and
// consults the table with the caller's role before any handler logic.
func Require(op authz.Operation, metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			metrics.RecordAuthFailure("missing_claims")
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			metrics.RecordAuthFailure("missing_claims")
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !authz.Allowed(op, claims.Role) {
			metrics.RecordAuthFailure("forbidden")
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role not permitted for this operation"))
			c.Abort()
			return
		}

		c.Next()
	}
}
