package middleware

import (
	"github.com/Triaksa-Space/cookie-notice/pkg/apperrors"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/labstack/echo/v4"
)

// CapabilityMiddleware rejects requests whose principal lacks capability.
// It must run after JWTMiddleware.
func CapabilityMiddleware(capability string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFromContext(c)
			if !ok {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenMissing, "Authentication required")
			}
			if !p.Can(capability) {
				logger.FromContext(c.Request().Context()).Warn("Capability check failed",
					logger.Capability(capability), logger.Int64("role_id", p.RoleID))
				return apperrors.NewForbidden(apperrors.ErrCodeMissingCapability,
					"You don't have permission to access this resource")
			}
			return next(c)
		}
	}
}
