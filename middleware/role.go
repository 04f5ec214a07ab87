package middleware

import (
	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/labstack/echo/v4"
)

const (
	RoleSuperAdmin int64 = 0
	RoleAdmin      int64 = 2
	RoleUser       int64 = 1
)

const principalKey = "principal"

// roleCapabilities lists what each role may do. Unknown roles get nothing.
var roleCapabilities = map[int64][]string{
	RoleSuperAdmin: {notice.CapabilityManageOptions},
	RoleAdmin:      {notice.CapabilityManageOptions},
	RoleUser:       nil,
}

// Principal is the authenticated user behind a request.
type Principal struct {
	UserID int64
	RoleID int64
}

// Can reports whether the principal's role grants capability.
func (p Principal) Can(capability string) bool {
	for _, c := range roleCapabilities[p.RoleID] {
		if c == capability {
			return true
		}
	}
	return false
}

// PrincipalFromContext returns the principal set by JWTMiddleware.
func PrincipalFromContext(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}

// SetPrincipal stores p on the request, including the user id the request
// logger reports.
func SetPrincipal(c echo.Context, p Principal) {
	c.Set("user_id", p.UserID)
	c.Set("role_id", p.RoleID)
	c.Set(principalKey, p)
	ctx := logger.WithUserIDContext(c.Request().Context(), p.UserID)
	c.SetRequest(c.Request().WithContext(ctx))
}
