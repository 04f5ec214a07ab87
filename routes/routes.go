package routes

import (
	"net/http"

	"github.com/Triaksa-Space/cookie-notice/domain/banner"
	"github.com/Triaksa-Space/cookie-notice/domain/health"
	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/domain/settings"
	"github.com/Triaksa-Space/cookie-notice/middleware"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Deps carries the handlers and settings the routes are built from.
type Deps struct {
	Banner      *banner.Handler
	Settings    *settings.Handler
	Health      *health.Handler
	JWTSecret   string
	RateLimiter echomw.RateLimiterStore
}

// BodyLimit caps admin request bodies.
const BodyLimit = "64K"

func RegisterRoutes(e *echo.Echo, d Deps) {
	// Health
	e.GET("/health", d.Health.HealthHandler)
	e.GET("/health/live", d.Health.LivenessHandler)
	e.GET("/health/ready", d.Health.ReadinessHandler)
	e.GET("/health/stats", d.Health.StatsHandler)

	// Public notice
	noticeGroup := e.Group("/cookie-notice")
	noticeGroup.GET("", d.Banner.BannerHandler)
	noticeGroup.GET("/style.css", d.Banner.StyleHandler)
	noticeGroup.GET("/display", d.Banner.DisplayHandler)

	// Admin settings
	// the body limit runs before CSRF, which reads the form body
	adminGroup := e.Group(settings.PagePath,
		middleware.RateLimiterMiddleware(d.RateLimiter),
		echomw.BodyLimit(BodyLimit),
		middleware.JWTMiddleware(d.JWTSecret),
		echomw.CSRFWithConfig(echomw.CSRFConfig{
			// API clients authenticate with a header, which a browser never sends cross site
			Skipper: func(c echo.Context) bool {
				return c.Request().Header.Get(echo.HeaderAuthorization) != ""
			},
			TokenLookup:    "form:_csrf,header:" + echo.HeaderXCSRFToken,
			CookiePath:     settings.PagePath,
			CookieHTTPOnly: true,
			CookieSameSite: http.SameSiteStrictMode,
		}),
	)
	requireManage := middleware.CapabilityMiddleware(notice.CapabilityManageOptions)
	adminGroup.GET("", d.Settings.PageHandler, requireManage)
	adminGroup.GET("/settings", d.Settings.GetSettingsHandler, requireManage)
	// the capability check for saves happens in the validator
	adminGroup.POST("/settings", d.Settings.SaveSettingsHandler)
}
