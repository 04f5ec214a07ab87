package middleware

import (
	"time"

	"github.com/Triaksa-Space/cookie-notice/pkg/apperrors"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimiterConfig configures the per IP token bucket.
type RateLimiterConfig struct {
	Rate  rate.Limit    // requests per second
	Burst int           // bucket size
	Idle  time.Duration // visitors unseen for this long are forgotten
}

// NewRateLimiterStore keeps one limiter per client IP in memory. Stale
// visitors are cleaned up at most once per Idle period.
func NewRateLimiterStore(cfg RateLimiterConfig) *echomw.RateLimiterMemoryStore {
	if cfg.Idle <= 0 {
		cfg.Idle = 10 * time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      cfg.Rate,
		Burst:     cfg.Burst,
		ExpiresIn: cfg.Idle,
	})
}

// RateLimiterMiddleware answers 429 once an IP exhausts its bucket.
func RateLimiterMiddleware(store echomw.RateLimiterStore) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return apperrors.NewTooManyRequests(apperrors.ErrCodeRateLimitExceeded,
				"Too many requests from this IP, please try again later.")
		},
	})
}
