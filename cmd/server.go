package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Triaksa-Space/cookie-notice/domain/banner"
	"github.com/Triaksa-Space/cookie-notice/domain/health"
	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/domain/settings"
	"github.com/Triaksa-Space/cookie-notice/middleware"
	"github.com/Triaksa-Space/cookie-notice/pkg/apperrors"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/Triaksa-Space/cookie-notice/routes"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the notice and the admin settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return startServer(ctx)
	},
}

func startServer(ctx context.Context) error {
	log := logger.Get()
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	b, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	repo := newRepository(b)
	validator := notice.NewValidator()

	healthHandler := health.NewHandler(version)
	if b.db != nil {
		healthHandler.Register("database", b.db.PingContext)
	}
	if b.redis != nil {
		healthHandler.RegisterOptional("redis", func(ctx context.Context) error {
			return b.redis.Ping(ctx).Err()
		})
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log)
	e.Use(logger.RequestLoggerMiddleware(log))
	e.Use(logger.RecoveryMiddleware(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXCSRFToken},
		ExposeHeaders:    []string{echo.HeaderContentLength, logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	routes.RegisterRoutes(e, routes.Deps{
		Banner:    banner.NewHandler(repo, notice.NewRenderer()),
		Settings:  settings.NewHandler(repo, validator),
		Health:    healthHandler,
		JWTSecret: cfg.JWTSecret,
		RateLimiter: middleware.NewRateLimiterStore(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.AdminRateLimit),
			Burst: cfg.AdminRateBurst,
		}),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", logger.String("port", cfg.Port), logger.String("environment", cfg.Environment))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
