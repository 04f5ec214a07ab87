package logger

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestLoggerMiddleware assigns a request id, stores a request-scoped logger in the
// request context and logs the outcome of every request.
func RequestLoggerMiddleware(log Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Set(string(ContextKeyRequestID), requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			reqLog := log.WithRequestID(requestID).WithFields(
				Method(req.Method),
				Path(req.URL.Path),
				RemoteIP(c.RealIP()),
			)
			ctx := WithRequestIDContext(req.Context(), requestID)
			ctx = WithLoggerContext(ctx, reqLog)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)
			if err != nil {
				// let the error handler write the response so the status is final
				c.Error(err)
			}

			status := c.Response().Status
			fields := []Field{
				Status(status),
				Duration("duration_ms", time.Since(start)),
				Int64("bytes_out", c.Response().Size),
			}
			if userID, ok := c.Get("user_id").(int64); ok {
				fields = append(fields, UserID(userID))
			}

			switch {
			case status >= http.StatusInternalServerError:
				reqLog.Error("Server error response", err, fields...)
			case status >= http.StatusBadRequest:
				reqLog.Warn("Client error response", fields...)
			default:
				reqLog.Info("Request completed", fields...)
			}
			return nil
		}
	}
}

// RecoveryMiddleware turns a panic into a logged 500 response.
func RecoveryMiddleware(log Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				requestID := GetRequestIDFromContext(c)
				log.WithRequestID(requestID).Error("Panic recovered", nil,
					Any("panic", r),
					Method(c.Request().Method),
					Path(c.Request().URL.Path),
				)
				err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"error":      "INTERNAL_ERROR",
					"message":    "An unexpected error occurred",
					"request_id": requestID,
				})
			}()
			return next(c)
		}
	}
}

// GetRequestIDFromContext returns the request id set by RequestLoggerMiddleware.
func GetRequestIDFromContext(c echo.Context) string {
	if requestID, ok := c.Get(string(ContextKeyRequestID)).(string); ok {
		return requestID
	}
	return ""
}
