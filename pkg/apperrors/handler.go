package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HTTPErrorHandler renders AppErrors and echo errors as ErrorResponse and logs them.
func HTTPErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		err = fromHTTPError(err)
		requestID := logger.GetRequestIDFromContext(c)
		reqLog := log.WithRequestID(requestID)

		var (
			status   int
			response ErrorResponse
			httpErr  *echo.HTTPError
		)
		if appErr, ok := AsAppError(err); ok {
			status = appErr.HTTPStatus
			response = ErrorResponse{
				Error:     appErr.Code,
				Message:   appErr.Message,
				Detail:    appErr.Detail,
				RequestID: requestID,
			}
			if status >= http.StatusInternalServerError {
				reqLog.Error("Internal error", appErr.Err,
					logger.String("error_code", appErr.Code),
					logger.String("stack", appErr.Stack),
				)
			} else {
				reqLog.Warn("Client error",
					logger.String("error_code", appErr.Code),
					logger.String("message", appErr.Message),
				)
			}
		} else if errors.As(err, &httpErr) {
			status = httpErr.Code
			msg, ok := httpErr.Message.(string)
			if !ok {
				msg = fmt.Sprint(httpErr.Message)
			}
			response = ErrorResponse{
				Error:     "HTTP_ERROR",
				Message:   msg,
				RequestID: requestID,
			}
			if status >= http.StatusInternalServerError {
				reqLog.Error("HTTP error", httpErr.Internal, logger.Status(status))
			}
		} else {
			status = http.StatusInternalServerError
			response = ErrorResponse{
				Error:     ErrCodeUnexpectedError,
				Message:   "An unexpected error occurred",
				RequestID: requestID,
			}
			reqLog.Error("Unhandled error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, response)
		}
		if writeErr != nil {
			reqLog.Error("Failed to write error response", writeErr)
		}
	}
}

// fromHTTPError maps echo errors that have a domain code onto AppErrors.
func fromHTTPError(err error) error {
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	switch httpErr.Code {
	case http.StatusRequestEntityTooLarge:
		return NewRequestTooLarge(ErrCodeBodyTooLarge, "Request body is too large")
	}
	return err
}

// RespondWithSuccess writes data as a 200 JSON response.
func RespondWithSuccess(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}
