package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// AppError is an error with a machine-readable code and the HTTP status it maps to.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
	Stack      string `json:"-"` // only captured for 5xx errors
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail sets a human readable detail and returns e.
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// New creates an AppError for an arbitrary status.
func New(status int, code, message string, err error) *AppError {
	e := &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
		Err:        err,
	}
	if status >= http.StatusInternalServerError {
		e.Stack = getStack()
	}
	return e
}

func NewBadRequest(code, message string) *AppError {
	return New(http.StatusBadRequest, code, message, nil)
}

func NewUnauthorized(code, message string) *AppError {
	return New(http.StatusUnauthorized, code, message, nil)
}

func NewForbidden(code, message string) *AppError {
	return New(http.StatusForbidden, code, message, nil)
}

func NewTooManyRequests(code, message string) *AppError {
	return New(http.StatusTooManyRequests, code, message, nil)
}

func NewRequestTooLarge(code, message string) *AppError {
	return New(http.StatusRequestEntityTooLarge, code, message, nil)
}

// NewInternal wraps err as a 500 error.
func NewInternal(code, message string, err error) *AppError {
	return New(http.StatusInternalServerError, code, message, err)
}

// NewServiceUnavailable wraps err as a 503 error.
func NewServiceUnavailable(code, message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, code, message, err)
}

func getStack() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// AsAppError finds an AppError anywhere in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsAppError reports whether err's chain holds an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}
