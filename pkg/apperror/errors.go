package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Is reports whether err is an AppError carrying code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

const (
	CodeNotFound         = "LED_001"
	CodeLimitExceeded    = "LED_002"
	CodeMalformedInput   = "LED_003"
	CodeStoreUnavailable = "SYS_001"
	CodeRateLimited      = "RATE_001"
)

// ---- Ledger (LED) ----

func ErrNotFound() *AppError {
	return New(CodeNotFound, "Client not found", http.StatusNotFound)
}

func ErrLimitExceeded() *AppError {
	return New(CodeLimitExceeded, "Transaction rejected: limit exceeded", http.StatusUnprocessableEntity)
}

// MalformedInput rejects a payload before it reaches the ledger.
func MalformedInput(reason string) *AppError {
	return New(CodeMalformedInput, reason, http.StatusUnprocessableEntity)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// StoreUnavailable marks a failure talking to the database. Nothing was committed,
// so callers may retry.
func StoreUnavailable(err error) *AppError {
	return Wrap(CodeStoreUnavailable, "Store unavailable", http.StatusServiceUnavailable, err)
}
