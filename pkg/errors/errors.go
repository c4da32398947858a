package errors

import (
	"encoding/json"
	"fmt"
)

type AppError struct {
	Code    int    // HTTP status code or custom error code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

const (
	ErrInvalidTimestamp        = 1001
	ErrListingNotFound         = 1002
	ErrUnsupportedSortCriteria = 1003
	ErrCategoryNotFound        = 1004
	ErrBadMessageFormat        = 1005
	ErrUnknownMessageType      = 1006

	ErrInternalServer = 500
)

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ToJSON renders the error as a wire frame for WebSocket and HTTP payloads.
func (e *AppError) ToJSON() []byte {
	payload := struct {
		Type    string `json:"type"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{Type: "error", Code: e.Code, Message: e.Message}

	out, err := json.Marshal(payload)
	if err != nil {
		return []byte(`{"type":"error","message":"internal server error"}`)
	}
	return out
}

// Wrapping utility
func Wrap(err error, message string) *AppError {
	return &AppError{Message: message, Err: err}
}

// Error creation utility
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code int) bool {
	appErr, ok := err.(*AppError)
	if !ok {
		return false
	}
	return appErr.Code == code
}
