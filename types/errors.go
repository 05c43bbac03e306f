package types

import (
	"errors"
	"fmt"
)

const (
	ErrInvalidInput   = "Invalid input"
	ErrDatabaseError  = "Database error"
	ErrUnauthorized   = "Unauthorized access"
	ErrForbidden      = "Forbidden"
	ErrInternalError  = "internal server error"
	ErrValidation     = "Validation failed"
	ErrBadCredentials = "Invalid credentials"
)

// ErrorCode classifies an AppError for the HTTP layer.
type ErrorCode string

const (
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeDatabase          ErrorCode = "DB_ERROR"
)

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrRecordNotFound       = errors.New("monthly record not found")
	ErrPayRequestNotFound   = errors.New("pay request not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicateEmail       = errors.New("email address already exists")
	ErrDuplicateRecord      = errors.New("monthly record already exists for this period")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNotReceiver          = errors.New("only the receiver can mark a message as read")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError carries a code the handlers translate into a status and a message safe for clients.
type AppError struct {
	Code    ErrorCode
	Message string
	Fields  []FieldError
	Err     error
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

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NotFound(err error) *AppError {
	return &AppError{Code: CodeNotFound, Message: capitalize(err.Error()), Err: err}
}

func Conflict(err error) *AppError {
	return &AppError{Code: CodeConflict, Message: capitalize(err.Error()), Err: err}
}

// Transition wraps ErrInvalidTransition with the offending states.
func Transition(what, from, to string) *AppError {
	return &AppError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("Cannot change %s from %s to %s", what, from, to),
		Err:     ErrInvalidTransition,
	}
}

func Database(err error) *AppError {
	return &AppError{Code: CodeDatabase, Message: ErrDatabaseError, Err: err}
}

// AsAppError unwraps err into an AppError when one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
