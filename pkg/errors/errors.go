package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Table integrity errors
	ErrUnknownHeader    ErrorCode = "UNKNOWN_HEADER"
	ErrDuplicateHeader  ErrorCode = "DUPLICATE_HEADER"
	ErrDuplicateBinding ErrorCode = "DUPLICATE_BINDING"
	ErrRowArity         ErrorCode = "ROW_ARITY"
	ErrNoCurrentRow     ErrorCode = "NO_CURRENT_ROW"
	ErrBindTarget       ErrorCode = "BIND_TARGET"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileCreate ErrorCode = "FILE_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// StatError represents a structured error with code and details
type StatError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StatError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StatError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *StatError) Is(target error) bool {
	var targetErr *StatError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new StatError with the given code and message
func New(code ErrorCode, message string) *StatError {
	return &StatError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StatError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StatError {
	return &StatError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StatError
func Wrap(err error, code ErrorCode, message string) *StatError {
	if err == nil {
		return nil
	}
	return &StatError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StatError {
	if err == nil {
		return nil
	}
	return &StatError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *StatError) WithDetail(key string, value interface{}) *StatError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var statErr *StatError
	if errors.As(err, &statErr) {
		return statErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a StatError
func GetErrorCode(err error) ErrorCode {
	var statErr *StatError
	if errors.As(err, &statErr) {
		return statErr.Code
	}
	return ErrUnknown
}
