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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Color and style errors
	ErrInvalidColor     ErrorCode = "INVALID_COLOR"
	ErrUnknownAttribute ErrorCode = "UNKNOWN_ATTRIBUTE"
	ErrInvalidShorthand ErrorCode = "INVALID_SHORTHAND"
	ErrUnresolvedAlias  ErrorCode = "UNRESOLVED_ALIAS"
	ErrCycleDetected    ErrorCode = "CYCLE_DETECTED"

	// Registry errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrThemeNotFound    ErrorCode = "THEME_NOT_FOUND"
	ErrLoadError        ErrorCode = "LOAD_ERROR"
	ErrParseError       ErrorCode = "PARSE_ERROR"

	// Rendering errors
	ErrRenderError ErrorCode = "RENDER_ERROR"
	ErrLayoutError ErrorCode = "LAYOUT_ERROR"

	// Dispatch errors
	ErrHookError ErrorCode = "HOOK_ERROR"

	// Query errors
	ErrQueryCompile ErrorCode = "QUERY_COMPILE"
)

// TelaError represents a structured error with code and details
type TelaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TelaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TelaError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TelaError) Is(target error) bool {
	var targetErr *TelaError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TelaError with the given code and message
func New(code ErrorCode, message string) *TelaError {
	return &TelaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TelaError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TelaError {
	return &TelaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TelaError
func Wrap(err error, code ErrorCode, message string) *TelaError {
	if err == nil {
		return nil
	}
	return &TelaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TelaError {
	if err == nil {
		return nil
	}
	return &TelaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TelaError) WithDetail(key string, value interface{}) *TelaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TelaError) WithDetails(details map[string]interface{}) *TelaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var telaErr *TelaError
	if errors.As(err, &telaErr) {
		return telaErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TelaError
func GetErrorCode(err error) ErrorCode {
	var telaErr *TelaError
	if errors.As(err, &telaErr) {
		return telaErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TelaError
func GetErrorDetails(err error) map[string]interface{} {
	var telaErr *TelaError
	if errors.As(err, &telaErr) {
		return telaErr.Details
	}
	return nil
}
