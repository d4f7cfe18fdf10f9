package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeFileParse         = "FILE_PARSE_ERROR"
	CodeOracleQuota       = "ORACLE_QUOTA"
	CodeOracleError       = "ORACLE_ERROR"
	CodeRenderError       = "RENDER_ERROR"
)

// HTTPStatus maps an error to the response status the caller should see.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeUnsupportedFormat, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeOracleQuota:
		return http.StatusTooManyRequests
	case CodeOracleError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func UnsupportedFormat(extension string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported file format: %s", extension))
}

func FileParseError(cause error) *AppError {
	return &AppError{
		Code:    CodeFileParse,
		Message: "error reading file",
		Cause:   cause,
	}
}

func OracleQuotaExceeded() *AppError {
	return New(CodeOracleQuota, "AI quota exceeded. Please try again in a minute.")
}

func OracleError(cause error) *AppError {
	return &AppError{
		Code:    CodeOracleError,
		Message: "AI service error",
		Cause:   cause,
	}
}
