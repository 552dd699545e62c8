package common

import (
	"errors"
	"fmt"
)

// Error kinds. Every pipeline failure carries exactly one of these so the
// operator can decide whether to retry.
const (
	KindExtraction  = "EXTRACTION_ERROR"  // document unreadable/unsupported
	KindService     = "SERVICE_ERROR"     // language-model call failed
	KindParse       = "PARSE_ERROR"       // model response not valid structured data
	KindPersistence = "PERSISTENCE_ERROR" // atomic write failed, rolled back
	KindConfig      = "CONFIG_ERROR"      // invalid configuration
)

// ErrInvalidConfig is the root cause of configuration validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Constructors for the pipeline error taxonomy.
func NewExtractionError(message string, cause error) *AppError {
	return NewAppError(KindExtraction, message, cause)
}

func NewServiceError(message string, cause error) *AppError {
	return NewAppError(KindService, message, cause)
}

func NewParseError(message string, cause error) *AppError {
	return NewAppError(KindParse, message, cause)
}

func NewPersistenceError(message string, cause error) *AppError {
	return NewAppError(KindPersistence, message, cause)
}

func NewConfigError(message string, cause error) *AppError {
	return NewAppError(KindConfig, message, cause)
}

// IsKind reports whether err (or anything it wraps) is an AppError of the
// given kind.
func IsKind(err error, code string) bool {
	var ae *AppError
	for errors.As(err, &ae) {
		if ae.Code == code {
			return true
		}
		err = ae.Cause
		ae = nil
	}
	return false
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
