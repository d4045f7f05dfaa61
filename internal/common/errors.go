package common

import (
	"errors"
	"fmt"
)

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

// Common application errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrManifest           = errors.New("invalid manifest")
	ErrMissingFiles       = errors.New("project entry has no files mapping")
	ErrDecoderUnavailable = errors.New("document decoder unavailable")
	ErrUnsupportedFormat  = errors.New("unsupported format")
)

// Error codes for fatal, run-aborting conditions.
const (
	CodeConfig   = "CONFIG_ERROR"
	CodeManifest = "MANIFEST_ERROR"
	CodeDecoder  = "DECODER_UNAVAILABLE"
	CodeOutput   = "OUTPUT_ERROR"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Truncate caps a diagnostic string at max bytes, keeping UTF-8 intact.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
