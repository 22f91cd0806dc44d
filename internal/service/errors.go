package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-api-template/models"
)

// Sentinel errors returned by service methods to signal business-rule
// failures. Callers should use [errors.Is] to match against these values.
var (
	// ErrInvalidDataProvided is returned when a request body fails
	// field-level validation.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWeakPassword is returned when a password fails the development
	// strength check. Use [errors.As] with [*WeakPasswordError] to obtain
	// the individual violations.
	ErrWeakPassword = errors.New("password does not meet strength requirements")

	// ErrInvalidCredentials is returned on login when no account matches
	// the identifier or the password comparison fails.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInactiveAccount is returned on login when the credentials match a
	// soft-deleted account.
	ErrInactiveAccount = errors.New("user account is inactive")

	// ErrEmptyFilename is returned when an upload arrives without a
	// filename.
	ErrEmptyFilename = errors.New("filename must not be empty")

	// ErrUnsupportedFileType is returned when an upload's extension is not
	// on the allow-list.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file size exceeds limit")

	// ErrTooManyFiles is returned when a batch upload exceeds the per-request
	// file cap.
	ErrTooManyFiles = errors.New("too many files in one request")
)

// WeakPasswordError carries every strength rule the password violated, not
// just the first. It unwraps to [ErrWeakPassword] so callers can match the
// class with [errors.Is] and recover the issue list with [errors.As].
type WeakPasswordError struct {
	Issues []string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password validation failed: %s", strings.Join(e.Issues, ", "))
}

func (e *WeakPasswordError) Unwrap() error {
	return ErrWeakPassword
}

// ValidationFailedError carries field-level validation violations from a
// request schema. It unwraps to [ErrInvalidDataProvided].
type ValidationFailedError struct {
	Errors []models.ValidationError
}

func (e *ValidationFailedError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fieldErr := range e.Errors {
		parts = append(parts, fieldErr.Field+": "+fieldErr.Message)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrInvalidDataProvided
}
