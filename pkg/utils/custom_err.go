package utils

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrRecordNotFound       = errors.New("record not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrInvalidCode          = errors.New("invalid or expired code")
	ErrForbiddenRole        = errors.New("insufficient permissions")
	ErrInvalidInput         = errors.New("invalid input")
	ErrStorageUnavailable   = errors.New("document storage is not configured")
	ErrDatabaseError        = errors.New("database error")
)

type providerError struct {
	err error
}

func (e *providerError) Error() string { return e.err.Error() }

func (e *providerError) Is(target error) bool { return target == ErrDatabaseError }

func (e *providerError) Unwrap() error { return e.err }

// DatabaseError marks err as a storage provider failure while keeping its
// message intact for the response body.
func DatabaseError(err error) error {
	if err == nil {
		return nil
	}
	return &providerError{err: err}
}

// InvalidInput wraps ErrInvalidInput with a caller-facing reason.
func InvalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
