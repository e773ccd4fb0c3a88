package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad user input: an empty required field, a
	// non-numeric or negative hour count, an unknown client reference.
	ErrValidation = errors.New("validation failed")

	// ErrAuth marks a credential or sign-up failure from the auth provider.
	ErrAuth = errors.New("authentication failed")

	// ErrStore marks a network, permission or I/O failure from the document store.
	ErrStore = errors.New("store unavailable")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError is shorthand for &ValidationError{Field: field, Reason: reason}.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AuthError wraps an auth provider failure with the operation that caused it.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Op + ": authentication failed"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// StoreError wraps a document store failure with the operation that caused it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// WrapStore converts a repository error into a StoreError. Validation and
// not-found errors pass through untouched so callers can still tell them apart.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrStore) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// UserMessage turns an error into the short line shown to the user after a
// failed action. It never returns an empty string for a non-nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return "Invalid input: " + verr.Error()
	}
	var aerr *AuthError
	if errors.As(err, &aerr) {
		if aerr.Err != nil {
			return "Authentication failed: " + aerr.Err.Error()
		}
		return "Authentication failed"
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "Not found: " + err.Error()
	case errors.Is(err, ErrStore):
		return "Could not reach the store, try again"
	}
	return "Something went wrong: " + err.Error()
}
