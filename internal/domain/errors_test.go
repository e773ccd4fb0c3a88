package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy_IsChecks(t *testing.T) {
	verr := NewValidationError("hours", "must be a number")
	aerr := &AuthError{Op: "sign in", Err: errors.New("invalid credentials")}
	serr := &StoreError{Op: "insert session", Err: errors.New("disk full")}

	assert.ErrorIs(t, verr, ErrValidation)
	assert.NotErrorIs(t, verr, ErrStore)
	assert.ErrorIs(t, aerr, ErrAuth)
	assert.ErrorIs(t, serr, ErrStore)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", serr), ErrStore)
}

func TestWrapStore_PassesThroughKnownKinds(t *testing.T) {
	verr := NewValidationError("name", "is required")
	assert.Same(t, verr, WrapStore("create client", verr))

	nf := fmt.Errorf("client: %w", ErrNotFound)
	assert.Equal(t, nf, WrapStore("get client", nf))

	assert.NoError(t, WrapStore("noop", nil))

	raw := errors.New("database is locked")
	wrapped := WrapStore("list sessions", raw)
	assert.ErrorIs(t, wrapped, ErrStore)
	assert.ErrorIs(t, wrapped, raw)
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{NewValidationError("hours", "must be a number"), "Invalid input: hours must be a number"},
		{&AuthError{Op: "sign in", Err: errors.New("invalid credentials")}, "Authentication failed: invalid credentials"},
		{&AuthError{Op: "sign in"}, "Authentication failed"},
		{&StoreError{Op: "insert", Err: errors.New("io")}, "Could not reach the store, try again"},
		{fmt.Errorf("client: %w", ErrNotFound), "Not found: client: not found"},
		{errors.New("boom"), "Something went wrong: boom"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, UserMessage(tc.err))
	}
}
