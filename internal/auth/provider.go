// Package auth provides identity for the current user. Every operation that
// reads or writes owned records takes the identity it returns explicitly.
package auth

import (
	"context"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Provider signs users up, in and out and reports the current identity.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (userID string, err error)
	SignIn(ctx context.Context, email, password string) (userID string, err error)
	// SignOut is idempotent.
	SignOut(ctx context.Context) error
	// Current returns the signed-in identity, or nil when nobody is signed in.
	Current(ctx context.Context) (*domain.Identity, error)
	// ObserveSession calls fn with the current identity immediately and again
	// after every sign-in or sign-out, until the returned func is called.
	ObserveSession(ctx context.Context, fn func(*domain.Identity)) (unsubscribe func())
}
