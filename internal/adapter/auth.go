package adapter

import (
	"context"
	"errors"
	"strings"

	"github.com/nfrund/botsamples/internal/activity"
)

// ErrUnauthorized is returned when an inbound request fails authentication.
var ErrUnauthorized = errors.New("unauthorized")

// Authenticator decides whether an inbound activity may be processed.
type Authenticator interface {
	Authenticate(ctx context.Context, authHeader string, a *activity.Activity) error
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(ctx context.Context, authHeader string, a *activity.Activity) error

// Authenticate calls f.
func (f AuthenticatorFunc) Authenticate(ctx context.Context, authHeader string, a *activity.Activity) error {
	return f(ctx, authHeader, a)
}

// NewAuthenticator returns the authenticator matching the bot registration.
// Without an app id every request is accepted, which is how the emulator is
// used locally. With an app id a bearer token is required; verifying its
// signature belongs to the channel's identity provider and is left to a
// fronting gateway.
func NewAuthenticator(appID string) Authenticator {
	if appID == "" {
		return AuthenticatorFunc(func(context.Context, string, *activity.Activity) error {
			return nil
		})
	}
	return AuthenticatorFunc(func(ctx context.Context, authHeader string, a *activity.Activity) error {
		scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return ErrUnauthorized
		}
		return nil
	})
}
