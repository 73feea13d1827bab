package portalauth

import (
	"context"

	"github.com/kokomatto/portalauth/internal/flows"
	"github.com/kokomatto/portalauth/session"
)

// LoginResult is the outcome of a successful login. Home is the granted
// role's canonical home route; RedirectTo is set only when the call asked
// for a specific post-login destination, typically the path a guard
// redirect remembered.
type LoginResult struct {
	Role       session.Role
	Home       string
	RedirectTo string
}

// LoginOption adjusts a single Login call.
type LoginOption func(*loginOptions)

type loginOptions struct {
	redirectTo string
}

// WithRedirect asks Login to carry path as the post-login destination.
// Without it the result's RedirectTo stays empty and callers land on the
// role's home route.
func WithRedirect(path string) LoginOption {
	return func(o *loginOptions) {
		o.redirectTo = path
	}
}

// Login checks the identifier and secret against the configured credential
// table. On a match it writes the session and notifies every local
// subscriber before returning; a wrong pair returns
// [ErrInvalidCredentials] with session state untouched.
func (e *Engine) Login(ctx context.Context, identifier, secret string, opts ...LoginOption) (*LoginResult, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	var options loginOptions
	for _, opt := range opts {
		opt(&options)
	}

	result, err := flows.RunLogin(ctx, identifier, secret, options.redirectTo, e.flows.Login)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Role:       session.ParseRole(result.Role),
		Home:       result.Home,
		RedirectTo: result.RedirectTo,
	}, nil
}
