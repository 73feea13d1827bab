package portalauth

import (
	"context"

	"github.com/kokomatto/portalauth/internal/flows"
)

// LogoutResult carries the post-logout redirect target, always the guest
// home route.
type LogoutResult struct {
	RedirectTo string
}

// Logout clears the stored session and notifies every local subscriber
// before returning, so the caller's redirect can never observe a stale
// authenticated session.
func (e *Engine) Logout(ctx context.Context) (*LogoutResult, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	result, err := flows.RunLogout(ctx, e.flows.Logout)
	if err != nil {
		return nil, err
	}

	return &LogoutResult{RedirectTo: result.RedirectTo}, nil
}
