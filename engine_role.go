package portalauth

import (
	"context"

	"github.com/kokomatto/portalauth/internal/flows"
	"github.com/kokomatto/portalauth/session"
)

// AssignRole replaces the role of an already-authenticated session and
// notifies subscribers. Guests get [ErrUnauthorized]; RoleGuest is not
// assignable, that is what [Engine.Logout] is for.
func (e *Engine) AssignRole(ctx context.Context, role session.Role) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if e.closed.Load() {
		return ErrEngineClosed
	}

	return flows.RunAssignRole(ctx, role.String(), e.flows.Role)
}
