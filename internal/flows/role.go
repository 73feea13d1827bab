package flows

import "context"

// RoleMetrics carries metric IDs needed by the role assignment flow.
type RoleMetrics struct {
	Assigned int
	Emitted  int
}

// RoleErrors carries host-level sentinel errors used by the role flow.
type RoleErrors struct {
	EngineNotReady error
	Unauthorized   error
	RoleInvalid    error
}

// RoleDeps captures role assignment dependencies.
type RoleDeps struct {
	// Authenticated reports whether the current session is logged in.
	Authenticated func(ctx context.Context) (bool, error)
	// ValidRole reports whether the wire form names an assignable role.
	ValidRole func(role string) bool
	// WriteSession durably stores the new role and notifies subscribers.
	WriteSession func(ctx context.Context, role string) error

	MetricInc func(int)
	EmitAudit func(ctx context.Context, eventType string, success bool, role string, err error, meta func() map[string]string)

	Metrics RoleMetrics
	Event   string
	Errors  RoleErrors
}

// RunAssignRole executes the explicit role-assignment flow. Assignment is
// a mutation on an already-authenticated session; a guest must log in
// first.
func RunAssignRole(ctx context.Context, role string, deps RoleDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.Authenticated == nil || deps.ValidRole == nil || deps.WriteSession == nil {
		return deps.Errors.EngineNotReady
	}

	if !deps.ValidRole(role) {
		deps.EmitAudit(ctx, deps.Event, false, role, deps.Errors.RoleInvalid, nil)
		return deps.Errors.RoleInvalid
	}

	authed, err := deps.Authenticated(ctx)
	if err != nil {
		return err
	}
	if !authed {
		deps.EmitAudit(ctx, deps.Event, false, role, deps.Errors.Unauthorized, nil)
		return deps.Errors.Unauthorized
	}

	if err := deps.WriteSession(ctx, role); err != nil {
		deps.EmitAudit(ctx, deps.Event, false, role, err, nil)
		return err
	}

	deps.MetricInc(deps.Metrics.Assigned)
	deps.MetricInc(deps.Metrics.Emitted)
	deps.EmitAudit(ctx, deps.Event, true, role, nil, nil)
	return nil
}
