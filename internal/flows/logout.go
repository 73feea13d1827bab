package flows

import "context"

// LogoutResult carries the post-logout redirect target.
type LogoutResult struct {
	RedirectTo string
}

// LogoutMetrics carries metric IDs needed by the logout flow.
type LogoutMetrics struct {
	Logout  int
	Emitted int
}

// LogoutDeps captures logout dependencies.
type LogoutDeps struct {
	// ClearSession resets stored state to guest and notifies every local
	// subscriber before returning, so the caller's redirect never reads a
	// stale authenticated session.
	ClearSession func(ctx context.Context) error
	// GuestHome is where the caller goes after logout.
	GuestHome string

	MetricInc func(int)
	EmitAudit func(ctx context.Context, eventType string, success bool, role string, err error, meta func() map[string]string)

	Metrics LogoutMetrics
	Event   string
	Errors  LogoutErrors
}

// LogoutErrors carries host-level sentinel errors used by the logout flow.
type LogoutErrors struct {
	EngineNotReady error
}

// RunLogout executes the logout flow.
func RunLogout(ctx context.Context, deps LogoutDeps) (*LogoutResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.ClearSession == nil {
		return nil, deps.Errors.EngineNotReady
	}

	if err := deps.ClearSession(ctx); err != nil {
		deps.EmitAudit(ctx, deps.Event, false, "", err, nil)
		return nil, err
	}

	deps.MetricInc(deps.Metrics.Logout)
	deps.MetricInc(deps.Metrics.Emitted)
	deps.EmitAudit(ctx, deps.Event, true, "", nil, nil)

	return &LogoutResult{RedirectTo: deps.GuestHome}, nil
}
