package flows

import "context"

// LoginResult is the flow-local login response shape. Role is the wire
// form of the granted role; RedirectTo is the caller-supplied path when
// one was requested, otherwise empty.
type LoginResult struct {
	Role       string
	Home       string
	RedirectTo string
}

// LoginMetrics carries metric IDs needed by the login flow.
type LoginMetrics struct {
	Success int
	Failure int
	Emitted int
}

// LoginEvents carries audit event names used by the login flow.
type LoginEvents struct {
	Success string
	Failure string
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	EngineNotReady     error
	InvalidCredentials error
}

// LoginDeps captures login dependencies.
type LoginDeps struct {
	// LookupCredential checks an identifier/secret pair against the fixed
	// table and returns the granted role's wire form.
	LookupCredential func(identifier, secret string) (string, bool)
	// WriteSession durably stores the authenticated session and notifies
	// every local subscriber before returning.
	WriteSession func(ctx context.Context, role string) error
	// HomePath maps a role to its canonical home route.
	HomePath func(role string) string

	MetricInc func(int)
	EmitAudit func(ctx context.Context, eventType string, success bool, role string, err error, meta func() map[string]string)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunLogin executes the login flow. A wrong pair fails with the host's
// invalid-credentials error and leaves session state untouched; a match
// writes the session, emits the change signal through the write, and
// returns where the caller should go next.
func RunLogin(ctx context.Context, identifier, secret, redirectTo string, deps LoginDeps) (*LoginResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.LookupCredential == nil || deps.WriteSession == nil || deps.HomePath == nil {
		return nil, deps.Errors.EngineNotReady
	}

	role, ok := deps.LookupCredential(identifier, secret)
	if !ok {
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, false, "", deps.Errors.InvalidCredentials, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
			}
		})
		return nil, deps.Errors.InvalidCredentials
	}

	if err := deps.WriteSession(ctx, role); err != nil {
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, false, role, err, nil)
		return nil, err
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.MetricInc(deps.Metrics.Emitted)
	deps.EmitAudit(ctx, deps.Events.Success, true, role, nil, func() map[string]string {
		return map[string]string{
			"identifier": identifier,
		}
	})

	result := &LoginResult{
		Role: role,
		Home: deps.HomePath(role),
	}
	if redirectTo != "" {
		result.RedirectTo = redirectTo
	}
	return result, nil
}
