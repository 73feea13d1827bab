package flows

import (
	"context"
	"errors"
	"testing"
)

var (
	errNotReady = errors.New("not ready")
	errBadCreds = errors.New("bad credentials")
	errNoAuth   = errors.New("unauthorized")
	errBadRole  = errors.New("invalid role")
)

type flowRecorder struct {
	metrics []int
	events  []string
	written []string
	cleared int
}

func (r *flowRecorder) metricInc(id int) { r.metrics = append(r.metrics, id) }

func (r *flowRecorder) emitAudit(_ context.Context, eventType string, _ bool, _ string, _ error, _ func() map[string]string) {
	r.events = append(r.events, eventType)
}

func (r *flowRecorder) loginDeps() LoginDeps {
	return LoginDeps{
		LookupCredential: func(identifier, secret string) (string, bool) {
			if identifier == "merchant" && secret == "supermerchant" {
				return "merchant", true
			}
			return "", false
		},
		WriteSession: func(_ context.Context, role string) error {
			r.written = append(r.written, role)
			return nil
		},
		HomePath:  func(string) string { return "/merchants" },
		MetricInc: r.metricInc,
		EmitAudit: r.emitAudit,
		Metrics:   LoginMetrics{Success: 1, Failure: 2, Emitted: 3},
		Events:    LoginEvents{Success: "login.success", Failure: "login.failure"},
		Errors:    LoginErrors{EngineNotReady: errNotReady, InvalidCredentials: errBadCreds},
	}
}

func TestRunLoginSuccess(t *testing.T) {
	rec := &flowRecorder{}

	result, err := RunLogin(context.Background(), "merchant", "supermerchant", "", rec.loginDeps())
	if err != nil {
		t.Fatalf("RunLogin failed: %v", err)
	}
	if result.Role != "merchant" || result.Home != "/merchants" || result.RedirectTo != "" {
		t.Fatalf("result = %+v", result)
	}
	if len(rec.written) != 1 || rec.written[0] != "merchant" {
		t.Fatalf("written sessions = %v", rec.written)
	}
	if len(rec.metrics) != 2 || rec.metrics[0] != 1 || rec.metrics[1] != 3 {
		t.Fatalf("metrics = %v", rec.metrics)
	}
	if len(rec.events) != 1 || rec.events[0] != "login.success" {
		t.Fatalf("events = %v", rec.events)
	}
}

func TestRunLoginCarriesRequestedRedirect(t *testing.T) {
	rec := &flowRecorder{}

	result, err := RunLogin(context.Background(), "merchant", "supermerchant", "/merchants/products", rec.loginDeps())
	if err != nil {
		t.Fatalf("RunLogin failed: %v", err)
	}
	if result.RedirectTo != "/merchants/products" {
		t.Fatalf("redirect = %q", result.RedirectTo)
	}
}

func TestRunLoginWrongPair(t *testing.T) {
	rec := &flowRecorder{}

	_, err := RunLogin(context.Background(), "merchant", "wrong", "", rec.loginDeps())
	if !errors.Is(err, errBadCreds) {
		t.Fatalf("got %v, want credential error", err)
	}
	if len(rec.written) != 0 {
		t.Fatal("failed login wrote a session")
	}
	if len(rec.metrics) != 1 || rec.metrics[0] != 2 {
		t.Fatalf("metrics = %v", rec.metrics)
	}
	if len(rec.events) != 1 || rec.events[0] != "login.failure" {
		t.Fatalf("events = %v", rec.events)
	}
}

func TestRunLoginMissingDeps(t *testing.T) {
	deps := LoginDeps{Errors: LoginErrors{EngineNotReady: errNotReady}}
	if _, err := RunLogin(context.Background(), "a", "b", "", deps); !errors.Is(err, errNotReady) {
		t.Fatalf("got %v, want not-ready error", err)
	}
}

func TestRunLoginWriteFailure(t *testing.T) {
	rec := &flowRecorder{}
	writeErr := errors.New("store down")

	deps := rec.loginDeps()
	deps.WriteSession = func(context.Context, string) error { return writeErr }

	_, err := RunLogin(context.Background(), "merchant", "supermerchant", "", deps)
	if !errors.Is(err, writeErr) {
		t.Fatalf("got %v, want write error", err)
	}
	if len(rec.metrics) != 1 || rec.metrics[0] != 2 {
		t.Fatalf("metrics = %v", rec.metrics)
	}
}

func TestRunLogout(t *testing.T) {
	rec := &flowRecorder{}

	deps := LogoutDeps{
		ClearSession: func(context.Context) error { rec.cleared++; return nil },
		GuestHome:    "/",
		MetricInc:    rec.metricInc,
		EmitAudit:    rec.emitAudit,
		Metrics:      LogoutMetrics{Logout: 4, Emitted: 3},
		Event:        "logout",
		Errors:       LogoutErrors{EngineNotReady: errNotReady},
	}

	result, err := RunLogout(context.Background(), deps)
	if err != nil {
		t.Fatalf("RunLogout failed: %v", err)
	}
	if result.RedirectTo != "/" {
		t.Fatalf("redirect = %q", result.RedirectTo)
	}
	if rec.cleared != 1 {
		t.Fatalf("ClearSession ran %d times", rec.cleared)
	}
	if len(rec.metrics) != 2 || rec.metrics[0] != 4 || rec.metrics[1] != 3 {
		t.Fatalf("metrics = %v", rec.metrics)
	}

	deps.ClearSession = nil
	if _, err := RunLogout(context.Background(), deps); !errors.Is(err, errNotReady) {
		t.Fatalf("missing deps: got %v", err)
	}
}

func TestRunAssignRole(t *testing.T) {
	rec := &flowRecorder{}
	authed := false

	deps := RoleDeps{
		Authenticated: func(context.Context) (bool, error) { return authed, nil },
		ValidRole:     func(role string) bool { return role != "guest" },
		WriteSession: func(_ context.Context, role string) error {
			rec.written = append(rec.written, role)
			return nil
		},
		MetricInc: rec.metricInc,
		EmitAudit: rec.emitAudit,
		Metrics:   RoleMetrics{Assigned: 5, Emitted: 3},
		Event:     "role.assign",
		Errors:    RoleErrors{EngineNotReady: errNotReady, Unauthorized: errNoAuth, RoleInvalid: errBadRole},
	}

	if err := RunAssignRole(context.Background(), "guest", deps); !errors.Is(err, errBadRole) {
		t.Fatalf("guest role: got %v", err)
	}
	if err := RunAssignRole(context.Background(), "merchant", deps); !errors.Is(err, errNoAuth) {
		t.Fatalf("unauthenticated: got %v", err)
	}
	if len(rec.written) != 0 {
		t.Fatal("rejected assignment wrote a session")
	}

	authed = true
	if err := RunAssignRole(context.Background(), "merchant", deps); err != nil {
		t.Fatalf("RunAssignRole failed: %v", err)
	}
	if len(rec.written) != 1 || rec.written[0] != "merchant" {
		t.Fatalf("written = %v", rec.written)
	}
	if len(rec.metrics) != 2 || rec.metrics[0] != 5 || rec.metrics[1] != 3 {
		t.Fatalf("metrics = %v", rec.metrics)
	}
}
