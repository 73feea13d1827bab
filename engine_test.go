package portalauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kokomatto/portalauth/portal"
	"github.com/kokomatto/portalauth/session"
	"github.com/kokomatto/portalauth/verification"
)

func newMemoryEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := New().
		WithStore(session.NewMemoryStore()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func newRedisEngine(t *testing.T) (*miniredis.Miniredis, *Engine) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine, err := New().WithRedis(client).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { _ = engine.Close() })
	return mr, engine
}

func TestLoginFreshStore(t *testing.T) {
	mr, engine := newRedisEngine(t)
	ctx := context.Background()

	emissions := 0
	defer engine.Subscribe(func(session.Session) { emissions++ })()

	result, err := engine.Login(ctx, "user", "password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Role != session.RoleUser {
		t.Fatalf("granted role = %v", result.Role)
	}
	if result.Home != "/home" {
		t.Fatalf("home route = %q", result.Home)
	}
	if result.RedirectTo != "" {
		t.Fatal("redirect must be empty when none was requested")
	}

	if v, _ := mr.Get("kokomatto:isAuthenticated"); v != "true" {
		t.Fatalf("isAuthenticated = %q", v)
	}
	if v, _ := mr.Get("kokomatto:userRole"); v != "user" {
		t.Fatalf("userRole = %q", v)
	}
	if emissions != 1 {
		t.Fatalf("expected exactly one signal emission, got %d", emissions)
	}
}

func TestLoginWithRequestedRedirect(t *testing.T) {
	engine := newMemoryEngine(t)

	result, err := engine.Login(context.Background(), "affiliate", "affiliate123", WithRedirect("/affiliate/links"))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.RedirectTo != "/affiliate/links" {
		t.Fatalf("redirect = %q", result.RedirectTo)
	}
	if result.Home != "/affiliate/dashboard" {
		t.Fatalf("home = %q", result.Home)
	}
}

func TestLoginWrongPairLeavesStateUntouched(t *testing.T) {
	engine := newMemoryEngine(t)
	ctx := context.Background()

	emissions := 0
	defer engine.Subscribe(func(session.Session) { emissions++ })()

	_, err := engine.Login(ctx, "user", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}

	sess, err := engine.Session(ctx)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if !sess.IsGuest() {
		t.Fatalf("failed login changed state: %+v", sess)
	}
	if emissions != 0 {
		t.Fatalf("failed login emitted %d signals", emissions)
	}
}

func TestDemoCredentialTable(t *testing.T) {
	cases := map[string]struct {
		secret string
		role   session.Role
	}{
		"user":      {"password", session.RoleUser},
		"admin":     {"superadmin", session.RoleAdmin},
		"merchant":  {"supermerchant", session.RoleMerchant},
		"affiliate": {"affiliate123", session.RoleAffiliate},
	}

	for identifier, tc := range cases {
		engine := newMemoryEngine(t)
		result, err := engine.Login(context.Background(), identifier, tc.secret)
		if err != nil {
			t.Fatalf("Login(%s) failed: %v", identifier, err)
		}
		if result.Role != tc.role {
			t.Fatalf("Login(%s) granted %v, want %v", identifier, result.Role, tc.role)
		}
	}
}

func TestLogoutClearsBothKeysBeforeReturning(t *testing.T) {
	mr, engine := newRedisEngine(t)
	ctx := context.Background()

	if _, err := engine.Login(ctx, "admin", "superadmin"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	var observed []session.Session
	defer engine.Subscribe(func(s session.Session) { observed = append(observed, s) })()

	result, err := engine.Logout(ctx)
	if err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if result.RedirectTo != "/" {
		t.Fatalf("logout redirect = %q", result.RedirectTo)
	}

	// Listeners observed the cleared session before Logout returned.
	if len(observed) != 1 || !observed[0].IsGuest() {
		t.Fatalf("listener observations: %+v", observed)
	}
	if mr.Exists("kokomatto:isAuthenticated") || mr.Exists("kokomatto:userRole") {
		t.Fatal("logout must clear both stored keys")
	}
}

func TestAssignRole(t *testing.T) {
	engine := newMemoryEngine(t)
	ctx := context.Background()

	if err := engine.AssignRole(ctx, session.RoleMerchant); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("guest AssignRole: got %v, want ErrUnauthorized", err)
	}

	if _, err := engine.Login(ctx, "user", "password"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := engine.AssignRole(ctx, session.RoleGuest); !errors.Is(err, ErrRoleInvalid) {
		t.Fatalf("AssignRole(guest): got %v, want ErrRoleInvalid", err)
	}

	if err := engine.AssignRole(ctx, session.RoleMerchant); err != nil {
		t.Fatalf("AssignRole failed: %v", err)
	}
	sess, _ := engine.Session(ctx)
	if sess.Role != session.RoleMerchant {
		t.Fatalf("role after assignment = %v", sess.Role)
	}
}

func TestVerificationLifecycleBroadcasts(t *testing.T) {
	engine := newMemoryEngine(t)
	ctx := context.Background()

	notices := 0
	defer engine.Subscribe(func(session.Session) { notices++ })()

	status, err := engine.Verification(ctx, "affiliate")
	if err != nil {
		t.Fatalf("Verification failed: %v", err)
	}
	if status != verification.StatusPending {
		t.Fatalf("fresh subject status = %v", status)
	}

	status, err = engine.ApproveVerification(ctx, "affiliate")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if status != verification.StatusApproved {
		t.Fatalf("status after approve = %v", status)
	}
	if notices != 1 {
		t.Fatalf("approve broadcast %d notices, want 1", notices)
	}

	if _, err := engine.ApproveVerification(ctx, "affiliate"); !errors.Is(err, verification.ErrIllegalTransition) {
		t.Fatalf("double approve: got %v, want ErrIllegalTransition", err)
	}

	if _, err := engine.Verification(ctx, "unknown"); !errors.Is(err, ErrVerificationNotConfigured) {
		t.Fatalf("unknown subject: got %v, want ErrVerificationNotConfigured", err)
	}
}

func TestVerificationCycleOrder(t *testing.T) {
	engine := newMemoryEngine(t)
	ctx := context.Background()

	want := []verification.Status{
		verification.StatusApproved,
		verification.StatusRejected,
		verification.StatusPending,
	}
	for i, expect := range want {
		got, err := engine.CycleVerification(ctx, "merchant")
		if err != nil {
			t.Fatalf("Cycle step %d failed: %v", i, err)
		}
		if got != expect {
			t.Fatalf("Cycle step %d = %v, want %v", i, got, expect)
		}
	}
}

func TestResolveRouteCountsAndAudits(t *testing.T) {
	sink := NewChannelSink(8)
	engine, err := New().
		WithStore(session.NewMemoryStore()).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	ctx := context.Background()
	d := engine.ResolveRoute(ctx, "/admin", session.Guest())
	if d.Allow {
		t.Fatal("guest allowed into /admin")
	}

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricGuardRedirected] != 1 {
		t.Fatalf("guard redirect counter = %d", snapshot.Counters[MetricGuardRedirected])
	}

	select {
	case event := <-sink.Events():
		if event.EventType != AuditGuardRedirect || event.Path != "/admin" {
			t.Fatalf("unexpected audit event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no audit event delivered")
	}
}

func TestEngineShellSync(t *testing.T) {
	engine := newMemoryEngine(t)
	ctx := context.Background()

	var views []portal.View
	shell, err := engine.Shell(portal.AudienceAffiliate, "affiliate", func(v portal.View) {
		views = append(views, v)
	})
	if err != nil {
		t.Fatalf("Shell failed: %v", err)
	}
	if err := shell.Mount(ctx); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	defer shell.Unmount()

	if _, err := engine.Login(ctx, "affiliate", "affiliate123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	last := views[len(views)-1]
	if last.Session.Role != session.RoleAffiliate {
		t.Fatalf("shell saw %+v", last.Session)
	}
	if last.Overlay == nil || last.Overlay.Status != verification.StatusPending {
		t.Fatalf("expected pending overlay, got %+v", last.Overlay)
	}

	if _, err := engine.ApproveVerification(ctx, "affiliate"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	last = views[len(views)-1]
	if last.Overlay == nil || last.Overlay.Status != verification.StatusApproved || last.Blocked {
		t.Fatalf("expected non-blocking approved overlay, got %+v blocked=%v", last.Overlay, last.Blocked)
	}

	if _, err := engine.Shell(portal.AudienceShopper, "shopper", func(portal.View) {}); !errors.Is(err, ErrVerificationNotConfigured) {
		t.Fatalf("unknown shell subject: got %v", err)
	}
}

func TestBuilderValidation(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("Build without a store must fail")
	}

	b := New().WithStore(session.NewMemoryStore())
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("builder must not be reusable")
	}

	_, err := New().
		WithStore(session.NewMemoryStore()).
		WithCredentials([]DemoCredential{{Identifier: "x", Secret: "y", Role: session.RoleGuest}}).
		Build()
	if !errors.Is(err, ErrRoleInvalid) {
		t.Fatalf("guest credential: got %v, want ErrRoleInvalid", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	dup := defaultConfig()
	dup.Account.Credentials = append(dup.Account.Credentials, DemoCredential{
		Identifier: "user", Secret: "other", Role: session.RoleUser,
	})
	if err := dup.Validate(); err == nil {
		t.Fatal("duplicate identifier must fail validation")
	}

	empty := defaultConfig()
	empty.Store.Channel = ""
	if err := empty.Validate(); err == nil {
		t.Fatal("empty channel must fail validation")
	}
}

func TestCloseIdempotentAndBlocksOperations(t *testing.T) {
	engine := newMemoryEngine(t)

	if err := engine.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, err := engine.Login(context.Background(), "user", "password"); !errors.Is(err, ErrEngineClosed) {
		t.Fatalf("Login after Close: got %v, want ErrEngineClosed", err)
	}
}
