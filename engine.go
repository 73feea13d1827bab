package portalauth

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kokomatto/portalauth/guard"
	"github.com/kokomatto/portalauth/internal/audit"
	"github.com/kokomatto/portalauth/internal/flows"
	"github.com/kokomatto/portalauth/nav"
	"github.com/kokomatto/portalauth/portal"
	"github.com/kokomatto/portalauth/session"
	"github.com/kokomatto/portalauth/verification"
)

// Engine is the assembled session and RBAC synchronization engine. Every
// mounted surface works through one shared Engine: mutations write the
// session store and notify subscribers, reads go through the same store,
// and route decisions come from the single guard.
type Engine struct {
	config       Config
	store        session.Store
	verification map[string]*verification.Machine
	guard        *guard.Guard
	nav          *nav.Resolver
	credentials  map[string]DemoCredential
	metrics      *Metrics
	audit        *audit.Dispatcher
	flows        flows.Deps

	closed    atomic.Bool
	closeOnce sync.Once
}

// initFlows wires the flow dependency structs. Called once from Build.
func (e *Engine) initFlows() {
	e.flows = flows.Deps{
		Login: flows.LoginDeps{
			LookupCredential: func(identifier, secret string) (string, bool) {
				cred, ok := e.credentials[identifier]
				if !ok || cred.Secret != secret {
					return "", false
				}
				return cred.Role.String(), true
			},
			WriteSession: func(ctx context.Context, role string) error {
				return e.writeSession(ctx, session.ParseRole(role))
			},
			HomePath: func(role string) string {
				return guard.HomePath(session.ParseRole(role))
			},
			MetricInc: e.metricInc,
			EmitAudit: e.emitAudit,
			Metrics: flows.LoginMetrics{
				Success: int(MetricLoginSuccess),
				Failure: int(MetricLoginFailure),
				Emitted: int(MetricSignalEmitted),
			},
			Events: flows.LoginEvents{
				Success: AuditLoginSuccess,
				Failure: AuditLoginFailure,
			},
			Errors: flows.LoginErrors{
				EngineNotReady:     ErrEngineNotReady,
				InvalidCredentials: ErrInvalidCredentials,
			},
		},
		Logout: flows.LogoutDeps{
			ClearSession: e.clearSession,
			GuestHome:    guard.HomePath(session.RoleGuest),
			MetricInc:    e.metricInc,
			EmitAudit:    e.emitAudit,
			Metrics: flows.LogoutMetrics{
				Logout:  int(MetricLogout),
				Emitted: int(MetricSignalEmitted),
			},
			Event: AuditLogout,
			Errors: flows.LogoutErrors{
				EngineNotReady: ErrEngineNotReady,
			},
		},
		Role: flows.RoleDeps{
			Authenticated: func(ctx context.Context) (bool, error) {
				sess, err := e.Session(ctx)
				if err != nil {
					return false, err
				}
				return sess.Authenticated, nil
			},
			ValidRole: func(role string) bool {
				return session.ParseRole(role) != session.RoleGuest
			},
			WriteSession: func(ctx context.Context, role string) error {
				return e.writeSession(ctx, session.ParseRole(role))
			},
			MetricInc: e.metricInc,
			EmitAudit: e.emitAudit,
			Metrics: flows.RoleMetrics{
				Assigned: int(MetricRoleAssigned),
				Emitted:  int(MetricSignalEmitted),
			},
			Event: AuditRoleAssign,
			Errors: flows.RoleErrors{
				EngineNotReady: ErrEngineNotReady,
				Unauthorized:   ErrUnauthorized,
				RoleInvalid:    ErrRoleInvalid,
			},
		},
	}
}

// Session returns the current session. Store failure reads as guest plus
// the wrapped error; absent or malformed stored values are plain guest.
func (e *Engine) Session(ctx context.Context) (session.Session, error) {
	if e == nil || e.store == nil {
		return session.Guest(), ErrEngineNotReady
	}

	sess, err := e.store.Get(ctx)
	if err != nil {
		e.metrics.Inc(MetricStoreUnavailable)
		return session.Guest(), err
	}
	return sess, nil
}

// Subscribe registers fn for session change notices. The returned
// unsubscribe function is idempotent; every subscription taken at surface
// mount must be released at unmount.
func (e *Engine) Subscribe(fn func(session.Session)) func() {
	if e == nil || e.store == nil {
		return func() {}
	}
	return e.store.Subscribe(fn)
}

// ResolveRoute applies the route guard to a navigation attempt.
func (e *Engine) ResolveRoute(ctx context.Context, path string, sess session.Session) guard.Decision {
	start := time.Now()
	decision := e.guard.Resolve(path, sess)
	e.metrics.Observe(MetricResolveLatency, time.Since(start))

	if decision.Allow {
		e.metrics.Inc(MetricGuardAllowed)
	} else {
		e.metrics.Inc(MetricGuardRedirected)
		e.emitAuditPath(ctx, AuditGuardRedirect, sess.Role.String(), path, decision.RedirectTo)
	}
	return decision
}

// Navigation resolves the header menu for a role.
func (e *Engine) Navigation(role session.Role) nav.Menu {
	return e.nav.Resolve(role)
}

// HomePath returns the canonical home route for a role.
func (e *Engine) HomePath(role session.Role) string {
	return guard.HomePath(role)
}

// Shell creates a portal shell driven by this engine. subject selects the
// verification machine gating the shell's content; pass the empty string
// for surfaces without a verification gate.
func (e *Engine) Shell(audience portal.Audience, subject string, render portal.RenderFunc) (*portal.Shell, error) {
	var machine *verification.Machine
	if subject != "" {
		m, ok := e.verification[subject]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrVerificationNotConfigured, subject)
		}
		machine = m
	}
	return portal.NewShell(audience, e.store, e.guard, e.nav, machine, render)
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return cloneConfig(e.config)
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// AuditDropped reports audit events discarded under the drop-if-full
// policy.
func (e *Engine) AuditDropped() uint64 {
	return e.audit.Dropped()
}

// Close drains the audit dispatcher and releases the session store's
// background resources. Close is idempotent; the Redis client supplied to
// the builder stays open.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}

	var err error
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		e.audit.Close()
		err = e.store.Close()
	})
	return err
}

func (e *Engine) writeSession(ctx context.Context, role session.Role) error {
	err := e.store.Set(ctx, session.Session{
		Authenticated: role != session.RoleGuest,
		Role:          role,
	})
	if err != nil {
		e.metrics.Inc(MetricStoreUnavailable)
	}
	return err
}

func (e *Engine) clearSession(ctx context.Context) error {
	if err := e.store.Clear(ctx); err != nil {
		e.metrics.Inc(MetricStoreUnavailable)
		return err
	}
	return nil
}

func (e *Engine) metricInc(id int) {
	e.metrics.Inc(MetricID(id))
}

func (e *Engine) emitAudit(ctx context.Context, eventType string, success bool, role string, err error, meta func() map[string]string) {
	if e.audit == nil {
		return
	}

	event := audit.Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Role:      role,
		IP:        clientIPFromContext(ctx),
		SurfaceID: surfaceIDFromContext(ctx),
		Success:   success,
	}
	if err != nil {
		event.Error = err.Error()
	}
	if meta != nil {
		event.Metadata = meta()
	}
	e.audit.Emit(ctx, event)
}

func (e *Engine) emitAuditPath(ctx context.Context, eventType, role, path, redirectTo string) {
	if e.audit == nil {
		return
	}

	e.audit.Emit(ctx, audit.Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Role:      role,
		Path:      path,
		IP:        clientIPFromContext(ctx),
		SurfaceID: surfaceIDFromContext(ctx),
		Success:   true,
		Metadata: map[string]string{
			"redirect_to": redirectTo,
		},
	})
}
