package portalauth

import (
	"io"

	"github.com/kokomatto/portalauth/internal/audit"
)

// AuditEvent is the event shape delivered to audit sinks.
type AuditEvent = audit.Event

// AuditSink receives emitted audit events. Sinks run on the dispatcher
// goroutine, never on the caller's.
type AuditSink = audit.Sink

// NoOpSink drops audit events.
type NoOpSink = audit.NoOpSink

// ChannelSink buffers audit events in a channel for the embedding
// application to drain.
type ChannelSink = audit.ChannelSink

// JSONWriterSink writes one JSON object per line to a writer.
type JSONWriterSink = audit.JSONWriterSink

// NewChannelSink creates a ChannelSink with the given buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a JSONWriterSink over w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// Audit event types emitted by the engine.
const (
	AuditLoginSuccess           = "login.success"
	AuditLoginFailure           = "login.failure"
	AuditLogout                 = "logout"
	AuditRoleAssign             = "role.assign"
	AuditVerificationTransition = "verification.transition"
	AuditGuardRedirect          = "guard.redirect"
)
