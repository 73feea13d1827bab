package portalauth

import (
	"context"

	"github.com/kokomatto/portalauth/verification"
)

// Verification returns the current verification status for a subject.
func (e *Engine) Verification(ctx context.Context, subject string) (verification.Status, error) {
	machine, err := e.machineFor(subject)
	if err != nil {
		return verification.StatusPending, err
	}
	return machine.Status(ctx)
}

// VerificationOverlay returns the overlay the subject's portal should
// render right now.
func (e *Engine) VerificationOverlay(ctx context.Context, subject string) (verification.Overlay, error) {
	status, err := e.Verification(ctx, subject)
	if err != nil {
		return verification.OverlayFor(verification.StatusPending), err
	}
	return verification.OverlayFor(status), nil
}

// ApproveVerification moves a pending subject to approved and re-announces
// the session so mounted surfaces re-read their overlay.
func (e *Engine) ApproveVerification(ctx context.Context, subject string) (verification.Status, error) {
	return e.verificationTransition(ctx, subject, MetricVerificationApproved,
		func(m *verification.Machine) (verification.Status, error) { return m.Approve(ctx) })
}

// RejectVerification moves a pending subject to rejected.
func (e *Engine) RejectVerification(ctx context.Context, subject string) (verification.Status, error) {
	return e.verificationTransition(ctx, subject, MetricVerificationRejected,
		func(m *verification.Machine) (verification.Status, error) { return m.Reject(ctx) })
}

// RetryVerification sends a rejected subject back to review.
func (e *Engine) RetryVerification(ctx context.Context, subject string) (verification.Status, error) {
	return e.verificationTransition(ctx, subject, MetricVerificationRetried,
		func(m *verification.Machine) (verification.Status, error) { return m.Retry(ctx) })
}

// CycleVerification advances the subject one step through the demo review
// cycle pending, approved, rejected, pending.
func (e *Engine) CycleVerification(ctx context.Context, subject string) (verification.Status, error) {
	return e.verificationTransition(ctx, subject, MetricVerificationCycled,
		func(m *verification.Machine) (verification.Status, error) { return m.Cycle(ctx) })
}

func (e *Engine) machineFor(subject string) (*verification.Machine, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	machine, ok := e.verification[subject]
	if !ok {
		return nil, ErrVerificationNotConfigured
	}
	return machine, nil
}

func (e *Engine) verificationTransition(
	ctx context.Context,
	subject string,
	metric MetricID,
	apply func(*verification.Machine) (verification.Status, error),
) (verification.Status, error) {
	machine, err := e.machineFor(subject)
	if err != nil {
		return verification.StatusPending, err
	}

	status, err := apply(machine)
	if err != nil {
		e.emitAudit(ctx, AuditVerificationTransition, false, "", err, func() map[string]string {
			return map[string]string{"subject": subject}
		})
		return status, err
	}

	e.metrics.Inc(metric)
	e.emitAudit(ctx, AuditVerificationTransition, true, "", nil, func() map[string]string {
		return map[string]string{
			"subject": subject,
			"status":  status.String(),
		}
	})

	// The session itself did not change, but overlay state derived from it
	// did; re-announce so every mounted surface re-reads.
	if err := e.store.Broadcast(ctx); err != nil {
		e.metrics.Inc(MetricStoreUnavailable)
		return status, err
	}
	e.metrics.Inc(MetricSignalEmitted)

	return status, nil
}
