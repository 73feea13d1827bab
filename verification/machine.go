package verification

import (
	"context"
	"errors"
	"fmt"
)

// ErrIllegalTransition is returned when a requested transition is not
// permitted from the current status.
var ErrIllegalTransition = errors.New("illegal verification transition")

// Transition reports whether moving from one status to another is legal.
// The legal moves are pending to approved, pending to rejected, and
// rejected back to pending. Approved is terminal except through Cycle.
func Transition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusRejected:
		return to == StatusPending
	default:
		return false
	}
}

// CycleNext returns the status that follows s in the demo review cycle
// pending, approved, rejected, pending. The cycle deliberately ignores
// transition legality; it exists so a reviewer can walk an account through
// every state.
func CycleNext(s Status) Status {
	switch s {
	case StatusPending:
		return StatusApproved
	case StatusApproved:
		return StatusRejected
	default:
		return StatusPending
	}
}

// Store persists one verification record per subject role. Records are
// written, never deleted; an absent record reads as StatusPending.
type Store interface {
	Get(ctx context.Context, subject string) (Status, error)
	Set(ctx context.Context, subject string, status Status) error
}

// Machine drives the verification record of a single subject through its
// transitions. Subject is the partner role the record belongs to, such as
// "affiliate" or "merchant".
type Machine struct {
	store   Store
	subject string
}

// NewMachine creates a Machine for the given subject.
func NewMachine(store Store, subject string) (*Machine, error) {
	if store == nil {
		return nil, errors.New("verification store required")
	}
	if subject == "" {
		return nil, errors.New("subject required")
	}
	return &Machine{store: store, subject: subject}, nil
}

// Subject returns the partner role this machine manages.
func (m *Machine) Subject() string {
	return m.subject
}

// Status returns the subject's current status.
func (m *Machine) Status(ctx context.Context) (Status, error) {
	return m.store.Get(ctx, m.subject)
}

// Approve moves pending to approved.
func (m *Machine) Approve(ctx context.Context) (Status, error) {
	return m.transition(ctx, StatusApproved)
}

// Reject moves pending to rejected.
func (m *Machine) Reject(ctx context.Context) (Status, error) {
	return m.transition(ctx, StatusRejected)
}

// Retry moves rejected back to pending so the subject can be reviewed
// again.
func (m *Machine) Retry(ctx context.Context) (Status, error) {
	return m.transition(ctx, StatusPending)
}

// Cycle advances the record one step through the demo review cycle and
// returns the new status.
func (m *Machine) Cycle(ctx context.Context) (Status, error) {
	current, err := m.store.Get(ctx, m.subject)
	if err != nil {
		return current, err
	}

	next := CycleNext(current)
	if err := m.store.Set(ctx, m.subject, next); err != nil {
		return current, err
	}
	return next, nil
}

func (m *Machine) transition(ctx context.Context, to Status) (Status, error) {
	current, err := m.store.Get(ctx, m.subject)
	if err != nil {
		return current, err
	}
	if !Transition(current, to) {
		return current, fmt.Errorf("%w: %s to %s", ErrIllegalTransition, current, to)
	}
	if err := m.store.Set(ctx, m.subject, to); err != nil {
		return current, err
	}
	return to, nil
}
