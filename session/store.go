package session

import (
	"context"
	"errors"
)

// ErrStoreUnavailable is returned when the storage backend cannot be
// reached. Absent or malformed values are never an error; they read as the
// guest session.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Store is the single injectable abstraction every surface goes through for
// session state. It replaces ambient origin-wide storage access: consumers
// receive a Store at construction time and never touch storage keys
// directly.
//
// Writes are last-write-wins; there is no locking. Within one process, Set
// and Clear complete the write and then notify every subscriber
// synchronously before returning, so a logout followed immediately by a
// navigation cannot read a stale session. Cross-process notification is
// best effort and eventual, with no ordering guarantee — concurrent writes
// from two processes resolve to whichever write is observed last, the same
// unresolved rule the source system lives with.
type Store interface {
	// Get returns the current session. Absent or unrecognized stored values
	// read as the guest session, never an error.
	Get(ctx context.Context) (Session, error)

	// Set durably replaces the session and notifies subscribers.
	Set(ctx context.Context, s Session) error

	// Clear resets to the guest session and notifies subscribers.
	Clear(ctx context.Context) error

	// Subscribe registers fn for change notices and returns its unsubscribe
	// function. Every subscription taken at mount must be released at
	// unmount; acting on a torn-down component is a programming error the
	// caller must prevent.
	Subscribe(fn func(Session)) func()

	// Broadcast re-announces the current session to all subscribers, local
	// and remote, without changing it. Used when adjacent state (such as a
	// verification record) changed and surfaces should re-read.
	Broadcast(ctx context.Context) error

	// Close releases background resources. The store is unusable afterward.
	Close() error
}
