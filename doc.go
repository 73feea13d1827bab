// Package portalauth is the session and role synchronization engine behind
// the Kokomatto storefront portals. It keeps one durable session shared by
// every mounted surface, notifies all of them when it changes, gates
// navigation through a single route guard, and tracks partner verification
// with a display-only overlay contract.
//
// The package is the public surface. It exposes [Engine], [Builder],
// [Config], and value types; flow orchestration and audit dispatch live
// under internal/ and are never exported. Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// Session state follows the storage layout the portals were built against:
// the keys isAuthenticated and userRole, with absent or unrecognized
// values always reading as the guest session. Change delivery is
// synchronous within the emitting process and best effort across
// processes.
package portalauth
