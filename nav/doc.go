// Package nav resolves the header menu for a role. Resolve is a pure
// lookup with no side effects; surfaces re-run it on every session change
// notice so a login or role switch updates visible navigation without a
// reload.
package nav
