// Package portal implements the audience shells: the layout wrappers that
// mount a header, track the session independently, and re-render when it
// changes.
//
// A Shell owns one subscription to the session store, taken at Mount and
// released at Unmount. Between the two, every change notice re-reads the
// store, re-resolves the menu and verification overlay, and invokes the
// render callback with a fresh view.
package portal
