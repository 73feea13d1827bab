// Package signal implements the change-notification fabric of the session
// engine: a Hub that delivers to every listener in the current process
// synchronously, and a Bridge that relays change notices between processes
// over a Redis pub/sub channel.
//
// The two mechanisms mirror the dual channels of the original browser
// runtime. The Hub plays the role of the in-tab custom event: Emit returns
// only after every listener has run, so a logout followed immediately by a
// navigation can never observe a stale session. The Bridge plays the role of
// the cross-tab storage event: delivery is asynchronous, best effort, and
// never echoes back to the emitting instance.
package signal
