// Package session defines the session model shared by every portal surface
// and the durable stores that hold it.
//
// A Session is the pair every surface agrees on: whether someone is logged
// in, and as what role. Stores expose a single Subscribe API; whether a
// change arrived from the same process (synchronous hub dispatch) or from
// another process (Redis pub/sub) is private implementation detail, so call
// sites never need to know which channel fired.
package session
