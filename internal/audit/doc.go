// Package audit defines the audit event model and the asynchronous
// dispatcher that forwards events to a sink.
//
// # Architecture boundaries
//
// This package owns the event shape and delivery buffering. Which events
// exist and when they fire is the root engine's business; sinks are
// supplied by the embedding application.
//
// # What this package must NOT do
//
//   - Import portalauth or any sibling package.
//   - Block a caller on a slow sink when drop-if-full is configured.
package audit
