// Package flows contains the engine's mutation flows as standalone
// functions over explicit dependency structs.
//
// Each flow receives everything it touches through its Deps value: state
// writers, lookup tables, metric and audit hooks, and the host's sentinel
// errors. The root engine builds the Deps once at construction; tests
// build small hand-rolled ones. Flows never import the root package.
package flows
