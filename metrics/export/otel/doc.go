// Package otel bridges engine metrics into OpenTelemetry observable
// instruments. Values are read from snapshots inside the meter callback;
// the exporter never touches live counters.
package otel
