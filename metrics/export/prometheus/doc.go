// Package prometheus renders engine metrics in the Prometheus text
// exposition format without importing the Prometheus client library. The
// exporter reads counter snapshots only; it never touches live counters.
package prometheus
