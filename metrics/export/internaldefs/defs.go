package internaldefs

import (
	portalauth "github.com/kokomatto/portalauth"
)

// CounterDef names one engine counter for exporters.
type CounterDef struct {
	ID   portalauth.MetricID
	Name string
	Help string
}

// HistogramDef names one engine histogram for exporters.
type HistogramDef struct {
	ID   portalauth.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: portalauth.MetricLoginSuccess, Name: "portalauth_login_success_total", Help: "Successful login attempts."},
	{ID: portalauth.MetricLoginFailure, Name: "portalauth_login_failure_total", Help: "Failed login attempts."},
	{ID: portalauth.MetricLogout, Name: "portalauth_logout_total", Help: "Logout operations."},
	{ID: portalauth.MetricRoleAssigned, Name: "portalauth_role_assigned_total", Help: "Explicit role assignments."},
	{ID: portalauth.MetricSignalEmitted, Name: "portalauth_signal_emitted_total", Help: "Change notices emitted by engine mutations."},
	{ID: portalauth.MetricGuardAllowed, Name: "portalauth_guard_allowed_total", Help: "Navigation attempts allowed by the route guard."},
	{ID: portalauth.MetricGuardRedirected, Name: "portalauth_guard_redirected_total", Help: "Navigation attempts redirected by the route guard."},
	{ID: portalauth.MetricVerificationApproved, Name: "portalauth_verification_approved_total", Help: "Verification approvals."},
	{ID: portalauth.MetricVerificationRejected, Name: "portalauth_verification_rejected_total", Help: "Verification rejections."},
	{ID: portalauth.MetricVerificationRetried, Name: "portalauth_verification_retried_total", Help: "Rejected verifications sent back to review."},
	{ID: portalauth.MetricVerificationCycled, Name: "portalauth_verification_cycled_total", Help: "Demo review cycle steps."},
	{ID: portalauth.MetricStoreUnavailable, Name: "portalauth_store_unavailable_total", Help: "Session store backend failures."},
}

// HistogramDefs lists every exported histogram in a stable order.
var HistogramDefs = []HistogramDef{
	{ID: portalauth.MetricResolveLatency, Name: "portalauth_resolve_latency_seconds", Help: "Route guard resolve latency histogram."},
}

// HistogramBounds are the bucket upper bounds in seconds, Prometheus le
// label form.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds in OTel instrument-name
// safe form.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form
// Prometheus histograms expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
