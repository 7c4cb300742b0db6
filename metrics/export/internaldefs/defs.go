package internaldefs

import (
	sessiongate "github.com/campaignwala/sessiongate"
)

// CounterDef binds a counter metric ID to its exported name.
type CounterDef struct {
	ID   sessiongate.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram metric ID to its exported name.
type HistogramDef struct {
	ID   sessiongate.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: sessiongate.MetricLoginSuccess, Name: "sessiongate_login_success_total", Help: "Successful login attempts."},
	{ID: sessiongate.MetricLoginFailure, Name: "sessiongate_login_failure_total", Help: "Login attempts rejected for credentials."},
	{ID: sessiongate.MetricLoginNetworkError, Name: "sessiongate_login_network_error_total", Help: "Login attempts failed on transport."},
	{ID: sessiongate.MetricLogout, Name: "sessiongate_logout_total", Help: "User-initiated logout operations."},
	{ID: sessiongate.MetricLogoutRemoteFailure, Name: "sessiongate_logout_remote_failure_total", Help: "Logouts whose remote invalidation failed."},
	{ID: sessiongate.MetricForcedLogout, Name: "sessiongate_forced_logout_total", Help: "Logouts forced by expiry or a 401."},
	{ID: sessiongate.MetricSessionWarning, Name: "sessiongate_session_warning_total", Help: "Sessions entering the pre-expiry warning window."},
	{ID: sessiongate.MetricSessionExpired, Name: "sessiongate_session_expired_total", Help: "Sessions expired by inactivity."},
	{ID: sessiongate.MetricActivityRecorded, Name: "sessiongate_activity_recorded_total", Help: "Activity events accepted past the throttle."},
	{ID: sessiongate.MetricActivityThrottled, Name: "sessiongate_activity_throttled_total", Help: "Activity events absorbed by the throttle."},
	{ID: sessiongate.MetricRehydrateSuccess, Name: "sessiongate_rehydrate_success_total", Help: "Sessions recovered from persisted state."},
	{ID: sessiongate.MetricRehydrateGuest, Name: "sessiongate_rehydrate_guest_total", Help: "Rehydrations that resolved to the guest session."},
	{ID: sessiongate.MetricRehydrateCorrupt, Name: "sessiongate_rehydrate_corrupt_total", Help: "Rehydrations with malformed persisted profile JSON."},
	{ID: sessiongate.MetricTokenExpiredLocally, Name: "sessiongate_token_expired_locally_total", Help: "Persisted tokens discarded as already expired."},
	{ID: sessiongate.MetricUnauthorizedDetected, Name: "sessiongate_unauthorized_detected_total", Help: "401 responses observed on authenticated calls."},
	{ID: sessiongate.MetricTokenRefreshSuccess, Name: "sessiongate_token_refresh_success_total", Help: "Successful token refresh operations."},
	{ID: sessiongate.MetricTokenRefreshFailure, Name: "sessiongate_token_refresh_failure_total", Help: "Failed token refresh operations."},
	{ID: sessiongate.MetricPermissionCacheHit, Name: "sessiongate_permission_cache_hit_total", Help: "Permission checks answered from the memo cache."},
	{ID: sessiongate.MetricPermissionCacheMiss, Name: "sessiongate_permission_cache_miss_total", Help: "Permission checks computed from the grant set."},
	{ID: sessiongate.MetricPermissionCacheInvalidated, Name: "sessiongate_permission_cache_invalidated_total", Help: "Permission cache invalidations."},
	{ID: sessiongate.MetricGuardAllowed, Name: "sessiongate_guard_allowed_total", Help: "Guard decisions that rendered the route."},
	{ID: sessiongate.MetricGuardRedirect, Name: "sessiongate_guard_redirect_total", Help: "Guard decisions that redirected."},
	{ID: sessiongate.MetricGuardPending, Name: "sessiongate_guard_pending_total", Help: "Guard decisions deferred while state loaded."},
}

// HistogramDefs lists every exported histogram in a stable order.
var HistogramDefs = []HistogramDef{
	{ID: sessiongate.MetricLoginLatency, Name: "sessiongate_login_latency_seconds", Help: "Login round-trip latency histogram."},
}

// HistogramBounds holds the Prometheus le label values for each bucket.
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

// HistogramBoundSuffix holds bucket name suffixes safe for instrument names.
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

// NormalizeBuckets copies a raw bucket slice into a fixed-size array,
// tolerating short or long input.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
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
