package sessiongate

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a specific counter or histogram in the in-process
// metrics system.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts logins rejected for invalid credentials.
	MetricLoginFailure
	// MetricLoginNetworkError counts logins that failed at the transport.
	MetricLoginNetworkError
	// MetricLogout counts explicit logouts.
	MetricLogout
	// MetricLogoutRemoteFailure counts remote logout calls that failed after
	// local state was already cleared.
	MetricLogoutRemoteFailure
	// MetricForcedLogout counts logouts forced by expiry or a 401.
	MetricForcedLogout
	// MetricSessionWarning counts entries into the expiry warning phase.
	MetricSessionWarning
	// MetricSessionExpired counts soft session expirations.
	MetricSessionExpired
	// MetricActivityRecorded counts activity events accepted by the throttle.
	MetricActivityRecorded
	// MetricActivityThrottled counts activity events dropped by the throttle.
	MetricActivityThrottled
	// MetricRehydrateSuccess counts rehydrations that restored a session.
	MetricRehydrateSuccess
	// MetricRehydrateGuest counts rehydrations that found no session.
	MetricRehydrateGuest
	// MetricRehydrateCorrupt counts malformed persisted profile values
	// recovered as null.
	MetricRehydrateCorrupt
	// MetricTokenExpiredLocally counts persisted tokens discarded on rehydrate
	// because their expiry had already passed.
	MetricTokenExpiredLocally
	// MetricUnauthorizedDetected counts 401 responses observed downstream.
	MetricUnauthorizedDetected
	// MetricTokenRefreshSuccess counts successful token refreshes.
	MetricTokenRefreshSuccess
	// MetricTokenRefreshFailure counts failed token refreshes.
	MetricTokenRefreshFailure
	// MetricPermissionCacheHit counts memoized permission answers.
	MetricPermissionCacheHit
	// MetricPermissionCacheMiss counts permission answers computed fresh.
	MetricPermissionCacheMiss
	// MetricPermissionCacheInvalidated counts cache clears.
	MetricPermissionCacheInvalidated
	// MetricGuardAllowed counts guard decisions that rendered children.
	MetricGuardAllowed
	// MetricGuardRedirect counts guard decisions that redirected.
	MetricGuardRedirect
	// MetricGuardPending counts guard decisions deferred during rehydration.
	MetricGuardPending
	// MetricLoginLatency is the login round-trip latency histogram.
	MetricLoginLatency

	metricIDCount
)

// histogramBucketCount matches the fixed exposition layout of the exporters.
const histogramBucketCount = 8

var histogramBounds = [histogramBucketCount - 1]time.Duration{
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
}

// Metrics holds atomic counters and an optional login-latency histogram.
// All operations are no-ops when disabled.
type Metrics struct {
	enabled        bool
	latencyEnabled bool

	counters [metricIDCount]atomic.Uint64
	latency  [histogramBucketCount]atomic.Uint64
}

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:        cfg.Enabled,
		latencyEnabled: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Value returns the current counter for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return m.counters[id].Load()
}

// Observe records a latency observation into the histogram for id. Only
// [MetricLoginLatency] carries a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.latencyEnabled || id != MetricLoginLatency {
		return
	}

	bucket := histogramBucketCount - 1
	for i, bound := range histogramBounds {
		if d <= bound {
			bucket = i
			break
		}
	}
	m.latency[bucket].Add(1)
}

// Snapshot returns a consistent-enough deep copy of all counters and
// histograms. Counters are read individually; the snapshot is not a single
// atomic cut across all of them.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, metricIDCount),
		Histograms: make(map[MetricID][]uint64, 1),
	}
	if m == nil {
		return snap
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricLoginLatency {
			continue
		}
		snap.Counters[id] = m.counters[id].Load()
	}

	if m.latencyEnabled {
		buckets := make([]uint64, histogramBucketCount)
		for i := range m.latency {
			buckets[i] = m.latency[i].Load()
		}
		snap.Histograms[MetricLoginLatency] = buckets
	}

	return snap
}
