// Package sessiongate provides the session and access-control layer for the
// Campaignwala dashboard platform: a process-wide session manager with soft
// client-side expiry, a memoizing permission evaluator, a permission-filtered
// navigation resolver, and HTTP route guards.
//
// The package is designed for concurrent server workloads: Manager methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build] and an idempotent [Manager.Init].
//
// # Architecture boundaries
//
// sessiongate is the public surface. It exposes [Manager], [Builder], [Config],
// and value types (Session, LoginResult, MetricsSnapshot, etc.). All internal
// coordination (state reduction, expiry polling, audit dispatch) lives under
// internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Verify credentials itself; the remote API owns authentication and this
//     layer only records its outcome.
//   - Expose storage backends, the state container, or audit dispatch details
//     in its public API.
//   - Treat session expiry or permission denial as errors; both are state
//     transitions resolved by forced logout or a guard redirect.
//
// # Single-writer contract
//
// The Manager is the sole writer of session state. Every mutation goes through
// a named intent (login, logout, touch-activity, set-permissions) dispatched to
// the internal state container; all other components read through selectors.
package sessiongate
