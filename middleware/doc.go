// Package middleware exposes the four route guards as HTTP middleware:
// Protected (role-gated), Public (inverse-gated), Private (permission-gated),
// and RoleBased (exact-role-gated).
//
// Each guard asks the Manager for a decision and either serves the wrapped
// handler (injecting the session snapshot into the request context), issues a
// redirect carrying the attempted path in the "from" query parameter, or,
// while persisted state is still loading, serves a configurable pending
// handler so protected content never flashes early.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Manager calls. It does NOT make
// access decisions itself; all decisions are delegated to the Manager's
// Decide methods.
package middleware
