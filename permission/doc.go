// Package permission answers "can this session do X" cheaply and consistently:
// a batch evaluator over a string permission set with per-permission
// memoization, plus a role-to-grants registry.
//
// # Documented conventions
//
// Two product decisions are preserved verbatim from the platform's access
// model and must not be altered here:
//
//   - An empty permission argument means "no restriction" and evaluates true.
//   - The admin role, and any set containing the "*" wildcard grant, passes
//     every check, including permissions never explicitly granted.
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O.
//
// # What this package must NOT do
//
//   - Access storage or the network.
//   - Import sessiongate (no import cycles).
//   - Return a stale positive result after a permission has been revoked; the
//     memo cache is cleared synchronously on every set change.
package permission
