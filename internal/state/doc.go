// Package state implements the explicit state container backing the session
// manager: an immutable State value mutated only through typed actions applied
// by a pure reducer.
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. Dispatch is
// synchronous and atomic; subscribers observe each transition in dispatch
// order.
//
// # What this package must NOT do
//
//   - Access storage, the network, or timers.
//   - Import sessiongate or any of its subpackages (no import cycles).
//   - Allow any mutation path that bypasses the reducer.
package state
