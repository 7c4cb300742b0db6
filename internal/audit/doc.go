// Package audit carries the session layer's observability trail: structured
// events for every session transition (login, logout, forced logout, expiry
// warning, guard redirect) dispatched asynchronously to a pluggable sink.
//
// Dispatch never blocks session operations: the dispatcher buffers events and
// either waits or drops on backpressure depending on configuration. Close
// drains the buffer before returning.
package audit
