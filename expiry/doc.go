// Package expiry implements the client-side soft session timeout: a polled
// watcher that walks NotStarted → Active → Warning → Expired from the last
// recorded activity timestamp, independent of any server-side token expiry.
//
// The watcher is polled rather than event-driven because wall-clock expiry
// must fire even when no user interaction arrives. Activity recording is
// throttled so continuous event streams cannot flood the state container.
//
// # What this package must NOT do
//
//   - Perform the forced logout itself; it only invokes the OnExpire callback,
//     exactly once per started window.
//   - Keep timers alive after Stop; Stop tears down the poll goroutine so a
//     later Start begins clean.
package expiry
