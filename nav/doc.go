// Package nav derives the menu tree and breadcrumb trail visible to the
// current session from a static, per-role navigation definition.
//
// Trees are configuration data: registered once, never mutated at runtime, and
// acyclic by construction. Filtering removes a node and its whole subtree when
// the session does not hold every required permission.
package nav
