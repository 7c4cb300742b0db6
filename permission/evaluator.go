package permission

import "sync"

// Wildcard grants every permission to the holder, regardless of role.
const Wildcard = "*"

// AdminRole names the role that short-circuits all checks to true.
const AdminRole = "admin"

// Hooks receives cache events. Nil funcs are skipped. Used by the session
// manager to feed metrics without coupling this package to them.
type Hooks struct {
	OnCacheHit   func()
	OnCacheMiss  func()
	OnInvalidate func()
}

// Evaluator memoizes per-permission results for the lifetime of the current
// permission set. Safe for concurrent use.
type Evaluator struct {
	hooks Hooks

	mu       sync.RWMutex
	role     string
	perms    map[string]struct{}
	wildcard bool
	cache    map[string]bool
}

// NewEvaluator creates an evaluator holding an empty permission set and the
// empty role.
func NewEvaluator(hooks Hooks) *Evaluator {
	return &Evaluator{
		hooks: hooks,
		perms: map[string]struct{}{},
		cache: map[string]bool{},
	}
}

// SetPermissions replaces the role and permission set and synchronously clears
// the memo cache, so a revoked permission can never be answered from a stale
// cached true.
func (e *Evaluator) SetPermissions(role string, perms []string) {
	e.mu.Lock()
	e.role = role
	e.perms = make(map[string]struct{}, len(perms))
	e.wildcard = false
	for _, p := range perms {
		if p == Wildcard {
			e.wildcard = true
		}
		e.perms[p] = struct{}{}
	}
	e.cache = map[string]bool{}
	e.mu.Unlock()

	if e.hooks.OnInvalidate != nil {
		e.hooks.OnInvalidate()
	}
}

// InvalidateCache discards all memoized results without touching the set.
// Exposed for manual invalidation after an out-of-band permission update.
func (e *Evaluator) InvalidateCache() {
	e.mu.Lock()
	e.cache = map[string]bool{}
	e.mu.Unlock()

	if e.hooks.OnInvalidate != nil {
		e.hooks.OnInvalidate()
	}
}

// HasPermission reports whether the current set satisfies perm. The empty
// permission means "no restriction" and is always true. Admin and wildcard
// holders pass every check.
func (e *Evaluator) HasPermission(perm string) bool {
	if perm == "" {
		return true
	}

	e.mu.RLock()
	if e.role == AdminRole || e.wildcard {
		e.mu.RUnlock()
		return true
	}
	if cached, ok := e.cache[perm]; ok {
		e.mu.RUnlock()
		if e.hooks.OnCacheHit != nil {
			e.hooks.OnCacheHit()
		}
		return cached
	}
	e.mu.RUnlock()

	if e.hooks.OnCacheMiss != nil {
		e.hooks.OnCacheMiss()
	}

	e.mu.Lock()
	_, held := e.perms[perm]
	e.cache[perm] = held
	e.mu.Unlock()

	return held
}

// HasAll reports whether every permission in perms is held. Vacuously true for
// an empty list.
func (e *Evaluator) HasAll(perms []string) bool {
	for _, p := range perms {
		if !e.HasPermission(p) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one permission in perms is held. Vacuously
// true for an empty list.
func (e *Evaluator) HasAny(perms []string) bool {
	if len(perms) == 0 {
		return true
	}
	for _, p := range perms {
		if e.HasPermission(p) {
			return true
		}
	}
	return false
}

// Role returns the role installed by the last SetPermissions call.
func (e *Evaluator) Role() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.role
}
