package permission

import (
	"errors"
	"sync"
)

// Grants maps role names to their default permission lists. Instances are
// intended to be populated during initialization, frozen, and then treated as
// immutable.
type Grants struct {
	mu     sync.RWMutex
	roles  map[string][]string
	frozen bool
}

// NewGrants creates an empty role-grants registry.
func NewGrants() *Grants {
	return &Grants{
		roles: make(map[string][]string),
	}
}

// RegisterRole assigns the default permission list for roleName. Must be
// called before [Grants.Freeze].
func (g *Grants) RegisterRole(roleName string, perms []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frozen {
		return errors.New("grants registry frozen")
	}

	if roleName == "" {
		return errors.New("role name empty")
	}

	if _, exists := g.roles[roleName]; exists {
		return errors.New("role already registered: " + roleName)
	}

	g.roles[roleName] = append([]string(nil), perms...)
	return nil
}

// ForRole returns the registered permission list for roleName, or false if the
// role is unknown. The returned slice is a copy.
func (g *Grants) ForRole(roleName string) ([]string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	perms, ok := g.roles[roleName]
	if !ok {
		return nil, false
	}
	return append([]string(nil), perms...), true
}

// Freeze prevents further registrations.
func (g *Grants) Freeze() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frozen = true
}

// Count returns the number of registered roles.
func (g *Grants) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.roles)
}
