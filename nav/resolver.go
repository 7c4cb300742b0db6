package nav

import (
	"errors"
	"sync"
)

// PermissionChecker is the slice of the permission evaluator the resolver
// needs. Satisfied by *permission.Evaluator.
type PermissionChecker interface {
	HasAll(perms []string) bool
}

// Resolver filters per-role menu trees through a permission checker.
// Instances are intended to be populated during initialization, frozen, and
// then treated as immutable.
type Resolver struct {
	mu     sync.RWMutex
	menus  map[string][]Node
	frozen bool
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		menus: make(map[string][]Node),
	}
}

// RegisterMenu installs the static tree for a role. Must be called before
// [Resolver.Freeze].
func (r *Resolver) RegisterMenu(role string, tree []Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.New("resolver frozen")
	}

	if role == "" {
		return errors.New("role empty")
	}

	if _, exists := r.menus[role]; exists {
		return errors.New("menu already registered for role: " + role)
	}

	r.menus[role] = cloneNodes(tree)
	return nil
}

// Freeze prevents further registrations.
func (r *Resolver) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// FilteredMenu returns the role's tree with every node whose required
// permissions are not fully held removed, subtree included. An unknown role
// yields an empty menu.
func (r *Resolver) FilteredMenu(role string, checker PermissionChecker) []Node {
	r.mu.RLock()
	tree := r.menus[role]
	r.mu.RUnlock()

	return filterNodes(tree, checker)
}

func filterNodes(nodes []Node, checker PermissionChecker) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if checker != nil && !checker.HasAll(n.RequiredPermissions) {
			continue
		}
		kept := n
		kept.RequiredPermissions = append([]string(nil), n.RequiredPermissions...)
		kept.Children = filterNodes(n.Children, checker)
		out = append(out, kept)
	}
	return out
}

// Breadcrumbs returns the trail for key within the role's static tree:
// [parent, node] when the node has a parent, [node] otherwise. A key not in
// the tree yields nil.
func (r *Resolver) Breadcrumbs(role, key string) []Crumb {
	r.mu.RLock()
	tree := r.menus[role]
	r.mu.RUnlock()

	return findTrail(tree, nil, key)
}

func findTrail(nodes []Node, parent *Node, key string) []Crumb {
	for i := range nodes {
		n := &nodes[i]
		if n.Key == key {
			if parent != nil {
				return []Crumb{
					{Key: parent.Key, Label: parent.Label},
					{Key: n.Key, Label: n.Label},
				}
			}
			return []Crumb{{Key: n.Key, Label: n.Label}}
		}
		if trail := findTrail(n.Children, n, key); trail != nil {
			return trail
		}
	}
	return nil
}

// CurrentItem searches the filtered menu and one level of children for
// activeKey. Returns nil when not found, e.g. a stale key after a permission
// change removed the node; that is "no current item", not an error.
func (r *Resolver) CurrentItem(role, activeKey string, checker PermissionChecker) *Node {
	menu := r.FilteredMenu(role, checker)
	for i := range menu {
		if menu[i].Key == activeKey {
			return &menu[i]
		}
		for j := range menu[i].Children {
			if menu[i].Children[j].Key == activeKey {
				return &menu[i].Children[j]
			}
		}
	}
	return nil
}
