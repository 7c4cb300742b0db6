package nav

// Node is one entry in the static menu tree, optionally permission-gated.
type Node struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	Path  string `yaml:"path,omitempty"`

	// RequiredPermissions gates visibility: the node (and its subtree) is shown
	// only when every listed permission is held. Empty means unrestricted.
	RequiredPermissions []string `yaml:"required_permissions,omitempty"`

	Children []Node `yaml:"children,omitempty"`
}

// Crumb is one element of a breadcrumb trail.
type Crumb struct {
	Key   string
	Label string
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		out[i].RequiredPermissions = append([]string(nil), n.RequiredPermissions...)
		out[i].Children = cloneNodes(n.Children)
	}
	return out
}
