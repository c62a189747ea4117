package tree

// Node is a labeled, collapsible element of the outline. Parents are tracked
// by the engine's index rather than on the node so the structure stays an
// acyclic value that serialises directly.
type Node struct {
	ID        int64   `json:"id"`
	Label     string  `json:"label"`
	Active    bool    `json:"active"`
	Collapsed bool    `json:"collapsed"`
	Children  []*Node `json:"children"`
}

// HasChildren reports whether the node owns at least one child.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	dup := *n
	dup.Children = cloneNodes(n.Children)
	return &dup
}

func cloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, child := range nodes {
		out[i] = child.Clone()
	}
	return out
}

func newNode(id int64, label string) *Node {
	return &Node{ID: id, Label: label, Children: []*Node{}}
}

// indexOfID finds the position of id among nodes, or -1.
func indexOfID(nodes []*Node, id int64) int {
	for i, n := range nodes {
		if n != nil && n.ID == id {
			return i
		}
	}
	return -1
}

func sameNode(a, b *Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}

func idOf(n *Node) int64 {
	if n == nil {
		return 0
	}
	return n.ID
}
