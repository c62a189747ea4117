package tree

// Roots returns the top-level nodes. The slice is owned by the engine.
func (e *Engine) Roots() []*Node { return e.roots }

// Active returns the focused node, or nil.
func (e *Engine) Active() *Node { return e.active }

// CanSave reports whether unsaved mutations exist.
func (e *Engine) CanSave() bool { return e.dirty }

// ParentOf returns the structural parent of n; nil for top-level nodes.
func (e *Engine) ParentOf(n *Node) *Node {
	if n == nil {
		return nil
	}
	return e.parents[n.ID]
}

// CanMoveLeft reports whether n has a parent to move to.
func (e *Engine) CanMoveLeft(n *Node) bool {
	return e.ParentOf(n) != nil
}

// CanMoveRight reports whether n is expanded and has children.
func (e *Engine) CanMoveRight(n *Node) bool {
	return n != nil && !n.Collapsed && len(n.Children) > 0
}

// CanMoveUp reports whether n has an earlier sibling under a parent node.
// Top-level nodes have no parent entry and therefore never move up or down,
// even when the top-level list holds several nodes.
func (e *Engine) CanMoveUp(n *Node) bool {
	return e.UpNode(n) != nil
}

// CanMoveDown reports whether n has a later sibling under a parent node.
func (e *Engine) CanMoveDown(n *Node) bool {
	return e.DownNode(n) != nil
}

// MiddleChild returns the child at (count-1)/2, the earlier of the two
// middle children on even counts.
func (e *Engine) MiddleChild(n *Node) *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[(len(n.Children)-1)/2]
}

// UpNode returns the previous sibling of a nested node.
func (e *Engine) UpNode(n *Node) *Node {
	parent := e.ParentOf(n)
	if parent == nil {
		return nil
	}
	idx := indexOfID(parent.Children, n.ID)
	if idx > 0 {
		return parent.Children[idx-1]
	}
	return nil
}

// DownNode returns the next sibling of a nested node.
func (e *Engine) DownNode(n *Node) *Node {
	parent := e.ParentOf(n)
	if parent == nil {
		return nil
	}
	idx := indexOfID(parent.Children, n.ID)
	if idx >= 0 && idx < len(parent.Children)-1 {
		return parent.Children[idx+1]
	}
	return nil
}

// CanActivateLeft, CanActivateRight, CanActivateUp and CanActivateDown
// report whether the active node exists and can move that way.
func (e *Engine) CanActivateLeft() bool  { return e.active != nil && e.CanMoveLeft(e.active) }
func (e *Engine) CanActivateRight() bool { return e.active != nil && e.CanMoveRight(e.active) }
func (e *Engine) CanActivateUp() bool    { return e.active != nil && e.CanMoveUp(e.active) }
func (e *Engine) CanActivateDown() bool  { return e.active != nil && e.CanMoveDown(e.active) }

// Capabilities is a snapshot of the flags a toolbar renders.
type Capabilities struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Save  bool
}

// Capabilities recomputes every derived flag from the current state.
func (e *Engine) Capabilities() Capabilities {
	return Capabilities{
		Left:  e.CanActivateLeft(),
		Right: e.CanActivateRight(),
		Up:    e.CanActivateUp(),
		Down:  e.CanActivateDown(),
		Save:  e.CanSave(),
	}
}

// Visit is called for each node during Walk. Returning false stops the walk.
type Visit func(n *Node, parent *Node, depth int) bool

// Walk traverses the outline depth-first in display order, including the
// children of collapsed nodes.
func (e *Engine) Walk(fn Visit) {
	walk(nil, e.roots, 0, fn)
}

func walk(parent *Node, nodes []*Node, depth int, fn Visit) bool {
	for _, n := range nodes {
		if !fn(n, parent, depth) {
			return false
		}
		if !walk(n, n.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given id, or nil.
func (e *Engine) Find(id int64) *Node {
	var found *Node
	e.Walk(func(n *Node, _ *Node, _ int) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Len counts every node in the outline.
func (e *Engine) Len() int {
	count := 0
	e.Walk(func(*Node, *Node, int) bool {
		count++
		return true
	})
	return count
}

// Path returns the chain of nodes from the top level down to n.
func (e *Engine) Path(n *Node) []*Node {
	if n == nil {
		return nil
	}
	var chain []*Node
	for cur := n; cur != nil; cur = e.parents[cur.ID] {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Snapshot returns a deep copy of the top-level nodes.
func (e *Engine) Snapshot() []*Node {
	return cloneNodes(e.roots)
}
