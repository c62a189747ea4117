package tree

// indexChildren records parent for every node below nodes, depth-first.
func (e *Engine) indexChildren(parent *Node, nodes []*Node) {
	for _, child := range nodes {
		if parent != nil {
			e.parents[child.ID] = parent
		}
		e.indexChildren(child, child.Children)
	}
}

// unindexSubtree drops the entries of n and every descendant.
func (e *Engine) unindexSubtree(n *Node) {
	delete(e.parents, n.ID)
	for _, child := range n.Children {
		e.unindexSubtree(child)
	}
}

func (e *Engine) rebuildIndex() {
	e.parents = make(map[int64]*Node, len(e.parents))
	e.indexChildren(nil, e.roots)
}
