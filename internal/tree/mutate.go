package tree

import (
	"slices"

	"github.com/atomicstack/mindmap-tui/internal/logging/events"
)

// CreateChild appends a fresh node under parent, or to the top level when
// parent is nil, and makes it active. The parent is expanded so the new
// child is visible. It returns nil when parent is not part of the outline.
func (e *Engine) CreateChild(parent *Node) *Node {
	if parent != nil && !e.attached("create", parent) {
		return nil
	}
	child := newNode(e.nextID(), "")
	if parent != nil {
		parent.Children = append(parent.Children, child)
		e.parents[child.ID] = parent
	} else {
		e.roots = append(e.roots, child)
	}
	e.activate(child)
	events.Tree.Create(child.ID, idOf(parent))

	if parent != nil {
		parent.Collapsed = false
		e.notifyNode(parent.ID)
	} else {
		e.notifyRoot()
	}
	e.markDirty()
	e.notifyToolbar()
	return child
}

// CreateSibling appends a node next to n's siblings, at the end of the
// collection owning n.
func (e *Engine) CreateSibling(n *Node) *Node {
	if n == nil {
		return e.CreateChild(nil)
	}
	return e.CreateChild(e.ParentOf(n))
}

// RemoveNode detaches n with its whole subtree. The last remaining
// top-level node is never removed. Focus moves to the sibling now at n's
// former position, else to the new last sibling, else to the parent.
func (e *Engine) RemoveNode(n *Node) bool {
	if n == nil {
		return false
	}
	parent, nodes := e.siblings(n)
	if parent == nil && len(nodes) < 2 {
		events.Tree.Refuse("remove", n.ID, events.RefuseLastRoot)
		return false
	}
	idx := indexOfID(nodes, n.ID)
	if idx < 0 {
		events.Tree.Refuse("remove", n.ID, events.RefuseNotFound)
		return false
	}
	removed := nodes[idx]
	nodes = slices.Delete(nodes, idx, idx+1)
	if parent != nil {
		parent.Children = nodes
	} else {
		e.roots = nodes
	}
	e.unindexSubtree(removed)

	var focus *Node
	switch {
	case idx < len(nodes):
		focus = nodes[idx]
	case len(nodes) > 0:
		focus = nodes[len(nodes)-1]
	}
	if focus != nil {
		e.activate(focus)
		e.notifyNode(focus.ID)
	} else if parent != nil {
		e.activate(parent)
	}
	events.Tree.Remove(removed.ID, idOf(e.active))

	if parent != nil {
		e.notifyNode(parent.ID)
	} else {
		e.notifyRoot()
	}
	e.markDirty()
	e.notifyToolbar()
	e.dropListeners(removed)
	return true
}

// SetLabel replaces the text of n.
func (e *Engine) SetLabel(n *Node, label string) {
	if n == nil || !e.attached("label", n) {
		return
	}
	n.Label = label
	events.Tree.Label(n.ID, label)
	e.notifyNode(n.ID)
	e.markDirty()
	e.notifyToolbar()
}

// SetCollapsed hides or reveals the children of n. Collapse state is view
// state and does not mark the outline dirty.
func (e *Engine) SetCollapsed(n *Node, collapsed bool) {
	if n == nil || !e.attached("collapse", n) {
		return
	}
	n.Collapsed = collapsed
	events.Tree.Collapse(n.ID, collapsed)
	e.notifyNode(n.ID)
	e.notifyToolbar()
}

// ToggleCollapsed flips the collapse state of n.
func (e *Engine) ToggleCollapsed(n *Node) {
	if n == nil {
		return
	}
	e.SetCollapsed(n, !n.Collapsed)
}

// SetChildrenCollapsed expands n and applies collapsed to its direct
// children. Leaf children are never collapsed since they hide nothing; they
// are still expanded when collapsed is false.
func (e *Engine) SetChildrenCollapsed(n *Node, collapsed bool) {
	if n == nil || !e.attached("collapse.children", n) {
		return
	}
	n.Collapsed = false
	e.notifyNode(n.ID)

	changed := 0
	for _, child := range n.Children {
		if !collapsed || len(child.Children) > 0 {
			child.Collapsed = collapsed
			e.notifyNode(child.ID)
			changed++
		}
	}
	events.Tree.CollapseChildren(n.ID, collapsed, changed)
	e.notifyToolbar()
}

// SetActive focuses n, or clears focus when n is nil. Nothing changes when
// n is already active, but the toolbar listener is notified either way.
// A node outside the outline is refused without any notification.
func (e *Engine) SetActive(n *Node) {
	if n != nil && !e.attached("activate", n) {
		return
	}
	if e.activate(n) && n != nil {
		e.notifyNode(n.ID)
	}
	e.notifyToolbar()
}

// Reveal expands every collapsed ancestor of n and makes n active.
func (e *Engine) Reveal(n *Node) {
	if n == nil || !e.attached("reveal", n) {
		return
	}
	for p := e.parents[n.ID]; p != nil; p = e.parents[p.ID] {
		if p.Collapsed {
			p.Collapsed = false
			events.Tree.Collapse(p.ID, false)
			e.notifyNode(p.ID)
		}
	}
	e.SetActive(n)
}

// activate moves the active flag to n and notifies the previously active
// node. It reports whether the active node changed.
func (e *Engine) activate(n *Node) bool {
	if sameNode(n, e.active) {
		return false
	}
	prev := e.active
	if prev != nil {
		prev.Active = false
		e.notifyNode(prev.ID)
	}
	if n != nil {
		n.Active = true
	}
	e.active = n
	events.Tree.Activate(idOf(prev), idOf(n))
	return true
}
