package tree

import "fmt"

// Check verifies the structural invariants of the engine: unique ids, at
// least one top-level node, a single active flag matching the active node
// and a parent index that mirrors the tree exactly.
func (e *Engine) Check() error {
	if len(e.roots) == 0 {
		return fmt.Errorf("no top-level nodes")
	}
	seen := make(map[int64]struct{})
	expected := make(map[int64]*Node)
	var flagged []*Node
	var err error
	e.Walk(func(n *Node, parent *Node, _ int) bool {
		if _, dup := seen[n.ID]; dup {
			err = fmt.Errorf("duplicate id %d", n.ID)
			return false
		}
		seen[n.ID] = struct{}{}
		if parent != nil {
			expected[n.ID] = parent
		}
		if n.Active {
			flagged = append(flagged, n)
		}
		return true
	})
	if err != nil {
		return err
	}
	if len(flagged) > 1 {
		return fmt.Errorf("%d nodes flagged active", len(flagged))
	}
	switch {
	case e.active == nil && len(flagged) == 1:
		return fmt.Errorf("node %d flagged active but no active node recorded", flagged[0].ID)
	case e.active != nil && len(flagged) == 0:
		return fmt.Errorf("active node %d is not flagged", e.active.ID)
	case e.active != nil && flagged[0] != e.active:
		return fmt.Errorf("active node %d differs from flagged node %d", e.active.ID, flagged[0].ID)
	}
	if e.active != nil && !e.contains(e.active) {
		return fmt.Errorf("active node %d is detached", e.active.ID)
	}
	if len(expected) != len(e.parents) {
		return fmt.Errorf("parent index has %d entries, tree implies %d", len(e.parents), len(expected))
	}
	for id, parent := range expected {
		if got := e.parents[id]; got != parent {
			return fmt.Errorf("parent index maps %d to %d, want %d", id, idOf(got), parent.ID)
		}
	}
	return nil
}
