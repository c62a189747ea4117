package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/mindmap-tui/internal/tree"
)

// Outline is an engine built from an indented text fixture, with its nodes
// addressable by label.
type Outline struct {
	Engine *tree.Engine
	nodes  map[string]*tree.Node
}

// Node returns the node labelled label or fails the test.
func (o *Outline) Node(t *testing.T, label string) *tree.Node {
	t.Helper()
	n, ok := o.nodes[label]
	if !ok {
		t.Fatalf("fixture has no node labelled %q", label)
	}
	return n
}

// FixedClock returns a clock frozen at one millisecond so ids of a fixture
// are small consecutive integers.
func FixedClock() func() time.Time {
	at := time.UnixMilli(1)
	return func() time.Time { return at }
}

// BuildOutline parses a fixture where each line is a label indented by two
// spaces per level; a trailing "+" marks the node collapsed and a leading
// "*" marks it active. The placeholder node of the fresh engine is replaced.
//
//	root
//	  *child
//	  branch+
//	    leaf
func BuildOutline(t *testing.T, fixture string, opts ...tree.Option) *Outline {
	t.Helper()
	type frame struct {
		depth int
		node  *tree.Node
	}
	var roots []*tree.Node
	var stack []frame
	nodes := make(map[string]*tree.Node)
	var id int64 = 100
	for _, raw := range strings.Split(fixture, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		trimmed := strings.TrimLeft(raw, " ")
		depth := (len(raw) - len(trimmed)) / 2
		label := strings.TrimSpace(trimmed)
		n := &tree.Node{Children: []*tree.Node{}}
		if strings.HasPrefix(label, "*") {
			n.Active = true
			label = strings.TrimPrefix(label, "*")
		}
		if strings.HasSuffix(label, "+") {
			n.Collapsed = true
			label = strings.TrimSuffix(label, "+")
		}
		id++
		n.ID = id
		n.Label = label
		if _, dup := nodes[label]; dup {
			t.Fatalf("fixture label %q used twice", label)
		}
		nodes[label] = n

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			if depth != 0 {
				t.Fatalf("fixture line %q is indented without a parent", raw)
			}
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, n)
		}
		stack = append(stack, frame{depth: depth, node: n})
	}
	engine := tree.New(append([]tree.Option{tree.WithClock(FixedClock())}, opts...)...)
	if err := engine.Restore(roots); err != nil {
		t.Fatalf("fixture rejected: %v", err)
	}
	return &Outline{Engine: engine, nodes: nodes}
}

// RequireValid fails the test when the engine breaks one of its invariants.
func RequireValid(t *testing.T, e *tree.Engine) {
	t.Helper()
	if err := e.Check(); err != nil {
		t.Fatalf("engine invariant violated: %v", err)
	}
}
