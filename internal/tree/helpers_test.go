package tree

import (
	"fmt"
	"testing"
	"time"
)

// fixedClock always reports the same instant, so successive ids are
// consecutive integers starting at 1000.
func fixedClock() func() time.Time {
	at := time.UnixMilli(1000)
	return func() time.Time { return at }
}

func newTestEngine(opts ...Option) *Engine {
	return New(append([]Option{WithClock(fixedClock())}, opts...)...)
}

type recorder struct {
	calls []string
}

func (r *recorder) reset() { r.calls = nil }

// record subscribes to the root and toolbar listeners plus the given nodes.
func record(e *Engine, nodes ...*Node) *recorder {
	r := &recorder{}
	e.OnRootChange(func() { r.calls = append(r.calls, "root") })
	e.OnToolbarChange(func() { r.calls = append(r.calls, "toolbar") })
	for _, n := range nodes {
		id := n.ID
		e.Subscribe(id, func() { r.calls = append(r.calls, fmt.Sprintf("node:%d", id)) })
	}
	return r
}

func mustCheck(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.Check(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func labels(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
