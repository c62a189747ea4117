package ui

import (
	"testing"

	"github.com/atomicstack/mindmap-tui/internal/store"
	"github.com/atomicstack/mindmap-tui/internal/testutil"
	"github.com/atomicstack/mindmap-tui/internal/tree"
)

type fakeClipboard struct {
	text string
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return nil
}

type fixture struct {
	*testutil.Outline
	harness   *Harness
	store     *store.Memory
	clipboard *fakeClipboard
}

func newFixture(t *testing.T, outline string, opts ...func(*Options)) *fixture {
	t.Helper()
	mem := store.NewMemory()
	o := testutil.BuildOutline(t, outline, tree.WithStore(mem))
	clip := &fakeClipboard{}
	options := Options{
		Engine:    o.Engine,
		Width:     60,
		Height:    20,
		Clipboard: clip,
	}
	for _, opt := range opts {
		opt(&options)
	}
	model := NewModel(options)
	t.Cleanup(model.Close)
	return &fixture{Outline: o, harness: NewHarness(model), store: mem, clipboard: clip}
}

func (f *fixture) model() *Model {
	return f.harness.Model()
}

func (f *fixture) activeLabel(t *testing.T) string {
	t.Helper()
	active := f.Engine.Active()
	if active == nil {
		return ""
	}
	return active.Label
}

func rootLabels(e *tree.Engine) []string {
	var out []string
	for _, n := range e.Roots() {
		out = append(out, n.Label)
	}
	return out
}
