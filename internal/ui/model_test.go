package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mindmap-tui/internal/backend"
	"github.com/atomicstack/mindmap-tui/internal/testutil"
	"github.com/atomicstack/mindmap-tui/internal/tree"
)

func TestEditLabelFlow(t *testing.T) {
	f := newFixture(t, sampleOutline)

	f.harness.Keys("e")
	if f.model().Mode() != ModeEdit {
		t.Fatalf("expected edit mode")
	}
	if !strings.Contains(f.harness.View(), "Edit label") {
		t.Fatalf("expected edit prompt in view:\n%s", f.harness.View())
	}
	f.harness.Keys("ctrl+u")
	f.harness.Type("Big idea")
	f.harness.Keys("enter")

	if f.model().Mode() != ModeOutline {
		t.Fatalf("expected outline mode after submit")
	}
	if got := f.Node(t, "root").Label; got != "Big idea" {
		t.Fatalf("expected label updated, got %q", got)
	}
	if !f.Engine.CanSave() {
		t.Fatalf("expected label change to mark dirty")
	}
	if !strings.Contains(f.harness.View(), "Big idea") {
		t.Fatalf("expected new label rendered:\n%s", f.harness.View())
	}
}

func TestEditCancelKeepsLabel(t *testing.T) {
	f := newFixture(t, sampleOutline)
	f.harness.Keys(" ")
	f.harness.Type("xyz")
	f.harness.Keys("esc")
	if got := f.Node(t, "root").Label; got != "root" {
		t.Fatalf("expected label untouched, got %q", got)
	}
	if f.Engine.CanSave() {
		t.Fatalf("expected clean outline after cancel")
	}
	if f.Engine.Active() == nil {
		t.Fatalf("esc inside the form must not clear the selection")
	}
}

func TestEditPlaceholderStartsEmpty(t *testing.T) {
	f := newFixture(t, "root\n")
	f.Engine.Reset()
	fresh := f.Engine.Roots()[0]
	if fresh.Label != f.Engine.Placeholder() {
		t.Fatalf("expected reset outline to carry the placeholder, got %q", fresh.Label)
	}
	f.Engine.SetActive(fresh)
	f.harness.Keys(" ")
	if f.model().Mode() != ModeEdit {
		t.Fatalf("expected edit mode")
	}
	if got := f.model().labelForm.Value(); got != "" {
		t.Fatalf("expected empty input for the placeholder node, got %q", got)
	}
	f.harness.Keys("enter")
	if fresh.Label != f.Engine.Placeholder() {
		t.Fatalf("expected untouched placeholder, got %q", fresh.Label)
	}
	if f.Engine.CanSave() {
		t.Fatalf("expected submitting the empty input to change nothing")
	}

	f.harness.Keys(" ")
	f.harness.Type("named")
	f.harness.Keys("enter")
	if fresh.Label != "named" {
		t.Fatalf("expected typed text to replace the placeholder, got %q", fresh.Label)
	}
}

func TestEditNewNodeStartsEmpty(t *testing.T) {
	f := newFixture(t, "root\n")
	f.harness.Keys("n")
	created := f.Engine.Active()
	if created.Label != "" {
		t.Fatalf("expected new node without a label, got %q", created.Label)
	}
	f.harness.Keys(" ")
	f.harness.Type("todo")
	f.harness.Keys("enter")
	if created.Label != "todo" {
		t.Fatalf("expected label to be set, got %q", created.Label)
	}
}

func TestEditTargetRemovedWhileEditing(t *testing.T) {
	f := newFixture(t, sampleOutline)
	b := f.Node(t, "b")
	f.Engine.SetActive(b)
	f.harness.Keys("e")
	f.Engine.RemoveNode(b)
	f.harness.Type("!")
	f.harness.Keys("enter")
	if !strings.Contains(f.harness.View(), "no longer exists") {
		t.Fatalf("expected stale edit error:\n%s", f.harness.View())
	}
}

func TestSaveAndReload(t *testing.T) {
	f := newFixture(t, sampleOutline)
	f.harness.Keys("ctrl+s")
	if !strings.Contains(f.harness.View(), "Nothing to save.") {
		t.Fatalf("expected nothing-to-save hint")
	}

	f.harness.Keys("n", "ctrl+s")
	if f.Engine.CanSave() {
		t.Fatalf("expected save to clear dirty flag")
	}
	if _, err := f.store.Get(context.Background(), f.Engine.Key()); err != nil {
		t.Fatalf("expected payload in store: %v", err)
	}
	if strings.Contains(f.harness.View(), "[modified]") {
		t.Fatalf("expected header without modified marker")
	}

	f.Engine.SetLabel(f.Node(t, "other"), "changed")
	f.harness.Keys("ctrl+r")
	labels := rootLabels(f.Engine)
	if len(labels) != 3 || labels[1] != "other" {
		t.Fatalf("expected reload to restore saved outline, got %v", labels)
	}
	if f.Engine.CanSave() {
		t.Fatalf("expected clean outline after reload")
	}
	if err := f.Engine.Check(); err != nil {
		t.Fatalf("invariants after reload: %v", err)
	}
}

func TestSearchRevealsHiddenNode(t *testing.T) {
	f := newFixture(t, `
plans
  garden+
    tomatoes
  garage
`)
	f.harness.Keys("/")
	if f.model().Mode() != ModeSearch {
		t.Fatalf("expected search mode")
	}
	f.harness.Type("tom")
	if !strings.Contains(f.harness.View(), "1/1  tomatoes") {
		t.Fatalf("expected match status in view:\n%s", f.harness.View())
	}
	if !strings.Contains(f.harness.View(), "tomatoes  plans › garden") {
		t.Fatalf("expected candidate with ancestor path:\n%s", f.harness.View())
	}
	f.harness.Keys("enter")

	tomatoes := f.Node(t, "tomatoes")
	if f.Engine.Active() != tomatoes {
		t.Fatalf("expected search to activate tomatoes")
	}
	if f.Node(t, "garden").Collapsed {
		t.Fatalf("expected ancestors expanded")
	}
	if f.model().Outline().IndexOf(tomatoes.ID) < 0 {
		t.Fatalf("expected tomatoes visible")
	}
}

func TestSearchCyclesAndCancels(t *testing.T) {
	f := newFixture(t, `
plans
  garden
  garage
`)
	f.harness.Keys("/")
	f.harness.Type("ga")
	f.harness.Keys("down")
	if !strings.Contains(f.harness.View(), "2/2  garage") {
		t.Fatalf("expected second match selected:\n%s", f.harness.View())
	}
	f.harness.Keys("esc")
	if f.model().Mode() != ModeOutline || f.Engine.Active() != nil {
		t.Fatalf("expected cancel without selection change")
	}

	f.harness.Keys("/")
	f.harness.Type("zzz")
	if !strings.Contains(f.harness.View(), `No matches for "zzz"`) {
		t.Fatalf("expected no-match status:\n%s", f.harness.View())
	}
	f.harness.Keys("enter")
	if f.model().Mode() != ModeOutline {
		t.Fatalf("expected enter without matches to close search")
	}
}

func TestCopyLabelUsesClipboard(t *testing.T) {
	f := newFixture(t, sampleOutline)
	f.harness.Keys("y")
	if f.clipboard.text != "root" {
		t.Fatalf("expected root copied, got %q", f.clipboard.text)
	}
	if !strings.Contains(f.harness.View(), `Copied "root"`) {
		t.Fatalf("expected copy confirmation:\n%s", f.harness.View())
	}
}

func TestExportWritesMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.md")
	f := newFixture(t, `
plans
  garden+
    tomatoes
  garage
`, func(o *Options) { o.ExportPath = path })

	f.harness.Keys("x")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected export file: %v", err)
	}
	testutil.AssertGolden(t, "export.md", string(data))
	if !strings.Contains(f.harness.View(), "Exported to") {
		t.Fatalf("expected export confirmation:\n%s", f.harness.View())
	}
}

func TestExternalChangeReloadsCleanOutline(t *testing.T) {
	f := newFixture(t, sampleOutline)
	payload, err := tree.Encode([]*tree.Node{{ID: 900, Label: "external", Children: []*tree.Node{}}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.store.Put(context.Background(), f.Engine.Key(), payload); err != nil {
		t.Fatalf("put: %v", err)
	}

	f.harness.Send(backendEventMsg{event: backend.Event{Path: "mindmap.json"}})
	if labels := rootLabels(f.Engine); len(labels) != 1 || labels[0] != "external" {
		t.Fatalf("expected external outline loaded, got %v", labels)
	}
	if !strings.Contains(f.harness.View(), "external") {
		t.Fatalf("expected rows rebuilt:\n%s", f.harness.View())
	}
}

func TestExternalChangeWithEditsWaitsForReload(t *testing.T) {
	f := newFixture(t, sampleOutline)
	payload, _ := tree.Encode([]*tree.Node{{ID: 900, Label: "external", Children: []*tree.Node{}}})
	_ = f.store.Put(context.Background(), f.Engine.Key(), payload)

	f.harness.Keys("n")
	f.harness.Send(backendEventMsg{event: backend.Event{Path: "mindmap.json"}})
	if len(f.Engine.Roots()) != 3 {
		t.Fatalf("expected local edits kept")
	}
	if !strings.Contains(f.harness.View(), "(changed on disk)") {
		t.Fatalf("expected changed marker:\n%s", f.harness.View())
	}
	f.harness.Keys("ctrl+r")
	if labels := rootLabels(f.Engine); len(labels) != 1 || labels[0] != "external" {
		t.Fatalf("expected reload to adopt external outline, got %v", labels)
	}
	if strings.Contains(f.harness.View(), "(changed on disk)") {
		t.Fatalf("expected marker cleared after reload")
	}
}

func TestWatcherErrorIsShown(t *testing.T) {
	f := newFixture(t, sampleOutline)
	f.harness.Send(backendEventMsg{event: backend.Event{Err: fmt.Errorf("inotify gone")}})
	if !strings.Contains(f.harness.View(), "inotify gone") {
		t.Fatalf("expected watcher error:\n%s", f.harness.View())
	}
	f.harness.Send(backendDoneMsg{})
	if f.model().backend != nil {
		t.Fatalf("expected watcher detached")
	}
}

func TestMouseSelectsEditsAndClears(t *testing.T) {
	f := newFixture(t, sampleOutline)
	click := func(y int) {
		f.harness.Send(tea.MouseMsg{X: 4, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}

	click(rowsTop + 1)
	if got := f.activeLabel(t); got != "a" {
		t.Fatalf("expected click to select a, got %q", got)
	}
	click(rowsTop + 1)
	if f.model().Mode() != ModeEdit {
		t.Fatalf("expected double click to start editing")
	}
	f.harness.Keys("esc")

	click(rowsTop + 10)
	if f.Engine.Active() != nil {
		t.Fatalf("expected background click to clear selection")
	}
	click(0)
	if f.Engine.Active() != nil {
		t.Fatalf("expected header click to be ignored")
	}
}
