package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitEvent(t *testing.T, w *Watcher, timeout time.Duration) (Event, bool) {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		return evt, ok
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestWatcherReportsWritesToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mindmap.json")
	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	evt, ok := waitEvent(t, w, 2*time.Second)
	if !ok {
		t.Fatalf("expected change event")
	}
	if evt.Err != nil {
		t.Fatalf("unexpected error: %v", evt.Err)
	}
	if evt.Path != w.Path() {
		t.Fatalf("expected path %s, got %s", w.Path(), evt.Path)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "mindmap.json"), 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if evt, ok := waitEvent(t, w, 200*time.Millisecond); ok {
		t.Fatalf("expected no event, got %+v", evt)
	}
}

func TestWatcherIgnoreWindowDropsOwnWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mindmap.json")
	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	w.Ignore(time.Second)
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if evt, ok := waitEvent(t, w, 200*time.Millisecond); ok {
		t.Fatalf("expected own write to be ignored, got %+v", evt)
	}
}

func TestWatcherBurstCollapsesIntoOneEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mindmap.json")
	w, err := NewWatcher(path, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if _, ok := waitEvent(t, w, 2*time.Second); !ok {
		t.Fatalf("expected one event")
	}
	if evt, ok := waitEvent(t, w, 300*time.Millisecond); ok {
		t.Fatalf("expected burst to collapse, got second event %+v", evt)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "mindmap.json"), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}

func TestNewWatcherFailsForMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "mindmap.json"), time.Millisecond); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestWatcherSpacesEventsByMinGap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mindmap.json")
	w, err := NewWatcher(path, 10*time.Millisecond, WithMinGap(300*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := waitEvent(t, w, 2*time.Second); !ok {
		t.Fatalf("expected first event")
	}
	first := time.Now()
	if err := os.WriteFile(path, []byte("[1]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := waitEvent(t, w, 2*time.Second); !ok {
		t.Fatalf("expected held event to be delivered")
	}
	if gap := time.Since(first); gap < 250*time.Millisecond {
		t.Fatalf("expected events at least the min gap apart, got %s", gap)
	}
}

func TestWatcherStopIsPromptWhileEventIsHeld(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mindmap.json")
	w, err := NewWatcher(path, 10*time.Millisecond, WithMinGap(10*time.Second))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := waitEvent(t, w, 2*time.Second); !ok {
		t.Fatalf("expected first event")
	}
	if err := os.WriteFile(path, []byte("[1]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if evt, ok := waitEvent(t, w, 200*time.Millisecond); ok {
		t.Fatalf("expected second event to be held, got %+v", evt)
	}

	done := make(chan struct{})
	go func() {
		w.Stop()
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("Stop blocked behind the held event")
	}
}
