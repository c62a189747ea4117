package tree

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/mindmap-tui/internal/store"
)

type failingStore struct {
	store.Store
	putErr error
	getErr error
}

func (f failingStore) Put(ctx context.Context, key string, value []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.Store.Put(ctx, key, value)
}

func (f failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func TestLoadAbsentFallsBackToInitialState(t *testing.T) {
	e := newTestEngine(WithStore(store.NewMemory()))
	e.CreateChild(nil)
	e.Load(context.Background())
	if len(e.Roots()) != 1 || e.Roots()[0].Label != DefaultPlaceholder {
		t.Fatalf("expected placeholder outline")
	}
	if e.Active() != nil || e.CanSave() {
		t.Fatalf("expected no active node and clean state")
	}
	mustCheck(t, e)
}

func TestLoadMalformedPayloadsFallBack(t *testing.T) {
	payloads := map[string]string{
		"garbage":   "not json",
		"object":    `{"id":1}`,
		"empty":     `[]`,
		"null":      `null`,
		"nullNode":  `[null]`,
		"duplicate": `[{"id":1,"label":"a","children":[{"id":1,"label":"b"}]}]`,
		"badType":   `[{"id":"x"}]`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			mem := store.NewMemory()
			if err := mem.Put(context.Background(), DefaultKey, []byte(payload)); err != nil {
				t.Fatalf("seed store: %v", err)
			}
			e := newTestEngine(WithStore(mem))
			e.Load(context.Background())
			if len(e.Roots()) != 1 || e.Roots()[0].Label != DefaultPlaceholder {
				t.Fatalf("expected fallback outline, got %v", labels(e.Roots()))
			}
			if e.CanSave() || e.Active() != nil {
				t.Fatalf("expected clean fallback state")
			}
		})
	}
}

func TestLoadStoreErrorFallsBack(t *testing.T) {
	e := newTestEngine(WithStore(failingStore{Store: store.NewMemory(), getErr: errors.New("disk gone")}))
	e.Load(context.Background())
	if len(e.Roots()) != 1 || e.Roots()[0].Label != DefaultPlaceholder {
		t.Fatalf("expected fallback outline")
	}
}

func TestLoadWithoutStoreResets(t *testing.T) {
	e := newTestEngine()
	e.CreateChild(nil)
	e.Load(context.Background())
	if len(e.Roots()) != 1 {
		t.Fatalf("expected reset outline")
	}
}

func TestLoadRebuildsIndexAndLastActiveWins(t *testing.T) {
	payload := `[
		{"id":1,"label":"a","active":true,"collapsed":false,"children":[
			{"id":2,"label":"a1","active":false,"collapsed":true,"children":[
				{"id":3,"label":"a1x","active":true,"collapsed":false,"children":[]}
			]}
		]},
		{"id":4,"label":"b","active":false,"collapsed":false,"children":null}
	]`
	mem := store.NewMemory()
	if err := mem.Put(context.Background(), DefaultKey, []byte(payload)); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	e := newTestEngine(WithStore(mem))
	rec := record(e)
	e.Load(context.Background())

	if got := labels(e.Roots()); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected roots %v", got)
	}
	a1 := e.Find(2)
	a1x := e.Find(3)
	if e.ParentOf(a1) != e.Roots()[0] || e.ParentOf(a1x) != a1 {
		t.Fatalf("expected parent index rebuilt")
	}
	if e.ParentOf(e.Roots()[1]) != nil {
		t.Fatalf("expected no entry for top-level node")
	}
	if e.Active() != a1x {
		t.Fatalf("expected last active node in traversal order to win")
	}
	if e.Roots()[0].Active {
		t.Fatalf("expected earlier active flag cleared")
	}
	if !a1.Collapsed {
		t.Fatalf("expected collapsed flag preserved")
	}
	if e.Roots()[1].Children == nil {
		t.Fatalf("expected null children normalised")
	}
	if e.CanSave() {
		t.Fatalf("expected clean state after load")
	}
	if !equalCalls(rec.calls, []string{"root", "toolbar"}) {
		t.Fatalf("expected root and toolbar notification, got %v", rec.calls)
	}
	mustCheck(t, e)

	if n := e.CreateChild(nil); n.ID <= 4 {
		t.Fatalf("expected new id beyond loaded ids, got %d", n.ID)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	e := newTestEngine(WithStore(mem))
	top := e.Roots()[0]
	e.SetLabel(top, "root")
	c1 := e.CreateChild(top)
	e.SetLabel(c1, "first")
	c2 := e.CreateChild(top)
	e.SetLabel(c2, "second")
	e.CreateChild(c2)
	e.SetCollapsed(c2, true)
	e.SetActive(c1)

	toolbar := 0
	e.OnToolbarChange(func() { toolbar++ })
	if err := e.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.CanSave() {
		t.Fatalf("expected dirty flag cleared after save")
	}
	if toolbar != 1 {
		t.Fatalf("expected toolbar refresh after save, got %d", toolbar)
	}

	other := newTestEngine(WithStore(mem))
	other.Load(context.Background())
	if !reflect.DeepEqual(other.Snapshot(), e.Snapshot()) {
		t.Fatalf("expected loaded outline to equal saved outline")
	}
	if other.Active() == nil || other.Active().ID != c1.ID {
		t.Fatalf("expected active node restored")
	}
	mustCheck(t, other)
}

func TestSaveFailureKeepsDirtyFlag(t *testing.T) {
	e := newTestEngine(WithStore(failingStore{Store: store.NewMemory(), putErr: errors.New("read-only")}))
	e.CreateChild(nil)
	err := e.Save(context.Background())
	if err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if !e.CanSave() {
		t.Fatalf("expected dirty flag kept after failed save")
	}
}

func TestRestoreRejectsInvalidOutline(t *testing.T) {
	e := newTestEngine()
	before := e.Roots()[0]
	err := e.Restore([]*Node{{ID: 5}, {ID: 5}})
	var dup *DuplicateIDError
	if !errors.As(err, &dup) || dup.ID != 5 {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
	if e.Roots()[0] != before {
		t.Fatalf("expected engine untouched after rejected restore")
	}
	if err := e.Restore(nil); !errors.Is(err, ErrEmptyOutline) {
		t.Fatalf("expected empty outline error, got %v", err)
	}
}

func TestEncodeWritesExpectedFields(t *testing.T) {
	data, err := Encode([]*Node{{ID: 7, Label: "x", Children: []*Node{}}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":7,"label":"x","active":false,"collapsed":false,"children":[]}]`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
	if data, _ := Encode(nil); string(data) != "[]" {
		t.Fatalf("expected empty array for nil input, got %s", data)
	}
}

func TestExportMarkdown(t *testing.T) {
	e := newTestEngine()
	top := e.Roots()[0]
	e.SetLabel(top, "Plan")
	child := e.CreateChild(top)
	e.SetLabel(child, "step\none")
	e.SetCollapsed(top, true)
	var b strings.Builder
	if err := e.ExportMarkdown(&b); err != nil {
		t.Fatalf("export: %v", err)
	}
	want := "- Plan\n  - step one\n"
	if b.String() != want {
		t.Fatalf("expected %q, got %q", want, b.String())
	}
}
