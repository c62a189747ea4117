package dispatcher

import (
	"sort"
	"sync"

	"github.com/atomicstack/mindmap-tui/internal/backend"
	"github.com/atomicstack/mindmap-tui/internal/tree"
)

// Result summarises what changed since the last Drain.
type Result struct {
	RootChanged    bool
	ToolbarChanged bool
	StoreChanged   bool
	StoreErr       error
	Nodes          []int64
}

// Empty reports whether nothing changed.
func (r Result) Empty() bool {
	return !r.RootChanged && !r.ToolbarChanged && !r.StoreChanged && r.StoreErr == nil && len(r.Nodes) == 0
}

// Dispatcher collects engine notifications and watcher events into a single
// Result the UI consumes after each update.
type Dispatcher struct {
	engine *tree.Engine

	mu      sync.Mutex
	pending Result
	nodes   map[int64]struct{}
	tracked map[int64]func()
	cancels []func()
}

func New(engine *tree.Engine) *Dispatcher {
	d := &Dispatcher{
		engine:  engine,
		nodes:   make(map[int64]struct{}),
		tracked: make(map[int64]func()),
	}
	d.cancels = append(d.cancels,
		engine.OnRootChange(func() {
			d.mu.Lock()
			d.pending.RootChanged = true
			d.mu.Unlock()
		}),
		engine.OnToolbarChange(func() {
			d.mu.Lock()
			d.pending.ToolbarChanged = true
			d.mu.Unlock()
		}),
	)
	return d
}

// Track subscribes to the given node ids and drops subscriptions to ids no
// longer listed.
func (d *Dispatcher) Track(ids []int64) {
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, cancel := range d.tracked {
		if _, ok := want[id]; !ok {
			cancel()
			delete(d.tracked, id)
		}
	}
	for id := range want {
		if _, ok := d.tracked[id]; ok {
			continue
		}
		id := id
		d.tracked[id] = d.engine.Subscribe(id, func() {
			d.mu.Lock()
			d.nodes[id] = struct{}{}
			d.mu.Unlock()
		})
	}
}

// Tracked reports how many node ids are subscribed.
func (d *Dispatcher) Tracked() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tracked)
}

// Handle folds a watcher event into the pending result.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	if evt.Err != nil {
		d.pending.StoreErr = evt.Err
		return d.pending
	}
	d.pending.StoreChanged = true
	return d.pending
}

// Drain returns the accumulated result and resets it.
func (d *Dispatcher) Drain() Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	res := d.pending
	if len(d.nodes) > 0 {
		res.Nodes = make([]int64, 0, len(d.nodes))
		for id := range d.nodes {
			res.Nodes = append(res.Nodes, id)
		}
		sort.Slice(res.Nodes, func(i, j int) bool { return res.Nodes[i] < res.Nodes[j] })
		d.nodes = make(map[int64]struct{})
	}
	d.pending = Result{}
	return res
}

// Close cancels every subscription.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	cancels := d.cancels
	d.cancels = nil
	for id, cancel := range d.tracked {
		cancels = append(cancels, cancel)
		delete(d.tracked, id)
	}
	d.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}
