package tree

// Listener is invoked after the state it observes changed.
type Listener func()

type subscription struct {
	token uint64
	fn    Listener
}

// registry keeps listeners outside the nodes so the data model carries no
// presentation hooks. Notifying a key nobody listens on is a no-op.
type registry struct {
	next    uint64
	nodes   map[int64][]subscription
	root    []subscription
	toolbar []subscription
}

func newRegistry() *registry {
	return &registry{nodes: make(map[int64][]subscription)}
}

func (r *registry) add(list []subscription, fn Listener) ([]subscription, uint64) {
	r.next++
	return append(list, subscription{token: r.next, fn: fn}), r.next
}

func without(list []subscription, token uint64) []subscription {
	for i, sub := range list {
		if sub.token == token {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func fire(list []subscription) {
	if len(list) == 0 {
		return
	}
	// listeners may cancel themselves while being notified
	snapshot := append([]subscription(nil), list...)
	for _, sub := range snapshot {
		sub.fn()
	}
}

// Subscribe registers fn for changes to the node with the given id. The
// returned function cancels the subscription and is safe to call twice.
func (e *Engine) Subscribe(id int64, fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	var token uint64
	e.observers.nodes[id], token = e.observers.add(e.observers.nodes[id], fn)
	return func() {
		remaining := without(e.observers.nodes[id], token)
		if len(remaining) == 0 {
			delete(e.observers.nodes, id)
			return
		}
		e.observers.nodes[id] = remaining
	}
}

// OnRootChange registers fn for changes to the top-level node list.
func (e *Engine) OnRootChange(fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	var token uint64
	e.observers.root, token = e.observers.add(e.observers.root, fn)
	return func() { e.observers.root = without(e.observers.root, token) }
}

// OnToolbarChange registers fn for changes to the derived capability flags.
// It fires after nearly every operation, including some that change nothing.
func (e *Engine) OnToolbarChange(fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	var token uint64
	e.observers.toolbar, token = e.observers.add(e.observers.toolbar, fn)
	return func() { e.observers.toolbar = without(e.observers.toolbar, token) }
}

// Listeners reports how many per-node listeners are registered for id.
func (e *Engine) Listeners(id int64) int {
	return len(e.observers.nodes[id])
}

func (e *Engine) notifyNode(id int64) { fire(e.observers.nodes[id]) }
func (e *Engine) notifyRoot()         { fire(e.observers.root) }
func (e *Engine) notifyToolbar()      { fire(e.observers.toolbar) }

func (e *Engine) dropListeners(n *Node) {
	delete(e.observers.nodes, n.ID)
	for _, child := range n.Children {
		e.dropListeners(child)
	}
}
