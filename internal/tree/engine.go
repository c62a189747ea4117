// Package tree implements the outline engine: it owns the node tree, keeps a
// parent index for every nested node, tracks the single active node and
// applies structural mutations with their focus and collapse policies.
//
// The engine is single-threaded. Every operation runs to completion and
// notifies listeners synchronously, per-node listeners first and the toolbar
// listener last, so a toolbar consumer always observes the finished state.
package tree

import (
	"time"

	"github.com/atomicstack/mindmap-tui/internal/logging/events"
	"github.com/atomicstack/mindmap-tui/internal/store"
)

const (
	// DefaultKey is the store key the outline is persisted under.
	DefaultKey = "mindmap"
	// DefaultPlaceholder labels the node of a fresh outline.
	DefaultPlaceholder = "Press Space or double click to edit"
)

// Engine owns one outline.
type Engine struct {
	roots   []*Node
	parents map[int64]*Node
	active  *Node
	dirty   bool

	observers *registry

	store       store.Store
	key         string
	clock       func() time.Time
	placeholder string
	lastID      int64
}

// Option customises a new Engine.
type Option func(*Engine)

// WithStore sets the load/save boundary.
func WithStore(s store.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithKey overrides the key used for load and save.
func WithKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.key = key
		}
	}
}

// WithClock replaces the time source used to derive node ids.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithPlaceholder sets the label of the node created for a fresh outline.
func WithPlaceholder(label string) Option {
	return func(e *Engine) { e.placeholder = label }
}

// New returns an engine holding the initial outline.
func New(opts ...Option) *Engine {
	e := &Engine{
		parents:     make(map[int64]*Node),
		observers:   newRegistry(),
		key:         DefaultKey,
		clock:       time.Now,
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.initialState()
	return e
}

// Key returns the store key.
func (e *Engine) Key() string { return e.key }

// Placeholder returns the label of the single node a fresh or reset outline
// starts with. Nodes created later start with an empty label.
func (e *Engine) Placeholder() string { return e.placeholder }

// Reset discards the outline and installs the initial state: one top-level
// placeholder node, no active node and nothing to save.
func (e *Engine) Reset() {
	e.initialState()
	events.Tree.Reset(e.roots[0].ID)
	e.notifyRoot()
	e.notifyToolbar()
}

func (e *Engine) initialState() {
	e.roots = []*Node{newNode(e.nextID(), e.placeholder)}
	e.parents = make(map[int64]*Node)
	e.active = nil
	e.dirty = false
}

// nextID derives ids from the clock in milliseconds, bumped past the last
// issued id so ids stay unique when several nodes are created per tick.
func (e *Engine) nextID() int64 {
	id := e.clock().UnixMilli()
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id
	return id
}

func (e *Engine) markDirty() {
	e.dirty = true
}

// contains reports whether n is currently attached to the outline.
func (e *Engine) contains(n *Node) bool {
	if n == nil {
		return false
	}
	if parent, ok := e.parents[n.ID]; ok {
		idx := indexOfID(parent.Children, n.ID)
		return idx >= 0 && parent.Children[idx] == n
	}
	idx := indexOfID(e.roots, n.ID)
	return idx >= 0 && e.roots[idx] == n
}

// attached reports whether n is part of the outline and traces a refusal of
// op when it is not.
func (e *Engine) attached(op string, n *Node) bool {
	if e.contains(n) {
		return true
	}
	events.Tree.Refuse(op, idOf(n), events.RefuseNotFound)
	return false
}

// siblings returns the collection owning n: its parent's children or the
// top-level list.
func (e *Engine) siblings(n *Node) (parent *Node, nodes []*Node) {
	if p, ok := e.parents[n.ID]; ok {
		return p, p.Children
	}
	return nil, e.roots
}
