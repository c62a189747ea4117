package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/mindmap-tui/internal/logging"
	"github.com/atomicstack/mindmap-tui/internal/logging/events"
	"github.com/atomicstack/mindmap-tui/internal/store"
)

// ErrNoStore is returned by Save when the engine has no store attached.
var ErrNoStore = errors.New("tree: no store configured")

// Save writes the outline to the store and clears the dirty flag. On
// failure the flag stays set so the user can retry.
func (e *Engine) Save(ctx context.Context) error {
	if e.store == nil {
		return ErrNoStore
	}
	data, err := Encode(e.roots)
	if err != nil {
		logging.Error(err)
		return err
	}
	if err := e.store.Put(ctx, e.key, data); err != nil {
		err = fmt.Errorf("save outline %q: %w", e.key, err)
		logging.Error(err)
		return err
	}
	e.dirty = false
	events.Tree.Save(e.key, len(data))
	e.notifyToolbar()
	return nil
}

// Load replaces the outline with the stored one. A missing, unreadable or
// malformed payload is never reported to the caller: the failure is logged
// and the engine falls back to the initial state.
func (e *Engine) Load(ctx context.Context) {
	if e.store == nil {
		events.Tree.LoadFallback(e.key, "no store")
		e.Reset()
		return
	}
	data, err := e.store.Get(ctx, e.key)
	if errors.Is(err, store.ErrNotFound) {
		events.Tree.LoadFallback(e.key, "absent")
		e.Reset()
		return
	}
	if err != nil {
		logging.Error(fmt.Errorf("load outline %q: %w", e.key, err))
		events.Tree.LoadFallback(e.key, err.Error())
		e.Reset()
		return
	}
	nodes, err := Decode(data)
	if err != nil {
		logging.Error(fmt.Errorf("load outline %q: %w", e.key, err))
		events.Tree.LoadFallback(e.key, err.Error())
		e.Reset()
		return
	}
	e.install(nodes)
}

// Restore replaces the outline with nodes after validating them. The engine
// is left untouched when validation fails. Restore takes ownership of nodes.
func (e *Engine) Restore(nodes []*Node) error {
	if err := validate(nodes); err != nil {
		return err
	}
	e.install(nodes)
	return nil
}

// install adopts validated nodes: the parent index is rebuilt depth-first
// and the last node flagged active in traversal order becomes the active
// node; the flag is cleared on every other node.
func (e *Engine) install(nodes []*Node) {
	e.roots = nodes
	e.rebuildIndex()
	e.active = nil
	e.Walk(func(n *Node, _ *Node, _ int) bool {
		if n.Active {
			if e.active != nil {
				e.active.Active = false
			}
			e.active = n
		}
		if n.ID > e.lastID {
			e.lastID = n.ID
		}
		return true
	})
	e.dirty = false
	events.Tree.Load(e.key, e.Len(), idOf(e.active))
	e.notifyRoot()
	e.notifyToolbar()
}
