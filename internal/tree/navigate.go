package tree

import "github.com/atomicstack/mindmap-tui/internal/logging/events"

// Direction names a navigation move.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// CanMove reports whether n can move in direction d.
func (e *Engine) CanMove(n *Node, d Direction) bool {
	switch d {
	case Left:
		return e.CanMoveLeft(n)
	case Right:
		return e.CanMoveRight(n)
	case Up:
		return e.CanMoveUp(n)
	case Down:
		return e.CanMoveDown(n)
	}
	return false
}

// Target returns the node a move from n in direction d lands on: the
// parent, the middle child, the previous or the next sibling.
func (e *Engine) Target(n *Node, d Direction) *Node {
	switch d {
	case Left:
		return e.ParentOf(n)
	case Right:
		return e.MiddleChild(n)
	case Up:
		return e.UpNode(n)
	case Down:
		return e.DownNode(n)
	}
	return nil
}

// Move activates the neighbour of n in direction d. It reports whether the
// move happened.
func (e *Engine) Move(n *Node, d Direction) bool {
	if n != nil && !e.attached("move."+d.String(), n) {
		return false
	}
	if n == nil || !e.CanMove(n, d) {
		events.Tree.Refuse("move."+d.String(), idOf(n), events.RefuseForbidden)
		return false
	}
	target := e.Target(n, d)
	if target == nil {
		events.Tree.Refuse("move."+d.String(), n.ID, events.RefuseNoTarget)
		return false
	}
	e.activate(target)
	events.Tree.Move(d.String(), n.ID, target.ID)
	e.notifyToolbar()
	e.notifyNode(target.ID)
	return true
}

// MoveLeft, MoveRight, MoveUp and MoveDown are Move in a fixed direction.
func (e *Engine) MoveLeft(n *Node) bool  { return e.Move(n, Left) }
func (e *Engine) MoveRight(n *Node) bool { return e.Move(n, Right) }
func (e *Engine) MoveUp(n *Node) bool    { return e.Move(n, Up) }
func (e *Engine) MoveDown(n *Node) bool  { return e.Move(n, Down) }

// CanActivate mirrors CanMove against the active node.
func (e *Engine) CanActivate(d Direction) bool {
	return e.active != nil && e.CanMove(e.active, d)
}

// ActivateDirection moves from the active node in direction d.
func (e *Engine) ActivateDirection(d Direction) bool {
	if e.active == nil {
		events.Tree.Refuse("activate."+d.String(), 0, events.RefuseNoActive)
		return false
	}
	if !e.CanActivate(d) {
		events.Tree.Refuse("activate."+d.String(), e.active.ID, events.RefuseForbidden)
		return false
	}
	return e.Move(e.active, d)
}

// ActivateLeft, ActivateRight, ActivateUp and ActivateDown move from the
// active node in a fixed direction.
func (e *Engine) ActivateLeft() bool  { return e.ActivateDirection(Left) }
func (e *Engine) ActivateRight() bool { return e.ActivateDirection(Right) }
func (e *Engine) ActivateUp() bool    { return e.ActivateDirection(Up) }
func (e *Engine) ActivateDown() bool  { return e.ActivateDirection(Down) }
