package events

import "github.com/atomicstack/mindmap-tui/internal/logging"

type TreeTracer struct{}

type RefuseReason string

const (
	RefuseLastRoot  RefuseReason = "last-root"
	RefuseNotFound  RefuseReason = "not-found"
	RefuseNoTarget  RefuseReason = "no-target"
	RefuseNoActive  RefuseReason = "no-active"
	RefuseForbidden RefuseReason = "forbidden"
)

var Tree = TreeTracer{}

func (TreeTracer) Create(id, parent int64) {
	logging.Trace("tree.create", map[string]interface{}{"id": id, "parent": parent})
}

func (TreeTracer) Remove(id, focus int64) {
	logging.Trace("tree.remove", map[string]interface{}{"id": id, "focus": focus})
}

func (TreeTracer) Refuse(op string, id int64, reason RefuseReason) {
	logging.Trace("tree.refuse", map[string]interface{}{"op": op, "id": id, "reason": string(reason)})
}

func (TreeTracer) Label(id int64, label string) {
	logging.Trace("tree.label", map[string]interface{}{"id": id, "label": label})
}

func (TreeTracer) Collapse(id int64, collapsed bool) {
	logging.Trace("tree.collapse", map[string]interface{}{"id": id, "collapsed": collapsed})
}

func (TreeTracer) CollapseChildren(id int64, collapsed bool, changed int) {
	logging.Trace("tree.collapse.children", map[string]interface{}{"id": id, "collapsed": collapsed, "changed": changed})
}

func (TreeTracer) Activate(previous, next int64) {
	logging.Trace("tree.activate", map[string]interface{}{"previous": previous, "next": next})
}

func (TreeTracer) Move(direction string, from, to int64) {
	logging.Trace("tree.move", map[string]interface{}{"direction": direction, "from": from, "to": to})
}

func (TreeTracer) Reset(id int64) {
	logging.Trace("tree.reset", map[string]interface{}{"id": id})
}

func (TreeTracer) Load(key string, nodes int, active int64) {
	logging.Trace("tree.load", map[string]interface{}{"key": key, "nodes": nodes, "active": active})
}

func (TreeTracer) LoadFallback(key, reason string) {
	logging.Trace("tree.load.fallback", map[string]interface{}{"key": key, "reason": reason})
}

func (TreeTracer) Save(key string, bytes int) {
	logging.Trace("tree.save", map[string]interface{}{"key": key, "bytes": bytes})
}
