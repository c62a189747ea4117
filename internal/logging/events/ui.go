package events

import "github.com/atomicstack/mindmap-tui/internal/logging"

type UITracer struct{}

type EditTracer struct{}

type SearchTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type editReason string

const (
	EditReasonEscape    editReason = "escape"
	EditReasonUnchanged editReason = "unchanged"
)

var (
	UI      = UITracer{}
	Edit    = EditTracer{}
	Search  = SearchTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key string, active int64) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "active": active})
}

func (UITracer) Cursor(row int, id int64) {
	logging.Trace("ui.cursor", map[string]interface{}{"row": row, "id": id})
}

func (UITracer) Rebuild(rows int) {
	logging.Trace("ui.rebuild", map[string]interface{}{"rows": rows})
}

func (EditTracer) Start(id int64, label string) {
	logging.Trace("edit.start", map[string]interface{}{"id": id, "label": label})
}

func (EditTracer) Submit(id int64, label string) {
	logging.Trace("edit.submit", map[string]interface{}{"id": id, "label": label})
}

func (EditTracer) Cancel(id int64, reason editReason) {
	logging.Trace("edit.cancel", map[string]interface{}{"id": id, "reason": string(reason)})
}

func (SearchTracer) Query(query string, matches int) {
	logging.Trace("search.query", map[string]interface{}{"query": query, "matches": matches})
}

func (SearchTracer) Jump(query string, id int64) {
	logging.Trace("search.jump", map[string]interface{}{"query": query, "id": id})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
