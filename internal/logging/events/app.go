package events

import "github.com/atomicstack/mindmap-tui/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(dirty bool) {
	logging.Trace("app.stop", map[string]interface{}{"dirty": dirty})
}
