package events

import (
	"time"

	"github.com/atomicstack/mindmap-tui/internal/logging"
)

type WatchTracer struct{}

var Watch = WatchTracer{}

func (WatchTracer) Start(path string) {
	logging.Trace("watch.start", map[string]interface{}{"path": path})
}

func (WatchTracer) Change(path, op string) {
	logging.Trace("watch.change", map[string]interface{}{"path": path, "op": op})
}

func (WatchTracer) Ignored(path string) {
	logging.Trace("watch.ignored", map[string]interface{}{"path": path})
}

func (WatchTracer) Held(path string, hold time.Duration) {
	logging.Trace("watch.held", map[string]interface{}{"path": path, "hold_ms": hold.Milliseconds()})
}

func (WatchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"error": err.Error()})
}
