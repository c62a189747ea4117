package events

import "github.com/atomicstack/mindmap-tui/internal/logging"

type StoreTracer struct{}

var Store = StoreTracer{}

func (StoreTracer) Open(kind, path string) {
	logging.Trace("store.open", map[string]interface{}{"kind": kind, "path": path})
}

func (StoreTracer) Get(kind, key string, found bool) {
	logging.Trace("store.get", map[string]interface{}{"kind": kind, "key": key, "found": found})
}

func (StoreTracer) Put(kind, key string, size int) {
	logging.Trace("store.put", map[string]interface{}{"kind": kind, "key": key, "size": size})
}

func (StoreTracer) Error(kind, op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("store.error", map[string]interface{}{"kind": kind, "op": op, "error": err.Error()})
}
