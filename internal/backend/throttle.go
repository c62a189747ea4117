package backend

import "time"

// throttle keeps successive emits at least interval apart. It is owned by
// the watcher goroutine and never blocks; the caller re-arms its timer for
// the returned delay instead of sleeping.
type throttle struct {
	interval time.Duration
	last     time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// delay reports how long an emit due at now has to be held back.
func (t *throttle) delay(now time.Time) time.Duration {
	if t == nil || t.interval <= 0 || t.last.IsZero() {
		return 0
	}
	if wait := t.last.Add(t.interval).Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// mark records an emit at now.
func (t *throttle) mark(now time.Time) {
	if t == nil {
		return
	}
	t.last = now
}
