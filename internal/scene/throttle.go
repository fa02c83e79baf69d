package scene

import "time"

// ScrollThrottle coalesces scroll events so at most one update runs per
// frame. Request marks an update pending; Flush runs it on the next frame.
type ScrollThrottle struct {
	ticking bool
	update  func(elapsed time.Duration)
}

func NewScrollThrottle(update func(elapsed time.Duration)) *ScrollThrottle {
	return &ScrollThrottle{update: update}
}

// Request queues an update unless one is already pending.
func (t *ScrollThrottle) Request() bool {
	if t.ticking {
		return false
	}
	t.ticking = true
	return true
}

// Flush runs the pending update, if any.
func (t *ScrollThrottle) Flush(elapsed time.Duration) {
	if !t.ticking {
		return
	}
	t.update(elapsed)
	t.ticking = false
}
