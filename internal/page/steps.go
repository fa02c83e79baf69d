package page

import "time"

// StepInterval is how long each process step stays active on its own.
const StepInterval = 3 * time.Second

// Steps cycles through a fixed list of process steps.
type Steps struct {
	Labels []string
	active int
	since  time.Duration
}

func NewSteps(labels ...string) *Steps {
	return &Steps{Labels: labels}
}

func (s *Steps) Active() int { return s.active }

func (s *Steps) IsActive(i int) bool { return i == s.active }

// Advance moves the clock forward and reports whether the active step
// changed. Manual selection does not reset the interval.
func (s *Steps) Advance(dt time.Duration) bool {
	if len(s.Labels) == 0 {
		return false
	}
	s.since += dt
	changed := false
	for s.since >= StepInterval {
		s.since -= StepInterval
		s.active = (s.active + 1) % len(s.Labels)
		changed = true
	}
	return changed
}

// Select activates step i. Out of range indices are ignored.
func (s *Steps) Select(i int) {
	if i < 0 || i >= len(s.Labels) {
		return
	}
	s.active = i
}

func (s *Steps) Restart() { s.active = 0 }
