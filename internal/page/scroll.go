package page

import "time"

// ScrollDuration is how long an anchor jump takes.
const ScrollDuration = 500 * time.Millisecond

// SmoothScroll eases the page offset from one position to another. The
// zero value is idle.
type SmoothScroll struct {
	from, to float64
	elapsed  time.Duration
	active   bool
}

func (s *SmoothScroll) Start(from, to float64) {
	s.from, s.to = from, to
	s.elapsed = 0
	s.active = from != to
}

// Stop abandons the scroll where it is.
func (s *SmoothScroll) Stop() { s.active = false }

func (s *SmoothScroll) Active() bool { return s.active }

// Advance moves the scroll forward by dt and returns the new offset. ok is
// false when no scroll is running; the last step lands exactly on the target.
func (s *SmoothScroll) Advance(dt time.Duration) (offset float64, ok bool) {
	if !s.active {
		return 0, false
	}
	s.elapsed += dt
	t := min(1, float64(s.elapsed)/float64(ScrollDuration))
	if t >= 1 {
		s.active = false
		return s.to, true
	}
	return s.from + (s.to-s.from)*easeInOut(t), true
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}
