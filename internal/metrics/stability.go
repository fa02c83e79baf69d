package metrics

import (
	"time"

	"github.com/san-kum/heroscene/internal/scene"
)

// Stability is the fraction of frames where every transform stayed finite.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{
		name: "stability",
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) OnFrame(sc *scene.Scene, _ time.Duration) {
	s.samples++
	if sc.Validate() != nil {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
