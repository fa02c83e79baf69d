package metrics

import (
	"math"
	"time"

	"github.com/san-kum/heroscene/internal/scene"
)

// Sample is one frame of a trace.
type Sample struct {
	Frame      int
	Elapsed    time.Duration
	CameraX    float64
	CameraY    float64
	TargetX    float64
	TargetY    float64
	OrbitDrift float64
	Spin       float64
}

// Trace records a Sample per frame. With a positive capacity it keeps only
// the most recent samples.
type Trace struct {
	capacity int
	samples  []Sample
}

func NewTrace(capacity int) *Trace {
	return &Trace{capacity: capacity}
}

func (t *Trace) OnFrame(s *scene.Scene, elapsed time.Duration) {
	target := s.CameraTarget()
	spin := 0.0
	if len(s.Objects) > 0 {
		spin = s.Objects[0].Rotation.Y
	}
	t.samples = append(t.samples, Sample{
		Frame:      s.Frames(),
		Elapsed:    elapsed,
		CameraX:    s.Camera.Position.X,
		CameraY:    s.Camera.Position.Y,
		TargetX:    target.X,
		TargetY:    target.Y,
		OrbitDrift: orbitDrift(s),
		Spin:       spin,
	})
	if t.capacity > 0 && len(t.samples) > t.capacity {
		t.samples = t.samples[len(t.samples)-t.capacity:]
	}
}

func (t *Trace) Samples() []Sample { return t.samples }

func (t *Trace) Len() int { return len(t.samples) }

// CameraError returns the per-frame camera distance to its target.
func (t *Trace) CameraError() []float64 {
	out := make([]float64, len(t.samples))
	for i, s := range t.samples {
		out[i] = math.Hypot(s.TargetX-s.CameraX, s.TargetY-s.CameraY)
	}
	return out
}
