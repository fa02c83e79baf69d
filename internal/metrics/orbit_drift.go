package metrics

import (
	"math"
	"time"

	"github.com/san-kum/heroscene/internal/scene"
	"gonum.org/v1/gonum/floats"
)

// OrbitDrift is the largest deviation of an orbiting object from its radius.
type OrbitDrift struct {
	name    string
	samples []float64
}

func NewOrbitDrift() *OrbitDrift {
	return &OrbitDrift{name: "orbit_drift"}
}

func (o *OrbitDrift) Name() string { return o.name }

func (o *OrbitDrift) OnFrame(s *scene.Scene, _ time.Duration) {
	o.samples = append(o.samples, orbitDrift(s))
}

func (o *OrbitDrift) Value() float64 {
	if len(o.samples) == 0 {
		return 0
	}
	return floats.Max(o.samples)
}

func (o *OrbitDrift) Reset() { o.samples = o.samples[:0] }

func orbitDrift(s *scene.Scene) float64 {
	worst := 0.0
	for _, obj := range s.Objects {
		if obj.Orbit == nil {
			continue
		}
		r := math.Hypot(obj.Position.X, obj.Position.Z)
		worst = math.Max(worst, math.Abs(r-obj.Orbit.Radius))
	}
	return worst
}

// Default returns the metrics recorded for every run.
func Default() []scene.Metric {
	return []scene.Metric{NewStability(), NewCameraLag(), NewOrbitDrift()}
}
