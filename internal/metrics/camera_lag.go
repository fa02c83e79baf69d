package metrics

import (
	"math"
	"time"

	"github.com/san-kum/heroscene/internal/scene"
	"gonum.org/v1/gonum/stat"
)

// CameraLag is the mean distance between the camera and its pointer target.
type CameraLag struct {
	name    string
	samples []float64
}

func NewCameraLag() *CameraLag {
	return &CameraLag{
		name: "camera_lag",
	}
}

func (c *CameraLag) Name() string {
	return c.name
}

func (c *CameraLag) OnFrame(s *scene.Scene, _ time.Duration) {
	c.samples = append(c.samples, cameraError(s))
}

func (c *CameraLag) Value() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return stat.Mean(c.samples, nil)
}

func (c *CameraLag) Reset() {
	c.samples = c.samples[:0]
}

func cameraError(s *scene.Scene) float64 {
	t := s.CameraTarget()
	return math.Hypot(t.X-s.Camera.Position.X, t.Y-s.Camera.Position.Y)
}
