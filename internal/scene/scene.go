package scene

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultDamping is the fraction of the remaining distance the camera
	// covers each frame.
	DefaultDamping = 0.05

	// DefaultPointerScale converts pointer pixels from center into radians.
	DefaultPointerScale = 0.001

	floatStep  = 0.01
	nudgeFreq  = 0.001
	nudgeScale = 0.001
)

// Scene is the frame context: every object, light and the camera, plus the
// pointer and target extents the updater reads.
type Scene struct {
	Objects []*AnimatedObject
	Lights  []Light
	Camera  Camera

	Damping      float64
	PointerScale float64

	halfW, halfH float64
	pointer      Pointer
	frames       int
}

// Resize updates the camera aspect and the extents the pointer offset is
// measured from. Non-positive sizes are ignored.
func (s *Scene) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.Camera.Aspect = float64(w) / float64(h)
	s.halfW = float64(w) / 2
	s.halfH = float64(h) / 2
}

// Center returns the target center in pointer coordinates.
func (s *Scene) Center() Pointer { return Pointer{X: s.halfW, Y: s.halfH} }

// SetPointer records the latest pointer position.
func (s *Scene) SetPointer(x, y float64) { s.pointer = Pointer{X: x, Y: y} }

// Frames returns the number of updates applied so far.
func (s *Scene) Frames() int { return s.frames }

// PointerTarget converts the pointer position into the rotational offset
// applied to every object. A centered pointer yields (0, 0).
func (s *Scene) PointerTarget() (tx, ty float64) {
	return PointerOffset(s.pointer, s.halfW, s.halfH, s.PointerScale)
}

// PointerOffset scales the distance of p from (halfW, halfH).
func PointerOffset(p Pointer, halfW, halfH, scale float64) (float64, float64) {
	return (p.X - halfW) * scale, (p.Y - halfH) * scale
}

// CameraTarget is the point the camera eases toward for the current pointer.
func (s *Scene) CameraTarget() r3.Vec {
	tx, ty := s.PointerTarget()
	return r3.Vec{X: tx, Y: -ty, Z: s.Camera.Position.Z}
}

// Update advances the scene to elapsed time since it started.
func (s *Scene) Update(elapsed time.Duration) {
	ms := millis(elapsed)
	tx, ty := s.PointerTarget()

	for i, o := range s.Objects {
		o.Rotation = o.Axis.add(o.Rotation, o.Speed)

		if o.Orbit != nil {
			o.Position.X, o.Position.Z = OrbitPosition(o.Orbit, ms, i)
		}
		if o.Float != nil {
			o.Position.Y += FloatOffset(o.Float, ms, i)
		}

		o.Rotation.Y += tx
		o.Rotation.X += ty
	}

	s.Camera.Position.X += (tx - s.Camera.Position.X) * s.Damping
	s.Camera.Position.Y += (-ty - s.Camera.Position.Y) * s.Damping
	s.Camera.LookAt(r3.Vec{})
	s.frames++
}

// Nudge applies the scroll-driven drift to every object.
func (s *Scene) Nudge(elapsed time.Duration) {
	ms := millis(elapsed)
	for i, o := range s.Objects {
		o.Position.Y += math.Sin(ms*nudgeFreq+float64(i)) * nudgeScale
	}
}

// OrbitPosition returns the x and z coordinates of object index at ms.
func OrbitPosition(o *Orbit, ms float64, index int) (x, z float64) {
	phase := ms*o.Speed + float64(index)
	return math.Cos(phase) * o.Radius, math.Sin(phase) * o.Radius
}

// FloatOffset returns the vertical step for object index at ms.
func FloatOffset(f *Float, ms float64, index int) float64 {
	return math.Sin(ms*f.Speed+float64(index)) * f.Range * floatStep
}

// Validate returns a FrameError for the first object with a non-finite
// transform, or for a non-finite camera.
func (s *Scene) Validate() error {
	for i, o := range s.Objects {
		if !o.Finite() {
			return &FrameError{Frame: s.frames, Object: i, Wrapped: ErrNonFinite}
		}
	}
	if !finiteVec(s.Camera.Position) {
		return &FrameError{Frame: s.frames, Object: -1, Wrapped: ErrNonFinite}
	}
	return nil
}

// Illuminate tints base by every light reaching point p with surface normal n.
func (s *Scene) Illuminate(base colorful.Color, p, n r3.Vec) colorful.Color {
	if r3.Norm(n) == 0 {
		n = r3.Vec{Z: 1}
	}
	n = r3.Unit(n)
	var acc colorful.Color
	for _, l := range s.Lights {
		k := 0.0
		switch l.Kind {
		case LightAmbient:
			k = l.Intensity
		case LightDirectional:
			k = l.Intensity * math.Max(0, r3.Dot(n, r3.Unit(l.Position)))
		case LightPoint:
			d := r3.Sub(l.Position, p)
			dist := r3.Norm(d)
			if dist == 0 || (l.Distance > 0 && dist >= l.Distance) {
				continue
			}
			k = l.Intensity * math.Max(0, r3.Dot(n, r3.Scale(1/dist, d)))
			if l.Distance > 0 {
				k *= 1 - dist/l.Distance
			}
		}
		acc.R += l.Color.R * k
		acc.G += l.Color.G * k
		acc.B += l.Color.B * k
	}
	return colorful.Color{R: base.R * acc.R, G: base.G * acc.G, B: base.B * acc.B}.Clamped()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
