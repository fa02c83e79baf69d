package scene

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// Axis selects the rotation component an object spins around.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Component returns the value of v along the axis.
func (a Axis) Component(v r3.Vec) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisZ:
		return v.Z
	default:
		return v.Y
	}
}

func (a Axis) add(v r3.Vec, d float64) r3.Vec {
	switch a {
	case AxisX:
		v.X += d
	case AxisZ:
		v.Z += d
	default:
		v.Y += d
	}
	return v
}

type Kind int

const (
	KindTorus Kind = iota
	KindSphere
	KindDisk
)

func (k Kind) String() string {
	switch k {
	case KindTorus:
		return "torus"
	case KindSphere:
		return "sphere"
	case KindDisk:
		return "disk"
	}
	return "unknown"
}

// Shape is the visual handle of an object. Radius is the major radius for a
// torus; Tube its minor radius. Height only applies to disks.
type Shape struct {
	Kind    Kind
	Radius  float64
	Tube    float64
	Height  float64
	Color   colorful.Color
	Opacity float64
}

// Orbit moves an object on a circle of Radius in the XZ plane.
type Orbit struct {
	Radius float64
	Speed  float64
}

// Float bobs an object vertically.
type Float struct {
	Range float64
	Speed float64
}

type Transform struct {
	Position r3.Vec
	Rotation r3.Vec
}

// AnimatedObject is a shape plus the parameters that animate it each frame.
type AnimatedObject struct {
	Shape Shape
	Transform
	Speed float64
	Axis  Axis
	Orbit *Orbit
	Float *Float
}

// Finite reports whether every transform component is a real number.
func (o *AnimatedObject) Finite() bool {
	return finiteVec(o.Position) && finiteVec(o.Rotation)
}

func finiteVec(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

// Light is a scene light source. Distance is the point light cut-off; zero
// means unbounded.
type Light struct {
	Kind      LightKind
	Color     colorful.Color
	Intensity float64
	Position  r3.Vec
	Distance  float64
}

// Camera is a perspective camera. FOV is in degrees.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
}

// LookAt aims the camera at p.
func (c *Camera) LookAt(p r3.Vec) { c.Target = p }

// Basis returns the camera's right, up and forward unit vectors.
func (c *Camera) Basis() (right, up, forward r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position))
	right = r3.Unit(r3.Cross(forward, c.Up))
	up = r3.Cross(right, forward)
	return right, up, forward
}

// Target is anything a scene can be drawn into.
type Target interface {
	Size() (w, h int)
}

// Viewport is a plain Target of fixed size.
type Viewport struct {
	W, H int
}

func (v Viewport) Size() (int, int) { return v.W, v.H }

// Pointer is the latest pointer position in target coordinates.
type Pointer struct {
	X, Y float64
}

// Renderer draws a scene. Hosts supply one per output surface.
type Renderer interface {
	Render(s *Scene)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(s *Scene)

func (f RendererFunc) Render(s *Scene) { f(s) }
