package viz

import (
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/heroscene/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Project converts world coordinates to sub-pixel coordinates on a sw x sh
// surface. Returns x, y, view depth, and whether the point is in front of
// the near plane.
func Project(cam *scene.Camera, p r3.Vec, sw, sh int) (int, int, float64, bool) {
	right, up, forward := cam.Basis()
	rel := r3.Sub(p, cam.Position)
	depth := r3.Dot(rel, forward)
	if depth <= cam.Near {
		return 0, 0, depth, false
	}

	f := 1 / math.Tan(cam.FOV*math.Pi/360)
	aspect := cam.Aspect
	if aspect <= 0 {
		aspect = float64(sw) / float64(sh)
	}
	nx := r3.Dot(rel, right) * f / (aspect * depth)
	ny := r3.Dot(rel, up) * f / depth

	sx := int(math.Round((nx + 1) / 2 * float64(sw)))
	sy := int(math.Round((1 - ny) / 2 * float64(sh)))
	return sx, sy, depth, true
}

// Rotate applies Euler angles in XYZ order: z first, then y, then x.
func Rotate(p, euler r3.Vec) r3.Vec {
	cz, sz := math.Cos(euler.Z), math.Sin(euler.Z)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	cy, sy := math.Cos(euler.Y), math.Sin(euler.Y)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(euler.X), math.Sin(euler.X)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

type Edge struct {
	Start, End r3.Vec
}

// Wireframe is a shape outline in object space.
type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe           { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e r3.Vec) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Len() int            { return len(w.Edges) }

func (w *Wireframe) addLoop(pts []r3.Vec) {
	for i := range pts {
		w.AddEdge(pts[i], pts[(i+1)%len(pts)])
	}
}

// circle returns n points of a circle of radius r around c, in the plane
// spanned by u and v.
func circle(c, u, v r3.Vec, r float64, n int) []r3.Vec {
	pts := make([]r3.Vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = r3.Add(c, r3.Add(r3.Scale(r*math.Cos(a), u), r3.Scale(r*math.Sin(a), v)))
	}
	return pts
}

var (
	unitX = r3.Vec{X: 1}
	unitY = r3.Vec{Y: 1}
	unitZ = r3.Vec{Z: 1}
)

// CreateTorusWireframe outlines a torus lying in the XY plane.
func CreateTorusWireframe(radius, tube float64) *Wireframe {
	w := NewWireframe()
	for _, r := range []float64{radius - tube, radius, radius + tube} {
		w.addLoop(circle(r3.Vec{}, unitX, unitY, r, 32))
	}
	for i := 0; i < 8; i++ {
		a := 2 * math.Pi * float64(i) / 8
		dir := r3.Vec{X: math.Cos(a), Y: math.Sin(a)}
		w.addLoop(circle(r3.Scale(radius, dir), dir, unitZ, tube, 8))
	}
	return w
}

// CreateSphereWireframe outlines a sphere with three great circles.
func CreateSphereWireframe(radius float64) *Wireframe {
	w := NewWireframe()
	w.addLoop(circle(r3.Vec{}, unitX, unitY, radius, 8))
	w.addLoop(circle(r3.Vec{}, unitX, unitZ, radius, 8))
	w.addLoop(circle(r3.Vec{}, unitY, unitZ, radius, 8))
	return w
}

// CreateDiskWireframe outlines a short cylinder standing on the Y axis.
func CreateDiskWireframe(radius, height float64) *Wireframe {
	w := NewWireframe()
	top := circle(r3.Vec{Y: height / 2}, unitX, unitZ, radius, 12)
	bottom := circle(r3.Vec{Y: -height / 2}, unitX, unitZ, radius, 12)
	w.addLoop(top)
	w.addLoop(bottom)
	for i := 0; i < len(top); i += 3 {
		w.AddEdge(top[i], bottom[i])
	}
	return w
}

// ShapeWireframe returns the outline for a scene shape.
func ShapeWireframe(s scene.Shape) *Wireframe {
	switch s.Kind {
	case scene.KindTorus:
		return CreateTorusWireframe(s.Radius, s.Tube)
	case scene.KindDisk:
		return CreateDiskWireframe(s.Radius, s.Height)
	default:
		return CreateSphereWireframe(s.Radius)
	}
}

// SceneRenderer draws a scene onto a canvas with a painter's algorithm over
// objects, tinting each by the scene lights.
type SceneRenderer struct {
	Canvas *Canvas
	frames WireframeCache
}

func NewSceneRenderer(c *Canvas) *SceneRenderer {
	return &SceneRenderer{Canvas: c, frames: make(WireframeCache)}
}

type drawItem struct {
	obj   *scene.AnimatedObject
	depth float64
}

func (r *SceneRenderer) Render(s *scene.Scene) {
	if r == nil || r.Canvas == nil || s == nil {
		return
	}
	c := r.Canvas
	c.Clear()
	sw, sh := c.PixelSize()
	cam := &s.Camera
	_, _, forward := cam.Basis()

	items := make([]drawItem, 0, len(s.Objects))
	for _, o := range s.Objects {
		depth := r3.Dot(r3.Sub(o.Position, cam.Position), forward)
		items = append(items, drawItem{o, depth})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].depth > items[j].depth })

	for _, it := range items {
		o := it.obj
		c.SetPen(ShadeColor(s, o))
		for _, e := range r.frames.Get(o.Shape).Edges {
			a := r3.Add(Rotate(e.Start, o.Rotation), o.Position)
			b := r3.Add(Rotate(e.End, o.Rotation), o.Position)
			x1, y1, _, v1 := Project(cam, a, sw, sh)
			x2, y2, _, v2 := Project(cam, b, sw, sh)
			if !v1 || !v2 {
				continue
			}
			if x1 == x2 && y1 == y2 {
				c.Set(x1, y1)
			} else {
				c.DrawLine(x1, y1, x2, y2)
			}
		}
	}
	c.SetPen("")
}

// WireframeCache builds each shape's outline once. Shapes never change
// after the scene is built.
type WireframeCache map[scene.Shape]*Wireframe

func (c WireframeCache) Get(s scene.Shape) *Wireframe {
	if w, ok := c[s]; ok {
		return w
	}
	w := ShapeWireframe(s)
	c[s] = w
	return w
}

// ShadeColor is the lit, opacity-blended color of o as seen from the camera.
func ShadeColor(s *scene.Scene, o *scene.AnimatedObject) lipgloss.Color {
	normal := r3.Sub(s.Camera.Position, o.Position)
	lit := s.Illuminate(o.Shape.Color, o.Position, normal)
	// Blend toward black by opacity; the hero sits on a dark background.
	lit.R *= o.Shape.Opacity
	lit.G *= o.Shape.Opacity
	lit.B *= o.Shape.Opacity
	return lipgloss.Color(lit.Clamped().Hex())
}
