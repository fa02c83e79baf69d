package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/heroscene/internal/scene"
	"github.com/san-kum/heroscene/internal/viz"
	"gonum.org/v1/gonum/spatial/r3"
)

func toVec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// toColor converts a lit color with opacity to a raylib color.
func toColor(c colorful.Color, opacity float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	a := uint8(max(0, min(1, opacity)) * 255)
	return rl.NewColor(r, g, b, a)
}

func cameraFor(c *scene.Camera) rl.Camera3D {
	return rl.NewCamera3D(toVec3(c.Position), toVec3(c.Target), toVec3(c.Up), float32(c.FOV), rl.CameraPerspective)
}

// shade lights an object as seen from the camera.
func shade(s *scene.Scene, o *scene.AnimatedObject) rl.Color {
	normal := r3.Sub(s.Camera.Position, o.Position)
	return toColor(s.Illuminate(o.Shape.Color, o.Position, normal), o.Shape.Opacity)
}

func (a *App) drawObject(s *scene.Scene, o *scene.AnimatedObject) {
	col := shade(s, o)
	if o.Shape.Kind == scene.KindSphere {
		rl.DrawSphere(toVec3(o.Position), float32(o.Shape.Radius), col)
		return
	}
	for _, e := range a.frames.Get(o.Shape).Edges {
		a := r3.Add(viz.Rotate(e.Start, o.Rotation), o.Position)
		b := r3.Add(viz.Rotate(e.End, o.Rotation), o.Position)
		rl.DrawLine3D(toVec3(a), toVec3(b), col)
	}
}
