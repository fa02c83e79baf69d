package scene

import (
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	SphereCount = 5
	DiskCount   = 3

	cameraDistance = 5.0
	cameraFOV      = 75.0
	cameraNear     = 0.1
	cameraFar      = 1000.0
)

var (
	torusColor = mustHex("#ff6b9d")
	diskColor  = mustHex("#ff8e53")
	white      = colorful.Color{R: 1, G: 1, B: 1}
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Build populates a scene for target: one torus, SphereCount orbiting spheres,
// DiskCount floating disks, three lights and a camera at z=5. Random
// parameters are drawn from rng so a seed reproduces the scene.
func Build(target Target, rng *rand.Rand) (*Scene, error) {
	if target == nil {
		return nil, ErrNoRenderTarget
	}
	w, h := target.Size()
	if w <= 0 || h <= 0 {
		return nil, ErrNoRenderTarget
	}

	s := &Scene{
		Objects: make([]*AnimatedObject, 0, 1+SphereCount+DiskCount),
		Camera: Camera{
			Position: r3.Vec{Z: cameraDistance},
			Up:       r3.Vec{Y: 1},
			FOV:      cameraFOV,
			Near:     cameraNear,
			Far:      cameraFar,
		},
		Damping:      DefaultDamping,
		PointerScale: DefaultPointerScale,
	}
	s.Resize(w, h)
	// Pointer starts centered so the first frames carry no offset.
	s.pointer = Pointer{X: s.halfW, Y: s.halfH}

	s.Objects = append(s.Objects, &AnimatedObject{
		Shape: Shape{Kind: KindTorus, Radius: 1.2, Tube: 0.3, Color: torusColor, Opacity: 0.8},
		Speed: 0.01,
		Axis:  AxisY,
	})

	for i := 0; i < SphereCount; i++ {
		color := colorful.Hsl(rng.Float64()*360, 0.7, 0.7)
		pos := r3.Vec{
			X: (rng.Float64() - 0.5) * 4,
			Y: (rng.Float64() - 0.5) * 4,
			Z: (rng.Float64() - 0.5) * 2,
		}
		speed := 0.005 + rng.Float64()*0.01
		axis := AxisZ
		if rng.Float64() > 0.5 {
			axis = AxisX
		}
		orbit := &Orbit{
			Radius: 2 + rng.Float64()*2,
			Speed:  0.01 + rng.Float64()*0.01,
		}
		s.Objects = append(s.Objects, &AnimatedObject{
			Shape:     Shape{Kind: KindSphere, Radius: 0.1, Color: color, Opacity: 0.6},
			Transform: Transform{Position: pos},
			Speed:     speed,
			Axis:      axis,
			Orbit:     orbit,
		})
	}

	for i := 0; i < DiskCount; i++ {
		pos := r3.Vec{
			X: (rng.Float64() - 0.5) * 3,
			Y: (rng.Float64() - 0.5) * 3,
			Z: (rng.Float64() - 0.5) * 1,
		}
		s.Objects = append(s.Objects, &AnimatedObject{
			Shape:     Shape{Kind: KindDisk, Radius: 0.15, Height: 0.05, Color: diskColor, Opacity: 0.7},
			Transform: Transform{Position: pos},
			Speed:     0.008,
			Axis:      AxisY,
			Float:     &Float{Range: 0.3, Speed: 0.02},
		})
	}

	s.Lights = []Light{
		{Kind: LightAmbient, Color: white, Intensity: 0.6},
		{Kind: LightDirectional, Color: white, Intensity: 0.8, Position: r3.Vec{X: 5, Y: 5, Z: 5}},
		{Kind: LightPoint, Color: torusColor, Intensity: 1, Position: r3.Vec{X: -5, Y: -5, Z: 2}, Distance: 10},
	}

	return s, nil
}
