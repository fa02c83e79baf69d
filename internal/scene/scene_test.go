package scene

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

type fixedClock time.Duration

func (c fixedClock) Elapsed() time.Duration { return time.Duration(c) }

func newScene(seed int64) *Scene {
	s, err := Build(Viewport{W: 800, H: 600}, rand.New(rand.NewSource(seed)))
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Build", func() {
	It("rejects a missing render target", func() {
		_, err := Build(nil, rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(ErrNoRenderTarget))
	})

	It("rejects a render target with no area", func() {
		_, err := Build(Viewport{W: 0, H: 600}, rand.New(rand.NewSource(1)))
		Expect(errors.Is(err, ErrNoRenderTarget)).To(BeTrue())
	})

	It("creates the fixed population", func() {
		s := newScene(7)
		Expect(s.Objects).To(HaveLen(1 + SphereCount + DiskCount))
		Expect(s.Lights).To(HaveLen(3))

		var torus, spheres, disks int
		for _, o := range s.Objects {
			switch o.Shape.Kind {
			case KindTorus:
				torus++
				Expect(o.Orbit).To(BeNil())
				Expect(o.Float).To(BeNil())
				Expect(o.Axis).To(Equal(AxisY))
			case KindSphere:
				spheres++
				Expect(o.Orbit).NotTo(BeNil())
				Expect(o.Orbit.Radius).To(BeNumerically(">=", 2))
				Expect(o.Orbit.Radius).To(BeNumerically("<", 4))
				Expect(o.Axis).To(Or(Equal(AxisX), Equal(AxisZ)))
			case KindDisk:
				disks++
				Expect(o.Float).To(Equal(&Float{Range: 0.3, Speed: 0.02}))
			}
		}
		Expect([]int{torus, spheres, disks}).To(Equal([]int{1, SphereCount, DiskCount}))
	})

	It("places the camera at z=5 with the target aspect", func() {
		s := newScene(1)
		Expect(s.Camera.Position).To(Equal(r3.Vec{Z: 5}))
		Expect(s.Camera.Aspect).To(BeNumerically("~", 800.0/600.0, tol))
		Expect(s.Camera.FOV).To(Equal(75.0))
	})

	It("is reproducible for a seed", func() {
		a, b := newScene(42), newScene(42)
		for i := range a.Objects {
			Expect(a.Objects[i].Position).To(Equal(b.Objects[i].Position))
			Expect(a.Objects[i].Speed).To(Equal(b.Objects[i].Speed))
			Expect(a.Objects[i].Shape.Color).To(Equal(b.Objects[i].Shape.Color))
		}
	})
})

var _ = Describe("Update", func() {
	var s *Scene

	BeforeEach(func() {
		s = newScene(3)
	})

	It("keeps rotations finite and non-decreasing without pointer input", func() {
		prev := make([]float64, len(s.Objects))
		for frame := 1; frame <= 500; frame++ {
			s.Update(time.Duration(frame) * 16 * time.Millisecond)
			for i, o := range s.Objects {
				Expect(o.Finite()).To(BeTrue())
				cur := o.Axis.Component(o.Rotation)
				Expect(cur).To(BeNumerically(">=", prev[i]))
				prev[i] = cur
			}
		}
		Expect(s.Frames()).To(Equal(500))
	})

	It("keeps orbiting objects on their circle", func() {
		for _, elapsed := range []time.Duration{0, time.Millisecond, 1234 * time.Millisecond, time.Hour} {
			s.Update(elapsed)
			for _, o := range s.Objects {
				if o.Orbit == nil {
					continue
				}
				r2 := o.Position.X*o.Position.X + o.Position.Z*o.Position.Z
				Expect(r2).To(BeNumerically("~", o.Orbit.Radius*o.Orbit.Radius, 1e-6))
			}
		}
	})

	It("moves floating objects by the sinusoidal step", func() {
		disk := len(s.Objects) - 1
		o := s.Objects[disk]
		y0 := o.Position.Y
		s.Update(500 * time.Millisecond)
		Expect(o.Position.Y - y0).To(BeNumerically("~", math.Sin(500*0.02+float64(disk))*0.3*0.01, tol))
	})

	It("converges the camera geometrically toward the pointer target", func() {
		c := s.Center()
		s.SetPointer(c.X+100, c.Y+50)
		tx, ty := s.PointerTarget()
		Expect(tx).To(BeNumerically("~", 0.1, tol))
		Expect(ty).To(BeNumerically("~", 0.05, tol))

		for n := 1; n <= 60; n++ {
			s.Update(time.Duration(n) * time.Millisecond)
			want := math.Pow(1-DefaultDamping, float64(n))
			Expect(tx - s.Camera.Position.X).To(BeNumerically("~", tx*want, tol))
			Expect(-ty - s.Camera.Position.Y).To(BeNumerically("~", -ty*want, tol))
		}
		Expect(s.Camera.Target).To(Equal(r3.Vec{}))
	})

	It("applies the pointer offset to every object", func() {
		c := s.Center()
		s.SetPointer(c.X+10, c.Y-20)
		before := make([]r3.Vec, len(s.Objects))
		for i, o := range s.Objects {
			before[i] = o.Rotation
		}
		s.Update(0)
		for i, o := range s.Objects {
			d := r3.Sub(o.Rotation, before[i])
			base := o.Speed
			switch o.Axis {
			case AxisX:
				Expect(d.X).To(BeNumerically("~", base-0.02, tol))
				Expect(d.Y).To(BeNumerically("~", 0.01, tol))
			case AxisY:
				Expect(d.Y).To(BeNumerically("~", base+0.01, tol))
				Expect(d.X).To(BeNumerically("~", -0.02, tol))
			case AxisZ:
				Expect(d.Z).To(BeNumerically("~", base, tol))
				Expect(d.Y).To(BeNumerically("~", 0.01, tol))
			}
		}
	})

	It("tracks resizes", func() {
		s.Resize(1000, 500)
		Expect(s.Center()).To(Equal(Pointer{X: 500, Y: 250}))
		Expect(s.Camera.Aspect).To(BeNumerically("~", 2, tol))
		s.Resize(0, 0)
		Expect(s.Camera.Aspect).To(BeNumerically("~", 2, tol))
	})

	It("flags non-finite transforms", func() {
		s.Objects[2].Position.Y = math.NaN()
		err := s.Validate()
		var fe *FrameError
		Expect(errors.As(err, &fe)).To(BeTrue())
		Expect(fe.Object).To(Equal(2))
		Expect(errors.Is(err, ErrNonFinite)).To(BeTrue())
	})
})

var _ = Describe("Motion helpers", func() {
	It("returns zero offset at the center", func() {
		tx, ty := PointerOffset(Pointer{X: 400, Y: 300}, 400, 300, DefaultPointerScale)
		Expect(tx).To(BeZero())
		Expect(ty).To(BeZero())
	})

	It("is deterministic for a fixed time and index", func() {
		o := &Orbit{Radius: 3, Speed: 0.015}
		x1, z1 := OrbitPosition(o, 98765, 4)
		x2, z2 := OrbitPosition(o, 98765, 4)
		Expect(x1).To(Equal(x2))
		Expect(z1).To(Equal(z2))
		Expect(x1).To(BeNumerically("~", math.Cos(98765*0.015+4)*3, tol))

		f := &Float{Range: 0.3, Speed: 0.02}
		Expect(FloatOffset(f, 250, 7)).To(Equal(FloatOffset(f, 250, 7)))
	})
})

var _ = Describe("Illuminate", func() {
	It("lights surfaces facing the directional light more", func() {
		s := newScene(1)
		toward := s.Illuminate(white, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
		away := s.Illuminate(white, r3.Vec{}, r3.Vec{X: -1, Y: -1, Z: -1})
		Expect(toward.R).To(BeNumerically(">", away.R))
		Expect(away.G).To(BeNumerically(">=", 0.6-tol))
	})

	It("tolerates a zero normal", func() {
		s := newScene(1)
		c := s.Illuminate(white, r3.Vec{}, r3.Vec{})
		Expect(math.IsNaN(c.R)).To(BeFalse())
	})
})

var _ = Describe("Loop", func() {
	var (
		s        *Scene
		rendered int
		loop     *Loop
	)

	BeforeEach(func() {
		s = newScene(5)
		rendered = 0
		loop = NewLoop(s, RendererFunc(func(*Scene) { rendered++ }), NewWallClock())
	})

	It("renders once per tick", func() {
		loop.Tick()
		loop.Tick()
		Expect(rendered).To(Equal(2))
		Expect(s.Frames()).To(Equal(2))
	})

	It("coalesces scroll events into one nudge per frame", func() {
		at := 500 * time.Millisecond
		loop = NewLoop(s, nil, fixedClock(at))
		Expect(loop.Scroll()).To(BeTrue())
		Expect(loop.Scroll()).To(BeFalse())
		Expect(loop.Scroll()).To(BeFalse())

		// Spheres orbit in x and z only, so y moves by nudges alone.
		sphere := s.Objects[1]
		Expect(sphere.Shape.Kind).To(Equal(KindSphere))
		y0 := sphere.Position.Y
		loop.Tick()
		step := math.Sin(500*0.001+1) * 0.001
		Expect(step).To(BeNumerically(">", 1e-4))
		Expect(sphere.Position.Y - y0).To(BeNumerically("~", step, tol))

		loop.Tick()
		Expect(sphere.Position.Y - y0).To(BeNumerically("~", step, tol))
		Expect(loop.Scroll()).To(BeTrue())
	})

	It("rejects invalid run settings", func() {
		_, err := loop.Run(context.Background(), RunConfig{Frames: 0, FrameDuration: time.Millisecond})
		Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
		_, err = loop.Run(context.Background(), RunConfig{Frames: 10})
		Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
	})

	It("follows a scripted pointer", func() {
		c := s.Center()
		res, err := loop.Run(context.Background(), RunConfig{
			Frames:        120,
			FrameDuration: 16 * time.Millisecond,
			ValidateState: true,
			Pointer: func(int, time.Duration) Pointer {
				return Pointer{X: c.X + 200, Y: c.Y}
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(120))
		Expect(res.Elapsed).To(Equal(119 * 16 * time.Millisecond))
		Expect(s.Camera.Position.X).To(BeNumerically("~", 0.2*(1-math.Pow(0.95, 120)), tol))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := loop.Run(ctx, RunConfig{Frames: 10, FrameDuration: time.Millisecond})
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.Frames).To(BeZero())
	})
})
