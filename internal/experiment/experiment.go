package experiment

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/heroscene/internal/config"
	"github.com/san-kum/heroscene/internal/metrics"
	"github.com/san-kum/heroscene/internal/scene"
)

// sweepRate is the angular speed of a sweeping pointer in radians per second.
const sweepRate = 1.0

// Experiment is one headless run of the hero scene with a scripted pointer.
type Experiment struct {
	cfg      config.Config
	renderer scene.Renderer
	loop     *scene.Loop
	trace    *metrics.Trace
}

type Outcome struct {
	*scene.Result
	Seed    int64
	Samples []metrics.Sample
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: *cfg}
}

// WithRenderer draws every frame through r. Call before Setup.
func (e *Experiment) WithRenderer(r scene.Renderer) *Experiment {
	e.renderer = r
	return e
}

// Setup builds the scene for the configured target and attaches ms.
func (e *Experiment) Setup(ms []scene.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", scene.ErrInvalidConfig, err)
	}
	s, err := scene.Build(scene.Viewport{W: e.cfg.Width, H: e.cfg.Height}, rand.New(rand.NewSource(e.cfg.Seed)))
	if err != nil {
		return err
	}
	s.Damping = e.cfg.Damping
	if e.cfg.Pointer.Scale > 0 {
		s.PointerScale = e.cfg.Pointer.Scale
	}

	e.trace = metrics.NewTrace(e.cfg.Frames)
	e.loop = scene.NewLoop(s, e.renderer, nil)
	for _, m := range ms {
		e.loop.AddMetric(m)
	}
	e.loop.AddObserver(e.trace)
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.loop == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	res, err := e.loop.Run(ctx, scene.RunConfig{
		Frames:        e.cfg.Frames,
		FrameDuration: e.cfg.FrameDuration(),
		ValidateState: e.cfg.CheckFinite,
		Pointer:       PointerPath(e.cfg.Pointer, e.loop.Scene().Center()),
	})
	if res == nil {
		return nil, err
	}
	return &Outcome{Result: res, Seed: e.cfg.Seed, Samples: e.trace.Samples()}, err
}

// Scene returns the scene being run, or nil before Setup.
func (e *Experiment) Scene() *scene.Scene {
	if e.loop == nil {
		return nil
	}
	return e.loop.Scene()
}

// PointerPath holds the pointer at center plus the configured offset, or
// circles it around that point when Sweep is set.
func PointerPath(p config.PointerConfig, center scene.Pointer) scene.PointerPath {
	origin := scene.Pointer{X: center.X + p.X, Y: center.Y + p.Y}
	if p.Sweep == 0 {
		return func(int, time.Duration) scene.Pointer { return origin }
	}
	return func(_ int, elapsed time.Duration) scene.Pointer {
		a := elapsed.Seconds() * sweepRate
		return scene.Pointer{
			X: origin.X + p.Sweep*math.Cos(a),
			Y: origin.Y + p.Sweep*math.Sin(a),
		}
	}
}
