package scene

import (
	"context"
	"fmt"
	"time"
)

// Clock reports time elapsed since the scene started.
type Clock interface {
	Elapsed() time.Duration
}

type wallClock struct{ start time.Time }

// NewWallClock returns a Clock that starts now.
func NewWallClock() Clock { return wallClock{start: time.Now()} }

func (c wallClock) Elapsed() time.Duration { return time.Since(c.start) }

// Observer is notified after every update, before rendering.
type Observer interface {
	OnFrame(s *Scene, elapsed time.Duration)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

// PointerPath scripts the pointer for headless runs.
type PointerPath func(frame int, elapsed time.Duration) Pointer

type RunConfig struct {
	Frames        int
	FrameDuration time.Duration
	ValidateState bool
	Pointer       PointerPath
}

type Result struct {
	Frames  int
	Elapsed time.Duration
	Metrics map[string]float64
}

// Loop drives a scene from a host scheduling primitive.
type Loop struct {
	scene     *Scene
	renderer  Renderer
	clock     Clock
	throttle  *ScrollThrottle
	metrics   []Metric
	observers []Observer
}

func NewLoop(s *Scene, r Renderer, clock Clock) *Loop {
	l := &Loop{
		scene:     s,
		renderer:  r,
		clock:     clock,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	l.throttle = NewScrollThrottle(func(elapsed time.Duration) { s.Nudge(elapsed) })
	return l
}

func (l *Loop) Scene() *Scene { return l.scene }

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Scroll queues a scroll nudge for the next frame. Reports whether a new
// nudge was queued.
func (l *Loop) Scroll() bool { return l.throttle.Request() }

// Tick runs one frame at the clock's current time.
func (l *Loop) Tick() {
	l.frame(l.clock.Elapsed())
}

func (l *Loop) frame(elapsed time.Duration) {
	l.throttle.Flush(elapsed)
	l.scene.Update(elapsed)
	for _, m := range l.metrics {
		m.OnFrame(l.scene, elapsed)
	}
	for _, o := range l.observers {
		o.OnFrame(l.scene, elapsed)
	}
	if l.renderer != nil {
		l.renderer.Render(l.scene)
	}
}

// Run steps the scene cfg.Frames times on a fixed timestep, ignoring the
// loop's clock.
func (l *Loop) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range l.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	var err error
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		if err != nil {
			break
		}

		elapsed := time.Duration(i) * cfg.FrameDuration
		if cfg.Pointer != nil {
			p := cfg.Pointer(i, elapsed)
			l.scene.SetPointer(p.X, p.Y)
		}
		l.frame(elapsed)
		result.Frames++
		result.Elapsed = elapsed

		if cfg.ValidateState {
			if err = l.scene.Validate(); err != nil {
				break
			}
		}
	}

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.FrameDuration <= 0 {
		return fmt.Errorf("%w: frame duration must be positive, got %v", ErrInvalidConfig, cfg.FrameDuration)
	}
	return nil
}
