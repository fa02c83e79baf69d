package gui

import (
	"fmt"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/heroscene/internal/metrics"
	"github.com/san-kum/heroscene/internal/page"
	"github.com/san-kum/heroscene/internal/scene"
	"github.com/san-kum/heroscene/internal/viz"
	"go.uber.org/zap"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 14, 255)
	ColAccent  = rl.NewColor(255, 107, 157, 255) // Hero pink
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const telemetrySize = 200

type Options struct {
	Width, Height int
	FPS           int
	Seed          int64
	Damping       float64
	PointerScale  float64
}

// App hosts the hero scene in a desktop window.
type App struct {
	Loop      *scene.Loop
	Trace     *metrics.Trace
	Cursor    *page.Cursor
	Camera    rl.Camera3D
	ShowHUD   bool
	Telemetry []float64

	opts    Options
	log     *zap.Logger
	frames  viz.WireframeCache
	scrolls int
}

// initWindow opens a resizable window of the configured size.
func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "heroscene")
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// NewApp builds the scene for a window of the configured size. The window
// must already be open.
func NewApp(opts Options, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s, err := scene.Build(scene.Viewport{W: opts.Width, H: opts.Height}, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, err
	}
	if opts.Damping > 0 {
		s.Damping = opts.Damping
	}
	if opts.PointerScale > 0 {
		s.PointerScale = opts.PointerScale
	}

	app := &App{
		Trace:     metrics.NewTrace(telemetrySize),
		Cursor:    page.NewCursor(),
		ShowHUD:   true,
		Telemetry: make([]float64, 0, telemetrySize),
		opts:      opts,
		log:       log,
		frames:    make(viz.WireframeCache),
	}
	app.Loop = scene.NewLoop(s, scene.RendererFunc(app.drawScene), scene.NewWallClock())
	app.Loop.AddObserver(app.Trace)
	app.Camera = cameraFor(&s.Camera)
	return app, nil
}

// Run opens the window and blocks until it is closed. A scene that cannot
// be built is logged and the window stays up without it.
func Run(opts Options, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	initWindow(opts)
	defer rl.CloseWindow()

	app, err := NewApp(opts, log)
	if err != nil {
		log.Error("failed to initialize scene", zap.Error(err))
		for !rl.WindowShouldClose() {
			rl.BeginDrawing()
			rl.ClearBackground(ColBg)
			rl.DrawText(fmt.Sprintf("hero unavailable: %v", err), 30, 30, 16, ColText)
			rl.EndDrawing()
		}
		return nil
	}
	log.Info("window opened", zap.Int("width", opts.Width), zap.Int("height", opts.Height))
	app.RunLoop()
	log.Info("window closed", zap.Int("frames", app.Loop.Scene().Frames()), zap.Int("scrolls", app.scrolls))
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		rl.BeginDrawing()
		rl.ClearBackground(ColBg)
		// Tick renders through drawScene.
		a.Loop.Tick()
		a.DrawHUD()
		rl.EndDrawing()
	}
}

// Update feeds window input to the scene.
func (a *App) Update() {
	s := a.Loop.Scene()
	if rl.IsWindowResized() {
		s.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	mouse := rl.GetMousePosition()
	s.SetPointer(float64(mouse.X), float64(mouse.Y))
	a.Cursor.Move(float64(mouse.X), float64(mouse.Y))
	a.Cursor.Hover(a.ShowHUD && mouse.Y < 70)

	if rl.GetMouseWheelMove() != 0 && a.Loop.Scroll() {
		a.scrolls++
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
}

func (a *App) drawScene(s *scene.Scene) {
	a.Camera = cameraFor(&s.Camera)
	rl.BeginMode3D(a.Camera)
	for _, o := range s.Objects {
		a.drawObject(s, o)
	}
	rl.EndMode3D()

	if errs := a.Trace.CameraError(); len(errs) > 0 {
		a.Telemetry = append(a.Telemetry, errs[len(errs)-1])
		if len(a.Telemetry) > telemetrySize {
			a.Telemetry = a.Telemetry[1:]
		}
	}
}

func (a *App) DrawHUD() {
	c := a.Cursor
	center := rl.NewVector2(float32(c.X+page.CursorRadius), float32(c.Y+page.CursorRadius))
	rl.DrawCircleV(center, float32(page.CursorRadius*c.Scale), rl.Fade(ColSelect, 0.3))

	if !a.ShowHUD {
		return
	}
	s := a.Loop.Scene()
	rl.DrawText("heroscene", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: frame %d", s.Frames()), 170, 36, 16, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, int32(rl.GetScreenHeight())-40, 14, ColTextDim)
	rl.DrawText("[H] HUD  [Q] QUIT", int32(rl.GetScreenWidth())-200, int32(rl.GetScreenHeight())-40, 14, ColTextDim)
	a.DrawTelemetry()
}

// DrawTelemetry plots the camera's distance to its target.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, rl.GetScreenHeight()-120
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("lag %.2e", a.Telemetry[len(a.Telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}
