// Package scene models the animated hero scene: a fixed population of shapes,
// three lights and a camera, advanced once per display frame.
//
//   - [Build]: constructs the scene for a render target
//   - [Scene]: the explicit frame context passed to every update
//   - [Loop]: drives updates from a host scheduling primitive and renders
//   - [ScrollThrottle]: queues at most one scroll nudge per frame
//
// # Example
//
//	s, err := scene.Build(scene.Viewport{W: 160, H: 96}, rand.New(rand.NewSource(1)))
//	if err != nil {
//		return err
//	}
//	loop := scene.NewLoop(s, renderer, scene.NewWallClock())
//	loop.Tick()
//
// # Thread Safety
//
// A Scene is owned by the goroutine that ticks it. Independent scenes may run
// in parallel.
package scene
