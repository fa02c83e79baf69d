package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRenderTarget indicates the scene has nothing to draw into.
	ErrNoRenderTarget = errors.New("scene: missing render target")

	// ErrNonFinite indicates a transform picked up a NaN or Inf.
	ErrNonFinite = errors.New("scene: non-finite transform")

	// ErrInvalidConfig indicates loop settings outside their valid range.
	ErrInvalidConfig = errors.New("scene: invalid configuration")
)

// FrameError wraps an error with the frame it was detected on.
type FrameError struct {
	Frame   int
	Object  int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d object %d: %v", e.Frame, e.Object, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
