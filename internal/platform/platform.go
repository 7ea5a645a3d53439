package platform

import (
	"context"
	"errors"
	"time"

	"github.com/kjkrol/metaball/pkg/gl"
)

// ErrClosed is returned by WaitFrame once the surface has been torn down.
var ErrClosed = errors.New("platform: surface closed")

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Surface is a visible drawing target with a current graphics context.
// Size is in logical (CSS or window) pixels; the canvas backing store is
// sized by the caller through SetCanvasSize.
type Surface interface {
	Context() gl.Context
	Size() (width, height int)
	PixelRatio() float32
	SetCanvasSize(width, height, cssWidth, cssHeight int)

	// NextEvent returns a pending event without blocking.
	NextEvent() (Event, bool)
	// WaitFrame blocks until the next frame should be drawn and returns the
	// time elapsed since the surface was created.
	WaitFrame(ctx context.Context) (time.Duration, error)
	// EndFrame presents the frame and schedules the next one.
	EndFrame()
	Close()
}
