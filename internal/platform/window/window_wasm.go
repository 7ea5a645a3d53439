//go:build js && wasm

package window

import (
	"context"
	"fmt"
	"sync"
	"syscall/js"
	"time"

	"github.com/kjkrol/metaball/internal/platform"
	"github.com/kjkrol/metaball/pkg/gl"
	"github.com/kjkrol/metaball/pkg/gl/backend"
)

type listener struct {
	target js.Value
	typ    string
	fn     js.Func
}

type wasmSurface struct {
	window js.Value
	canvas js.Value
	funcs  *backend.Functions
	events eventQueue

	frames    chan float64
	frameFn   js.Func
	listeners []listener

	closed    chan struct{}
	closeOnce sync.Once
}

// NewSurface creates a full-page canvas with a WebGL2 context. Title is
// applied to the document; Width and Height are ignored because the canvas
// follows the browser window.
func NewSurface(conf platform.WindowConfig) (platform.Surface, error) {
	window := js.Global()
	doc := window.Get("document")
	if conf.Title != "" {
		doc.Set("title", conf.Title)
	}

	canvas := doc.Call("createElement", "canvas")
	style := canvas.Get("style")
	style.Set("position", "fixed")
	style.Set("left", "0px")
	style.Set("top", "0px")
	style.Set("display", "block")
	style.Call("setProperty", "background-color", "#000")
	doc.Get("body").Call("appendChild", canvas)

	ctx := canvas.Call("getContext", "webgl2")
	funcs, err := backend.NewFunctions(ctx)
	if err != nil {
		canvas.Call("remove")
		return nil, err
	}

	s := &wasmSurface{
		window: window,
		canvas: canvas,
		funcs:  funcs,
		events: newEventQueue(64),
		frames: make(chan float64, 1),
		closed: make(chan struct{}),
	}

	s.addEventListener(window, "resize", func(js.Value) {
		width, height := s.Size()
		s.events.push(platform.Resize{Width: width, Height: height})
	})
	s.addEventListener(doc, "keydown", func(e js.Value) {
		s.events.push(platform.KeyPress{Code: uint64(e.Get("keyCode").Int()), Label: e.Get("key").String()})
	})
	s.addEventListener(window, "pagehide", func(js.Value) {
		s.events.push(platform.DestroyNotify{})
	})

	s.frameFn = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		select {
		case s.frames <- args[0].Float():
		default:
		}
		return nil
	})
	s.window.Call("requestAnimationFrame", s.frameFn)
	return s, nil
}

func (s *wasmSurface) addEventListener(target js.Value, event string, f func(js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		f(args[0])
		return nil
	})
	target.Call("addEventListener", event, fn)
	s.listeners = append(s.listeners, listener{target: target, typ: event, fn: fn})
}

func (s *wasmSurface) Context() gl.Context {
	return s.funcs
}

func (s *wasmSurface) Size() (int, int) {
	return s.window.Get("innerWidth").Int(), s.window.Get("innerHeight").Int()
}

func (s *wasmSurface) PixelRatio() float32 {
	dpr := s.window.Get("devicePixelRatio")
	if dpr.Type() != js.TypeNumber {
		return 1
	}
	return float32(dpr.Float())
}

func (s *wasmSurface) SetCanvasSize(width, height, cssWidth, cssHeight int) {
	s.canvas.Set("width", width)
	s.canvas.Set("height", height)
	style := s.canvas.Get("style")
	style.Call("setProperty", "width", fmt.Sprintf("%dpx", cssWidth))
	style.Call("setProperty", "height", fmt.Sprintf("%dpx", cssHeight))
}

func (s *wasmSurface) NextEvent() (platform.Event, bool) {
	return s.events.next()
}

// WaitFrame blocks the calling goroutine until requestAnimationFrame fires;
// the JS event loop keeps running meanwhile.
func (s *wasmSurface) WaitFrame(ctx context.Context) (time.Duration, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-s.closed:
		return 0, platform.ErrClosed
	case ms := <-s.frames:
		return time.Duration(ms * float64(time.Millisecond)), nil
	}
}

func (s *wasmSurface) EndFrame() {
	select {
	case <-s.closed:
		return
	default:
	}
	s.window.Call("requestAnimationFrame", s.frameFn)
}

func (s *wasmSurface) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		for _, l := range s.listeners {
			l.target.Call("removeEventListener", l.typ, l.fn)
			l.fn.Release()
		}
		s.listeners = nil
		s.frameFn.Release()
		s.canvas.Call("remove")
	})
}
