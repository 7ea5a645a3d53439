package metaball

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/kjkrol/metaball/internal/platform"
	"github.com/kjkrol/metaball/pkg/gfx"
	"github.com/kjkrol/metaball/pkg/gl"
)

const (
	uniformTime    = "u_time"
	uniformTexture = "u_texture"
)

// Canvas is the part of a surface the driver sizes on every resize.
type Canvas interface {
	Size() (width, height int)
	PixelRatio() float32
	SetCanvasSize(width, height, cssWidth, cssHeight int)
}

// Generation is the set of resize-sensitive handles currently alive.
type Generation struct {
	Texture     gl.Texture
	Framebuffer gl.Framebuffer
	QuadVAO     gl.VertexArray
	FrameVAO    gl.VertexArray
}

type Option func(*Driver)

// WithRand sets the source of quad positions.
func WithRand(rng *rand.Rand) Option {
	return func(d *Driver) {
		d.rng = rng
	}
}

// Driver renders a field of blended instanced quads into an offscreen
// texture and composites it onto the screen through a threshold pass.
type Driver struct {
	ctx    gl.Context
	canvas Canvas
	conf   Config
	rng    *rand.Rand

	factory      *gfx.Factory
	quadProgram  *gfx.Program
	frameProgram *gfx.Program

	// current generation, replaced as a whole by Resize
	texture     gfx.Texture
	framebuffer gl.Framebuffer
	quads       *gfx.QuadBatch
	frame       *gfx.QuadBatch
	positions   []float32

	width, height       int
	cssWidth, cssHeight int
	postProcessing      bool
}

// NewDriver builds both programs, enables blending and runs the first
// resize. Color blends over by source alpha while alpha adds up, so the
// offscreen alpha channel holds the summed field of overlapping quads.
func NewDriver(ctx gl.Context, canvas Canvas, conf Config, opts ...Option) (*Driver, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		ctx:            ctx,
		canvas:         canvas,
		conf:           conf,
		postProcessing: conf.PostProcessing,
		positions:      make([]float32, conf.QuadCount*2),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	d.factory = gfx.NewFactory(ctx, gfx.Probe(ctx))

	var err error
	d.quadProgram, err = gfx.NewProgram(ctx, quadVertexSource, quadFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}
	d.frameProgram, err = gfx.NewProgram(ctx, frameVertexSource, frameFragmentSource)
	if err != nil {
		d.quadProgram.Delete()
		return nil, fmt.Errorf("frame program: %w", err)
	}

	ctx.Enable(gl.BLEND)
	ctx.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE)

	if err := d.Resize(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Resize replaces the current generation with one sized to the canvas. The
// previous generation is deleted before anything new is created. A canvas
// of zero area keeps the previous generation.
func (d *Driver) Resize() error {
	cssWidth, cssHeight := d.canvas.Size()
	if cssWidth <= 0 || cssHeight <= 0 {
		gfx.Logger().Debug("metaball: resize skipped", "width", cssWidth, "height", cssHeight)
		return nil
	}
	dpr := math32.Min(d.canvas.PixelRatio(), d.conf.MaxPixelRatio)
	if dpr <= 0 {
		dpr = 1
	}
	width := int(math32.Floor(float32(cssWidth) * dpr))
	height := int(math32.Floor(float32(cssHeight) * dpr))
	d.canvas.SetCanvasSize(width, height, cssWidth, cssHeight)
	d.width, d.height = width, height
	d.cssWidth, d.cssHeight = cssWidth, cssHeight

	d.teardownPrevious()

	internalFormat := gl.Enum(gl.RGBA)
	if d.conf.FloatTarget {
		internalFormat = gl.RGBA32F
	}
	d.texture = d.factory.CreateTexture(gfx.TextureConfig{
		Width:          width,
		Height:         height,
		InternalFormat: internalFormat,
	})
	d.ctx.BindTexture(gl.TEXTURE_2D, 0)
	d.framebuffer = d.factory.CreateFramebuffer(d.texture)

	extentX := float32(cssWidth) * d.conf.Spread
	extentY := float32(cssHeight) * d.conf.Spread
	for i := 0; i < d.conf.QuadCount; i++ {
		d.positions[i*2] = extentX * d.rng.Float32()
		d.positions[i*2+1] = extentY * d.rng.Float32()
	}

	viewport := [2]float32{float32(cssWidth), float32(cssHeight)}
	var err error
	d.quads, err = gfx.BuildQuad(d.factory, gfx.QuadConfig{
		Width:     d.conf.QuadSize,
		Height:    d.conf.QuadSize,
		Program:   d.quadProgram,
		Instanced: true,
		Positions: d.positions,
		Viewport:  viewport,
	})
	if err != nil {
		return fmt.Errorf("quad batch: %w", err)
	}
	d.frame, err = gfx.BuildQuad(d.factory, gfx.QuadConfig{
		Width:     viewport[0],
		Height:    viewport[1],
		Program:   d.frameProgram,
		Positions: []float32{viewport[0] * 0.5, viewport[1] * 0.5},
		Viewport:  viewport,
	})
	if err != nil {
		return fmt.Errorf("frame batch: %w", err)
	}

	gfx.Logger().Info("metaball: resized",
		"width", width, "height", height, "css_width", cssWidth, "css_height", cssHeight, "dpr", dpr)
	return nil
}

// teardownPrevious deletes every resize-sensitive handle and zeroes it.
func (d *Driver) teardownPrevious() {
	d.quads.Release()
	d.quads = nil
	d.frame.Release()
	d.frame = nil
	if d.framebuffer != 0 {
		d.ctx.DeleteFramebuffer(d.framebuffer)
		d.framebuffer = 0
	}
	if d.texture.ID != 0 {
		d.ctx.DeleteTexture(d.texture.ID)
		d.texture = gfx.Texture{}
	}
}

// Tick renders one frame. elapsed is the time since the loop started.
func (d *Driver) Tick(elapsed time.Duration) {
	if d.quads == nil || d.frame == nil {
		return
	}
	bg := d.conf.Background
	d.ctx.Viewport(0, 0, d.width, d.height)
	d.ctx.ClearColor(bg[0], bg[1], bg[2], bg[3])
	d.ctx.Clear(gl.COLOR_BUFFER_BIT)
	if d.postProcessing {
		d.ctx.BindFramebuffer(gl.FRAMEBUFFER, d.framebuffer)
		d.ctx.ClearColor(0, 0, 0, 0)
		d.ctx.Clear(gl.COLOR_BUFFER_BIT)
	}

	d.quadProgram.Use()
	if err := d.quadProgram.SetUniform(uniformTime, float32(elapsed.Seconds())); err != nil {
		gfx.Logger().Warn("metaball: set time", "err", err)
	}
	d.quads.Draw()
	d.ctx.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if d.postProcessing {
		d.frameProgram.Use()
		if err := d.frameProgram.SetUniform(uniformTexture, d.texture); err != nil {
			gfx.Logger().Warn("metaball: set texture", "err", err)
		}
		d.frame.Draw()
	}

	d.ctx.UseProgram(0)
	d.ctx.BindVertexArray(0)
	d.ctx.BindTexture(gl.TEXTURE_2D, 0)
}

// Run drives the surface until it is closed or ctx is done. Events queued
// before a frame are handled before it is rendered, so a resize is always
// complete when the next tick runs.
func (d *Driver) Run(ctx context.Context, surface platform.Surface) error {
	for {
		elapsed, err := surface.WaitFrame(ctx)
		if errors.Is(err, platform.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		for {
			e, ok := surface.NextEvent()
			if !ok {
				break
			}
			switch e := e.(type) {
			case platform.Resize:
				if err := d.Resize(); err != nil {
					return err
				}
			case platform.KeyPress:
				if e.Label == "p" {
					d.SetPostProcessing(!d.postProcessing)
				}
			case platform.DestroyNotify:
				return nil
			}
		}
		d.Tick(elapsed)
		surface.EndFrame()
	}
}

func (d *Driver) SetPostProcessing(enabled bool) {
	if d.postProcessing != enabled {
		gfx.Logger().Info("metaball: post-processing", "enabled", enabled)
	}
	d.postProcessing = enabled
}

func (d *Driver) PostProcessing() bool {
	return d.postProcessing
}

// CanvasSize returns the drawing buffer size of the current generation.
func (d *Driver) CanvasSize() (int, int) {
	return d.width, d.height
}

func (d *Driver) Live() Generation {
	g := Generation{
		Texture:     d.texture.ID,
		Framebuffer: d.framebuffer,
	}
	if d.quads != nil {
		g.QuadVAO = d.quads.VertexArray()
	}
	if d.frame != nil {
		g.FrameVAO = d.frame.VertexArray()
	}
	return g
}

// Close deletes the current generation and both programs.
func (d *Driver) Close() {
	d.teardownPrevious()
	if d.quadProgram != nil {
		d.quadProgram.Delete()
	}
	if d.frameProgram != nil {
		d.frameProgram.Delete()
	}
}
