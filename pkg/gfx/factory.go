package gfx

import (
	"fmt"

	"github.com/kjkrol/metaball/pkg/gl"
)

// Factory creates GPU resources on one context, applying the format policy
// the probed capabilities allow.
type Factory struct {
	ctx  gl.Context
	caps Capabilities
}

func NewFactory(ctx gl.Context, caps Capabilities) *Factory {
	return &Factory{ctx: ctx, caps: caps}
}

func (f *Factory) Context() gl.Context {
	return f.ctx
}

// TextureConfig describes a 2D texture. Zero fields take their defaults:
// TEXTURE_2D, RGBA, UNSIGNED_BYTE, level 0, 1x1, LINEAR filtering and
// CLAMP_TO_EDGE wrapping. Nil Pixels allocates storage without uploading.
type TextureConfig struct {
	Pixels         []byte
	Target         gl.Enum
	InternalFormat gl.Enum
	Type           gl.Enum
	Level          int
	Width          int
	Height         int
	MinFilter      gl.Enum
	MagFilter      gl.Enum
	WrapS          gl.Enum
	WrapT          gl.Enum
}

func (c TextureConfig) withDefaults() TextureConfig {
	if c.Target == 0 {
		c.Target = gl.TEXTURE_2D
	}
	if c.InternalFormat == 0 {
		c.InternalFormat = gl.RGBA
	}
	if c.Type == 0 {
		c.Type = gl.UNSIGNED_BYTE
	}
	if c.Width <= 0 {
		c.Width = 1
	}
	if c.Height <= 0 {
		c.Height = 1
	}
	if c.MinFilter == 0 {
		c.MinFilter = gl.LINEAR
	}
	if c.MagFilter == 0 {
		c.MagFilter = gl.LINEAR
	}
	if c.WrapS == 0 {
		c.WrapS = gl.CLAMP_TO_EDGE
	}
	if c.WrapT == 0 {
		c.WrapT = gl.CLAMP_TO_EDGE
	}
	return c
}

// Texture is a created texture and the parameters it was actually created with.
type Texture struct {
	ID             gl.Texture
	Target         gl.Enum
	InternalFormat gl.Enum
	Type           gl.Enum
	Width          int
	Height         int
}

// ResolveTextureFormat applies the float fallback chain: RGBA32F becomes
// RGBA16F without linear float filtering, and RGBA16F becomes RGBA8 without
// linear half-float filtering. Other formats pass through unchanged.
func ResolveTextureFormat(caps Capabilities, internalFormat, ty gl.Enum) (gl.Enum, gl.Enum) {
	if internalFormat == gl.RGBA32F {
		if caps.TextureFloatLinear {
			ty = gl.FLOAT
		} else {
			internalFormat = gl.RGBA16F
		}
	}
	if internalFormat == gl.RGBA16F {
		if caps.TextureHalfFloatLinear {
			ty = gl.HALF_FLOAT
		} else {
			internalFormat = gl.RGBA
			ty = gl.UNSIGNED_BYTE
		}
	}
	return internalFormat, ty
}

// CreateTexture creates and uploads a texture. It never fails: formats the
// context cannot filter are silently replaced by coarser ones. The texture
// is left bound to its target.
func (f *Factory) CreateTexture(conf TextureConfig) Texture {
	conf = conf.withDefaults()
	internalFormat, ty := ResolveTextureFormat(f.caps, conf.InternalFormat, conf.Type)
	if internalFormat != conf.InternalFormat {
		Logger().Warn("gfx: texture format downgraded",
			"requested", fmt.Sprintf("0x%x", uint32(conf.InternalFormat)),
			"actual", fmt.Sprintf("0x%x", uint32(internalFormat)))
	}

	texture := f.ctx.CreateTexture()
	f.ctx.BindTexture(conf.Target, texture)
	f.ctx.PixelStorei(gl.UNPACK_FLIP_Y_WEBGL, gl.TRUE)
	f.ctx.TexImage2D(conf.Target, conf.Level, internalFormat, conf.Width, conf.Height, gl.RGBA, ty, conf.Pixels)
	f.ctx.TexParameteri(conf.Target, gl.TEXTURE_MIN_FILTER, int(conf.MinFilter))
	f.ctx.TexParameteri(conf.Target, gl.TEXTURE_MAG_FILTER, int(conf.MagFilter))
	f.ctx.TexParameteri(conf.Target, gl.TEXTURE_WRAP_S, int(conf.WrapS))
	f.ctx.TexParameteri(conf.Target, gl.TEXTURE_WRAP_T, int(conf.WrapT))

	Logger().Debug("gfx: texture created", "id", texture, "width", conf.Width, "height", conf.Height)
	return Texture{
		ID:             texture,
		Target:         conf.Target,
		InternalFormat: internalFormat,
		Type:           ty,
		Width:          conf.Width,
		Height:         conf.Height,
	}
}

// CreateFramebuffer creates a framebuffer with texture as its only color
// attachment and leaves the default framebuffer bound.
func (f *Factory) CreateFramebuffer(texture Texture) gl.Framebuffer {
	fb := f.ctx.CreateFramebuffer()
	f.ctx.BindFramebuffer(gl.FRAMEBUFFER, fb)
	f.ctx.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, texture.Target, texture.ID, 0)
	f.ctx.BindFramebuffer(gl.FRAMEBUFFER, 0)
	Logger().Debug("gfx: framebuffer created", "id", fb, "texture", texture.ID)
	return fb
}
