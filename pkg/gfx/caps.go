package gfx

import "github.com/kjkrol/metaball/pkg/gl"

// Capabilities records which optional GPU features the context supports.
// It is probed once per context and never changes afterwards.
type Capabilities struct {
	ColorBufferFloat       bool
	TextureFloatLinear     bool
	ColorBufferHalfFloat   bool
	TextureHalfFloatLinear bool
}

// Probe queries the four optional extensions. A missing extension is
// reported as false, never as an error.
func Probe(ctx gl.Context) Capabilities {
	caps := Capabilities{
		ColorBufferFloat:       ctx.Extension(gl.ExtColorBufferFloat),
		TextureFloatLinear:     ctx.Extension(gl.ExtTextureFloatLinear),
		ColorBufferHalfFloat:   ctx.Extension(gl.ExtColorBufferHalfFloat),
		TextureHalfFloatLinear: ctx.Extension(gl.ExtTextureHalfFloatLinear),
	}
	Logger().Info("gfx: capabilities probed",
		"colorBufferFloat", caps.ColorBufferFloat,
		"textureFloatLinear", caps.TextureFloatLinear,
		"colorBufferHalfFloat", caps.ColorBufferHalfFloat,
		"textureHalfFloatLinear", caps.TextureHalfFloatLinear,
	)
	return caps
}
