package gfx_test

import (
	"testing"

	"github.com/kjkrol/metaball/internal/gltest"
	"github.com/kjkrol/metaball/pkg/gfx"
	"github.com/kjkrol/metaball/pkg/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCaps = gfx.Capabilities{
	ColorBufferFloat:       true,
	TextureFloatLinear:     true,
	ColorBufferHalfFloat:   true,
	TextureHalfFloatLinear: true,
}

func TestResolveTextureFormat(t *testing.T) {
	tests := []struct {
		name       string
		caps       gfx.Capabilities
		format, ty gl.Enum
		wantFormat gl.Enum
		wantType   gl.Enum
	}{
		{
			name:       "float without any extension falls back to bytes",
			format:     gl.RGBA32F,
			ty:         gl.FLOAT,
			wantFormat: gl.RGBA,
			wantType:   gl.UNSIGNED_BYTE,
		},
		{
			name:       "float with every extension is kept",
			caps:       allCaps,
			format:     gl.RGBA32F,
			ty:         gl.FLOAT,
			wantFormat: gl.RGBA32F,
			wantType:   gl.FLOAT,
		},
		{
			name:       "float without float filtering becomes half float",
			caps:       gfx.Capabilities{TextureHalfFloatLinear: true},
			format:     gl.RGBA32F,
			ty:         gl.FLOAT,
			wantFormat: gl.RGBA16F,
			wantType:   gl.HALF_FLOAT,
		},
		{
			name:       "half float without filtering falls back to bytes",
			caps:       gfx.Capabilities{TextureFloatLinear: true},
			format:     gl.RGBA16F,
			ty:         gl.HALF_FLOAT,
			wantFormat: gl.RGBA,
			wantType:   gl.UNSIGNED_BYTE,
		},
		{
			name:       "bytes pass through",
			format:     gl.RGBA,
			ty:         gl.UNSIGNED_BYTE,
			wantFormat: gl.RGBA,
			wantType:   gl.UNSIGNED_BYTE,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ty := gfx.ResolveTextureFormat(tt.caps, tt.format, tt.ty)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantType, ty)
		})
	}
}

func TestCreateTexture_Downgrade(t *testing.T) {
	logs := captureLogs(t)
	fake := gltest.New()
	factory := gfx.NewFactory(fake, gfx.Probe(fake))

	tex := factory.CreateTexture(gfx.TextureConfig{
		InternalFormat: gl.RGBA32F,
		Type:           gl.FLOAT,
		Width:          64,
		Height:         32,
	})

	assert.Equal(t, gl.Enum(gl.RGBA), tex.InternalFormat)
	assert.Equal(t, gl.Enum(gl.UNSIGNED_BYTE), tex.Type)
	uploads := fake.Named("TexImage2D")
	require.Len(t, uploads, 1)
	assert.Equal(t, []any{gl.Enum(gl.TEXTURE_2D), 0, gl.Enum(gl.RGBA), 64, 32, gl.Enum(gl.RGBA), gl.Enum(gl.UNSIGNED_BYTE), 0}, uploads[0].Args)
	assert.Contains(t, logs.String(), "downgraded")
}

func TestCreateTexture_Preserved(t *testing.T) {
	fake := gltest.New().WithAllExtensions()
	factory := gfx.NewFactory(fake, gfx.Probe(fake))

	tex := factory.CreateTexture(gfx.TextureConfig{InternalFormat: gl.RGBA32F, Width: 8, Height: 8})

	assert.Equal(t, gl.Enum(gl.RGBA32F), tex.InternalFormat)
	assert.Equal(t, gl.Enum(gl.FLOAT), tex.Type)
	assert.Equal(t, tex.ID, fake.BoundTexture(0, gl.TEXTURE_2D))
	assert.Equal(t, []any{gl.Enum(gl.UNPACK_FLIP_Y_WEBGL), gl.TRUE}, fake.Named("PixelStorei")[0].Args)
}

func TestCreateTexture_Defaults(t *testing.T) {
	fake := gltest.New()
	factory := gfx.NewFactory(fake, gfx.Capabilities{})

	factory.CreateTexture(gfx.TextureConfig{})

	params := fake.Named("TexParameteri")
	require.Len(t, params, 4)
	assert.Equal(t, []any{gl.Enum(gl.TEXTURE_2D), gl.Enum(gl.TEXTURE_MIN_FILTER), gl.LINEAR}, params[0].Args)
	assert.Equal(t, []any{gl.Enum(gl.TEXTURE_2D), gl.Enum(gl.TEXTURE_WRAP_T), gl.CLAMP_TO_EDGE}, params[3].Args)
	assert.Equal(t, 1, fake.Named("TexImage2D")[0].Args[3])
}

func TestCreateFramebuffer(t *testing.T) {
	fake := gltest.New()
	factory := gfx.NewFactory(fake, gfx.Capabilities{})
	tex := factory.CreateTexture(gfx.TextureConfig{Width: 4, Height: 4})

	fb := factory.CreateFramebuffer(tex)

	assert.True(t, fake.IsLive(gltest.KindFramebuffer, uint32(fb)))
	attach := fake.Named("FramebufferTexture2D")
	require.Len(t, attach, 1)
	assert.Equal(t, []any{gl.Enum(gl.FRAMEBUFFER), gl.Enum(gl.COLOR_ATTACHMENT0), gl.Enum(gl.TEXTURE_2D), tex.ID, 0}, attach[0].Args)
	assert.Zero(t, fake.CurrentFramebuffer())
}

func TestCreateVertexAttribute(t *testing.T) {
	fake := gltest.New()
	factory := gfx.NewFactory(fake, gfx.Capabilities{})

	attr, err := factory.CreateVertexAttribute(gfx.VertexAttributeConfig{Data: []float32{1, 2, 3, 4}, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, attr.BytesPerElement)
	assert.Equal(t, 4, attr.Count)
	assert.Equal(t, gl.Enum(gl.FLOAT), attr.Type)
	assert.Equal(t, []float32{1, 2, 3, 4}, fake.BufferFloats(attr.Buffer))
	assert.Equal(t, []any{gl.Enum(gl.ARRAY_BUFFER), 16, gl.Enum(gl.STATIC_DRAW)}, fake.Named("BufferData")[0].Args)

	attr.Release()
	attr.Release()
	assert.Equal(t, 0, fake.Live(gltest.KindBuffer))
	assert.Equal(t, 1, fake.Deleted(gltest.KindBuffer))

	_, err = factory.CreateVertexAttribute(gfx.VertexAttributeConfig{Data: []float32{1}})
	assert.ErrorIs(t, err, gfx.ErrAttributeConfig)
	_, err = factory.CreateVertexAttribute(gfx.VertexAttributeConfig{Data: []int{1}, Size: 1})
	assert.ErrorIs(t, err, gfx.ErrAttributeConfig)
}
