package metaball

import (
	"math"
	"regexp"
	"strconv"
	"testing"

	"github.com/kjkrol/metaball/internal/gltest"
	"github.com/kjkrol/metaball/pkg/gfx"
	"github.com/kjkrol/metaball/pkg/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(infos []gl.ActiveInfo) map[string]gl.Enum {
	m := make(map[string]gl.Enum, len(infos))
	for _, info := range infos {
		m[info.Name] = info.Type
	}
	return m
}

func TestShaders_Interface(t *testing.T) {
	tests := []struct {
		name       string
		vertex     string
		fragment   string
		attributes map[string]gl.Enum
		uniforms   map[string]gl.Enum
	}{
		{
			name:     "quad",
			vertex:   quadVertexSource,
			fragment: quadFragmentSource,
			attributes: map[string]gl.Enum{
				gfx.AttribPosition: gl.FLOAT_VEC2,
				gfx.AttribUV:       gl.FLOAT_VEC2,
				gfx.AttribOffset:   gl.FLOAT_VEC2,
			},
			uniforms: map[string]gl.Enum{
				gfx.UniformProjection: gl.FLOAT_MAT4,
				uniformTime:           gl.FLOAT,
			},
		},
		{
			name:     "frame",
			vertex:   frameVertexSource,
			fragment: frameFragmentSource,
			attributes: map[string]gl.Enum{
				gfx.AttribPosition: gl.FLOAT_VEC2,
				gfx.AttribUV:       gl.FLOAT_VEC2,
			},
			uniforms: map[string]gl.Enum{
				gfx.UniformProjection: gl.FLOAT_MAT4,
				uniformTexture:        gl.SAMPLER_2D,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uniforms, attributes := gltest.Interface(tt.vertex, tt.fragment)

			assert.Equal(t, tt.attributes, names(attributes))
			assert.Equal(t, tt.uniforms, names(uniforms))
		})
	}
}

func TestNewDriver_ProgramInterfaces(t *testing.T) {
	_, _, d := newDriver(t, DefaultConfig())

	assert.Contains(t, d.quadProgram.Attributes(), gfx.AttribOffset)
	assert.NotContains(t, d.frameProgram.Attributes(), gfx.AttribOffset)
	assert.Contains(t, d.quadProgram.Uniforms(), uniformTime)
	assert.NotContains(t, d.quadProgram.Uniforms(), uniformTexture)
	assert.Equal(t, 0, d.frameProgram.Uniforms()[uniformTexture].Unit)
}

var (
	quadPeak       = regexp.MustCompile(`falloff \* falloff \* ([0-9.]+)\)`)
	quadFalloff    = regexp.MustCompile(`falloff = clamp\(1\.0 - d, 0\.0, 1\.0\)`)
	frameThreshold = regexp.MustCompile(`smoothstep\(([0-9.]+), ([0-9.]+), field\)`)
)

func parseFloat(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return v
}

func blendFactor(t *testing.T, factor gl.Enum, srcAlpha float64) float64 {
	t.Helper()
	switch factor {
	case gl.ZERO:
		return 0
	case gl.ONE:
		return 1
	case gl.SRC_ALPHA:
		return srcAlpha
	case gl.ONE_MINUS_SRC_ALPHA:
		return 1 - srcAlpha
	}
	t.Fatalf("unexpected blend factor 0x%x", uint32(factor))
	return 0
}

// The offscreen target is RGBA8 unless a float target is requested, so every
// blended alpha is rounded to 1/255.
func accumulate(t *testing.T, src, dst gl.Enum, samples ...float64) float64 {
	t.Helper()
	field := 0.0
	for _, a := range samples {
		field = a*blendFactor(t, src, a) + field*blendFactor(t, dst, a)
		field = math.Round(math.Min(math.Max(field, 0), 1)*255) / 255
	}
	return field
}

func TestShaders_FieldCrossesThreshold(t *testing.T) {
	fake, _, _ := newDriver(t, DefaultConfig())
	blend := fake.Named("BlendFuncSeparate")
	require.Len(t, blend, 1)
	srcAlpha, dstAlpha := blend[0].Args[2].(gl.Enum), blend[0].Args[3].(gl.Enum)

	require.Regexp(t, quadFalloff, quadFragmentSource)
	peak := quadPeak.FindStringSubmatch(quadFragmentSource)
	require.NotNil(t, peak)
	bounds := frameThreshold.FindStringSubmatch(frameFragmentSource)
	require.NotNil(t, bounds)
	maxAlpha := parseFloat(t, peak[1])
	low, high := parseFloat(t, bounds[1]), parseFloat(t, bounds[2])

	quadAlpha := func(d float64) float64 {
		falloff := math.Min(math.Max(1-d, 0), 1)
		return falloff * falloff * maxAlpha
	}

	center := accumulate(t, srcAlpha, dstAlpha, quadAlpha(0))
	assert.GreaterOrEqual(t, center, high, "isolated quad center is drawn")

	edge := quadAlpha(0.5)
	assert.LessOrEqual(t, accumulate(t, srcAlpha, dstAlpha, edge), low, "single quad edge is not drawn")
	assert.GreaterOrEqual(t, accumulate(t, srcAlpha, dstAlpha, edge, edge, edge, edge), high, "overlapping quad edges merge")

	assert.Zero(t, accumulate(t, srcAlpha, dstAlpha, quadAlpha(1)), "outside the quad")
}
