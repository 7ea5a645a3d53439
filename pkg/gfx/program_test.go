package gfx_test

import (
	"testing"

	"github.com/kjkrol/metaball/internal/gltest"
	"github.com/kjkrol/metaball/pkg/gfx"
	"github.com/kjkrol/metaball/pkg/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgram(t *testing.T) (*gltest.Fake, *gfx.Program) {
	t.Helper()
	fake := gltest.New()
	fake.Uniforms = []gl.ActiveInfo{
		{Name: "u_first", Size: 1, Type: gl.SAMPLER_2D},
		{Name: "u_count", Size: 1, Type: gl.INT},
		{Name: "u_time", Size: 1, Type: gl.FLOAT},
		{Name: "u_second", Size: 1, Type: gl.SAMPLER_2D},
		{Name: "u_resolution", Size: 1, Type: gl.FLOAT_VEC2},
		{Name: "u_tint", Size: 1, Type: gl.FLOAT_VEC3},
		{Name: "u_color", Size: 1, Type: gl.FLOAT_VEC4},
		{Name: "u_projectionMatrix", Size: 1, Type: gl.FLOAT_MAT4},
		{Name: "u_sky", Size: 1, Type: gl.SAMPLER_CUBE},
		{Name: "u_normal", Size: 1, Type: gl.FLOAT_MAT3},
		{Name: "u_weights[0]", Size: 4, Type: gl.FLOAT},
	}
	fake.Attributes = []gl.ActiveInfo{
		{Name: "a_position", Size: 1, Type: gl.FLOAT_VEC2},
		{Name: "a_uv", Size: 1, Type: gl.FLOAT_VEC2},
	}
	program, err := gfx.NewProgram(fake, vertexSource, fragmentSource)
	require.NoError(t, err)
	fake.ResetCalls()
	return fake, program
}

func TestReflectUniforms_SamplerUnits(t *testing.T) {
	_, program := newProgram(t)
	uniforms := program.Uniforms()

	assert.Equal(t, 0, uniforms["u_first"].Unit)
	assert.Equal(t, 1, uniforms["u_second"].Unit)
	assert.Equal(t, 2, uniforms["u_sky"].Unit)
	assert.Equal(t, -1, uniforms["u_time"].Unit)
	assert.Equal(t, gltest.UniformLocation(2), uniforms["u_time"].Location)
	assert.False(t, uniforms["u_normal"].Settable())
}

func TestReflectUniforms_ArrayBaseName(t *testing.T) {
	_, program := newProgram(t)

	assert.Same(t, program.Uniforms()["u_weights[0]"], program.Uniforms()["u_weights"])
	assert.Equal(t, 4, program.Uniforms()["u_weights"].Size)
}

func TestSetUniform_Dispatch(t *testing.T) {
	tests := []struct {
		name string
		data any
		call string
		want any
	}{
		{name: "u_count", data: 3, call: "Uniform1i", want: 3},
		{name: "u_time", data: float32(1.5), call: "Uniform1f", want: float32(1.5)},
		{name: "u_time", data: 2.0, call: "Uniform1f", want: float32(2)},
		{name: "u_resolution", data: [2]float32{640, 480}, call: "Uniform2fv", want: []float32{640, 480}},
		{name: "u_tint", data: []float32{1, 0, 0}, call: "Uniform3fv", want: []float32{1, 0, 0}},
		{name: "u_color", data: [4]float32{0, 0, 0, 1}, call: "Uniform4fv", want: []float32{0, 0, 0, 1}},
		{name: "u_weights", data: 0.25, call: "Uniform1f", want: float32(0.25)},
	}
	for _, tt := range tests {
		t.Run(tt.call+"/"+tt.name, func(t *testing.T) {
			fake, program := newProgram(t)
			program.Use()
			fake.ResetCalls()

			require.NoError(t, program.SetUniform(tt.name, tt.data))

			require.Equal(t, []string{tt.call}, fake.Names())
			got, ok := fake.UniformValue(program.ID(), program.Uniforms()[tt.name].Location)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetUniformMatrix(t *testing.T) {
	fake, program := newProgram(t)
	program.Use()
	fake.ResetCalls()

	m := gfx.Ortho2D(200, 100)
	require.NoError(t, program.SetUniformMatrix("u_projectionMatrix", m, false))

	calls := fake.Named("UniformMatrix4fv")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"UniformMatrix4fv"}, fake.Names())
	assert.Equal(t, false, calls[0].Args[1])
	assert.Equal(t, m[:], calls[0].Args[2])
}

func TestSetUniform_Sampler(t *testing.T) {
	fake, program := newProgram(t)
	factory := gfx.NewFactory(fake, gfx.Capabilities{})
	first := factory.CreateTexture(gfx.TextureConfig{})
	second := factory.CreateTexture(gfx.TextureConfig{})
	fake.ResetCalls()

	require.NoError(t, program.SetUniform("u_second", second))
	require.NoError(t, program.SetUniform("u_first", first.ID))

	assert.Equal(t, []string{"ActiveTexture", "Uniform1i", "BindTexture", "ActiveTexture", "Uniform1i", "BindTexture"}, fake.Names())
	assert.Equal(t, second.ID, fake.BoundTexture(1, gl.TEXTURE_2D))
	assert.Equal(t, first.ID, fake.BoundTexture(0, gl.TEXTURE_2D))
	assert.Equal(t, []any{gltest.UniformLocation(3), 1}, fake.Named("Uniform1i")[0].Args)
}

func TestSetUniform_Ignored(t *testing.T) {
	fake, program := newProgram(t)

	assert.NoError(t, program.SetUniform("u_missing", 1))
	assert.NoError(t, program.SetUniform("u_normal", make([]float32, 9)))
	assert.NoError(t, program.SetUniformMatrix("u_missing", gfx.Mat4{}, true))

	assert.Empty(t, fake.Calls)
}

func TestSetUniform_ValueMismatch(t *testing.T) {
	fake, program := newProgram(t)

	assert.ErrorIs(t, program.SetUniform("u_resolution", []float32{1, 2, 3}), gfx.ErrUniformValue)
	assert.ErrorIs(t, program.SetUniform("u_count", "three"), gfx.ErrUniformValue)
	assert.ErrorIs(t, program.SetUniform("u_first", 0), gfx.ErrUniformValue)
	assert.Empty(t, fake.Calls)
}

func TestSetUniform_FixedArrayLength(t *testing.T) {
	fake, program := newProgram(t)

	assert.ErrorIs(t, program.SetUniform("u_color", gfx.Ortho2D(640, 480)), gfx.ErrUniformValue)
	assert.ErrorIs(t, program.SetUniform("u_resolution", [4]float32{1, 2, 3, 4}), gfx.ErrUniformValue)
	assert.ErrorIs(t, program.SetUniform("u_resolution", [16]float32{}), gfx.ErrUniformValue)
	assert.ErrorIs(t, program.SetUniformMatrix("u_projectionMatrix", [4]float32{1, 0, 0, 1}, false), gfx.ErrUniformValue)
	assert.Empty(t, fake.Calls)

	require.NoError(t, program.SetUniform("u_resolution", []float32{1, 2, 3, 4}))
	assert.Equal(t, []float32{1, 2, 3, 4}, fake.Named("Uniform2fv")[0].Args[1])
}

func TestAttribLocation(t *testing.T) {
	_, program := newProgram(t)

	loc, err := program.AttribLocation("a_uv")
	require.NoError(t, err)
	assert.Equal(t, gl.Attrib(1), loc)

	_, err = program.AttribLocation("a_offset")
	assert.ErrorIs(t, err, gfx.ErrUnknownAttribute)
}

func TestSetAttrib(t *testing.T) {
	fake, program := newProgram(t)
	factory := gfx.NewFactory(fake, gfx.Capabilities{})
	attr, err := factory.CreateVertexAttribute(gfx.VertexAttributeConfig{
		Data:   make([]float32, 16),
		Size:   2,
		Stride: 4,
		Offset: 2,
	})
	require.NoError(t, err)
	vao := fake.CreateVertexArray()
	fake.BindVertexArray(vao)
	fake.ResetCalls()

	program.SetAttrib("a_uv", attr)

	st := fake.VertexArrayState(vao)[1]
	assert.True(t, st.Enabled)
	assert.Equal(t, attr.Buffer, st.Buffer)
	assert.Equal(t, 2, st.Size)
	assert.Equal(t, 16, st.Stride)
	assert.Equal(t, 8, st.Offset)

	fake.ResetCalls()
	program.SetAttrib("a_missing", attr)
	assert.Empty(t, fake.Calls)
}

func TestResetAttributes(t *testing.T) {
	fake, program := newProgram(t)
	require.Len(t, program.Attributes(), 2)

	fake.Attributes = append(fake.Attributes, gl.ActiveInfo{Name: "a_offset", Size: 1, Type: gl.FLOAT_VEC2})
	assert.NotContains(t, program.Attributes(), "a_offset")
	program.ResetAttributes()

	attrs := program.Attributes()
	require.Len(t, attrs, 3)
	assert.Equal(t, gfx.AttributeInfo{Name: "a_offset", Location: 2, Size: 1, Type: gl.FLOAT_VEC2}, attrs["a_offset"])
	loc, err := program.AttribLocation("a_offset")
	require.NoError(t, err)
	assert.Equal(t, gl.Attrib(2), loc)
}

func TestProgram_UseDelete(t *testing.T) {
	fake, program := newProgram(t)

	program.Use()
	assert.Equal(t, program.ID(), fake.CurrentProgram())
	program.Unuse()
	assert.Zero(t, fake.CurrentProgram())

	program.Delete()
	program.Delete()
	assert.Equal(t, 0, fake.Live(gltest.KindProgram))
	assert.Len(t, fake.Named("DeleteProgram"), 1)
}
