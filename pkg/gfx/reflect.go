package gfx

import (
	"fmt"
	"strings"

	"github.com/kjkrol/metaball/pkg/gl"
)

// uniformSetter uploads data to one uniform location. transpose is only
// read by matrix setters.
type uniformSetter func(ctx gl.Context, loc gl.Uniform, data any, transpose bool) error

// UniformInfo is one reflected active uniform. Unit is the texture unit of a
// sampler and -1 for every other type.
type UniformInfo struct {
	Name     string
	Location gl.Uniform
	Size     int
	Type     gl.Enum
	Unit     int

	setter uniformSetter
}

// Settable reports whether the uniform's type has a setter.
func (u *UniformInfo) Settable() bool {
	return u.setter != nil
}

type UniformTable map[string]*UniformInfo

// AttributeInfo is one reflected active attribute.
type AttributeInfo struct {
	Name     string
	Location gl.Attrib
	Size     int
	Type     gl.Enum
}

type AttributeTable map[string]AttributeInfo

var samplerTargets = map[gl.Enum]gl.Enum{
	gl.SAMPLER_2D:   gl.TEXTURE_2D,
	gl.SAMPLER_3D:   gl.TEXTURE_3D,
	gl.SAMPLER_CUBE: gl.TEXTURE_CUBE_MAP,
}

// ReflectUniforms enumerates the active uniforms of a linked program.
// Samplers get texture units 0, 1, 2... in enumeration order. Uniforms of
// types without a setter are recorded and silently ignored when set.
func ReflectUniforms(ctx gl.Context, program gl.Program) UniformTable {
	n := ctx.GetProgrami(program, gl.ACTIVE_UNIFORMS)
	table := make(UniformTable, n)
	units := 0
	for i := 0; i < n; i++ {
		info := ctx.GetActiveUniform(program, i)
		if info.Name == "" {
			continue
		}
		u := &UniformInfo{
			Name:     info.Name,
			Location: ctx.GetUniformLocation(program, info.Name),
			Size:     info.Size,
			Type:     info.Type,
			Unit:     -1,
		}
		if target, ok := samplerTargets[info.Type]; ok {
			u.Unit = units
			u.setter = samplerSetter(target, units)
			units++
		} else {
			u.setter = valueSetter(info.Type)
		}
		table[info.Name] = u
		if base, ok := strings.CutSuffix(info.Name, "[0]"); ok {
			table[base] = u
		}
		Logger().Debug("gfx: uniform", "program", program, "name", u.Name, "type", fmt.Sprintf("0x%x", uint32(u.Type)), "unit", u.Unit)
	}
	return table
}

// ReflectAttributes enumerates the active attributes of a linked program.
func ReflectAttributes(ctx gl.Context, program gl.Program) AttributeTable {
	n := ctx.GetProgrami(program, gl.ACTIVE_ATTRIBUTES)
	table := make(AttributeTable, n)
	for i := 0; i < n; i++ {
		info := ctx.GetActiveAttrib(program, i)
		if info.Name == "" {
			continue
		}
		loc := ctx.GetAttribLocation(program, info.Name)
		if loc < 0 {
			continue
		}
		table[info.Name] = AttributeInfo{
			Name:     info.Name,
			Location: gl.Attrib(loc),
			Size:     info.Size,
			Type:     info.Type,
		}
	}
	return table
}

func samplerSetter(target gl.Enum, unit int) uniformSetter {
	return func(ctx gl.Context, loc gl.Uniform, data any, _ bool) error {
		var texture gl.Texture
		switch v := data.(type) {
		case Texture:
			texture = v.ID
		case gl.Texture:
			texture = v
		default:
			return fmt.Errorf("%w: sampler wants a texture, got %T", ErrUniformValue, data)
		}
		ctx.ActiveTexture(gl.Enum(gl.TEXTURE0 + unit))
		ctx.Uniform1i(loc, unit)
		ctx.BindTexture(target, texture)
		return nil
	}
}

// valueSetter returns the setter for a non-sampler type, or nil when the
// type has none.
func valueSetter(ty gl.Enum) uniformSetter {
	switch ty {
	case gl.INT:
		return setInt
	case gl.FLOAT:
		return setFloat
	case gl.FLOAT_VEC2:
		return vectorSetter(2, gl.Context.Uniform2fv)
	case gl.FLOAT_VEC3:
		return vectorSetter(3, gl.Context.Uniform3fv)
	case gl.FLOAT_VEC4:
		return vectorSetter(4, gl.Context.Uniform4fv)
	case gl.FLOAT_MAT4:
		return setMat4
	default:
		return nil
	}
}

func setInt(ctx gl.Context, loc gl.Uniform, data any, _ bool) error {
	switch v := data.(type) {
	case int:
		ctx.Uniform1i(loc, v)
	case int32:
		ctx.Uniform1i(loc, int(v))
	case bool:
		if v {
			ctx.Uniform1i(loc, 1)
		} else {
			ctx.Uniform1i(loc, 0)
		}
	default:
		return fmt.Errorf("%w: int wants an integer, got %T", ErrUniformValue, data)
	}
	return nil
}

func setFloat(ctx gl.Context, loc gl.Uniform, data any, _ bool) error {
	switch v := data.(type) {
	case float32:
		ctx.Uniform1f(loc, v)
	case float64:
		ctx.Uniform1f(loc, float32(v))
	case int:
		ctx.Uniform1f(loc, float32(v))
	default:
		return fmt.Errorf("%w: float wants a number, got %T", ErrUniformValue, data)
	}
	return nil
}

func vectorSetter(n int, upload func(gl.Context, gl.Uniform, []float32)) uniformSetter {
	return func(ctx gl.Context, loc gl.Uniform, data any, _ bool) error {
		v, ok := floats(data, n)
		if !ok {
			return fmt.Errorf("%w: vec%d wants a multiple of %d floats, got %T", ErrUniformValue, n, n, data)
		}
		upload(ctx, loc, v)
		return nil
	}
}

func setMat4(ctx gl.Context, loc gl.Uniform, data any, transpose bool) error {
	v, ok := floats(data, 16)
	if !ok {
		return fmt.Errorf("%w: mat4 wants a multiple of 16 floats, got %T", ErrUniformValue, data)
	}
	ctx.UniformMatrix4fv(loc, transpose, v)
	return nil
}

// floats accepts a []float32 whose length is a positive multiple of n, or a
// fixed-size array of exactly n floats.
func floats(data any, n int) ([]float32, bool) {
	var v []float32
	fixed := true
	switch d := data.(type) {
	case []float32:
		v = d
		fixed = false
	case [2]float32:
		v = d[:]
	case [3]float32:
		v = d[:]
	case [4]float32:
		v = d[:]
	case [16]float32:
		v = d[:]
	case Mat4:
		v = d[:]
	default:
		return nil, false
	}
	if fixed && len(v) != n {
		return nil, false
	}
	if len(v) == 0 || len(v)%n != 0 {
		return nil, false
	}
	return v, true
}
