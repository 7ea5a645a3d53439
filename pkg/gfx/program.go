package gfx

import (
	"fmt"

	"github.com/kjkrol/metaball/pkg/gl"
)

// Program is a linked program with its reflected uniform and attribute
// tables. It owns the tables but not the buffers bound through SetAttrib.
type Program struct {
	ctx        gl.Context
	id         gl.Program
	uniforms   UniformTable
	attributes AttributeTable
}

// NewProgram compiles and links a program and reflects its interface.
func NewProgram(ctx gl.Context, vertexSource, fragmentSource string) (*Program, error) {
	id, err := LinkProgram(ctx, vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	return &Program{
		ctx:        ctx,
		id:         id,
		uniforms:   ReflectUniforms(ctx, id),
		attributes: ReflectAttributes(ctx, id),
	}, nil
}

func (p *Program) ID() gl.Program {
	return p.id
}

func (p *Program) Uniforms() UniformTable {
	return p.uniforms
}

func (p *Program) Attributes() AttributeTable {
	return p.attributes
}

// SetUniform uploads data to the named uniform of the current program.
// Unknown names and uniforms of unsupported types are ignored, so programs
// can share call sites even when a compiler optimized a uniform away.
func (p *Program) SetUniform(name string, data any) error {
	return p.setUniform(name, data, false)
}

// SetUniformMatrix is SetUniform for matrix uniforms, which take a transpose
// flag.
func (p *Program) SetUniformMatrix(name string, data any, transpose bool) error {
	return p.setUniform(name, data, transpose)
}

func (p *Program) setUniform(name string, data any, transpose bool) error {
	u, ok := p.uniforms[name]
	if !ok || u.setter == nil {
		return nil
	}
	if err := u.setter(p.ctx, u.Location, data, transpose); err != nil {
		return fmt.Errorf("uniform %q: %w", name, err)
	}
	return nil
}

// SetAttrib binds attr to the named attribute slot of the current vertex
// array. Unknown names are ignored. Stride and offset are converted from
// elements to bytes.
func (p *Program) SetAttrib(name string, attr *VertexAttribute) {
	info, ok := p.attributes[name]
	if !ok || attr == nil {
		return
	}
	p.ctx.BindBuffer(gl.ARRAY_BUFFER, attr.Buffer)
	p.ctx.EnableVertexAttribArray(info.Location)
	p.ctx.VertexAttribPointer(
		info.Location,
		attr.Size,
		attr.Type,
		attr.Normalized,
		attr.Stride*attr.BytesPerElement,
		attr.Offset*attr.BytesPerElement,
	)
}

// AttribLocation returns the slot of a named attribute. Unlike the setters
// it fails for unknown names: callers need a real slot to configure.
func (p *Program) AttribLocation(name string) (gl.Attrib, error) {
	info, ok := p.attributes[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return info.Location, nil
}

// ResetAttributes reflects the attribute table again.
func (p *Program) ResetAttributes() {
	p.attributes = ReflectAttributes(p.ctx, p.id)
}

// Use installs the program as current.
func (p *Program) Use() {
	p.ctx.UseProgram(p.id)
}

// Unuse installs no program.
func (p *Program) Unuse() {
	p.ctx.UseProgram(0)
}

// Delete releases the program. The handle must not be used afterwards.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.ctx.DeleteProgram(p.id)
	p.id = 0
	p.uniforms = nil
	p.attributes = nil
}
