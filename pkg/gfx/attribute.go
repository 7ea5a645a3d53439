package gfx

import (
	"fmt"

	"github.com/kjkrol/metaball/pkg/gl"
)

// VertexAttributeConfig describes a buffer of vertex data. Data must be a
// []float32, []uint16 or []uint8 and Size (components per vertex) must be
// set. Offset and Stride are in elements, not bytes. Zero Target, Type and
// Usage default to ARRAY_BUFFER, FLOAT and STATIC_DRAW.
type VertexAttributeConfig struct {
	Target     gl.Enum
	Type       gl.Enum
	Data       any
	Usage      gl.Enum
	Normalized bool
	Offset     int
	Stride     int
	Size       int
}

// VertexAttribute is an uploaded buffer and the layout needed to bind it.
// It is owned by whoever created it and is not bound to any vertex array.
type VertexAttribute struct {
	ctx gl.Context

	Buffer          gl.Buffer
	Target          gl.Enum
	Type            gl.Enum
	BytesPerElement int
	Normalized      bool
	Offset          int
	Stride          int
	Size            int
	Count           int
}

// CreateVertexAttribute uploads conf.Data into a new buffer.
func (f *Factory) CreateVertexAttribute(conf VertexAttributeConfig) (*VertexAttribute, error) {
	if conf.Size <= 0 {
		return nil, fmt.Errorf("%w: component count %d", ErrAttributeConfig, conf.Size)
	}
	var (
		data  []byte
		width int
		count int
	)
	switch v := conf.Data.(type) {
	case []float32:
		data, width, count = gl.Float32Bytes(v), 4, len(v)
	case []uint16:
		data, width, count = gl.Uint16Bytes(v), 2, len(v)
	case []uint8:
		data, width, count = v, 1, len(v)
	default:
		return nil, fmt.Errorf("%w: unsupported data %T", ErrAttributeConfig, conf.Data)
	}
	if conf.Target == 0 {
		conf.Target = gl.ARRAY_BUFFER
	}
	if conf.Type == 0 {
		conf.Type = gl.FLOAT
	}
	if conf.Usage == 0 {
		conf.Usage = gl.STATIC_DRAW
	}

	buffer := f.ctx.CreateBuffer()
	f.ctx.BindBuffer(conf.Target, buffer)
	f.ctx.BufferData(conf.Target, data, conf.Usage)
	return &VertexAttribute{
		ctx:             f.ctx,
		Buffer:          buffer,
		Target:          conf.Target,
		Type:            conf.Type,
		BytesPerElement: width,
		Normalized:      conf.Normalized,
		Offset:          conf.Offset,
		Stride:          conf.Stride,
		Size:            conf.Size,
		Count:           count,
	}, nil
}

// Release deletes the buffer. Calling it again is a no-op.
func (a *VertexAttribute) Release() {
	if a == nil || a.Buffer == 0 {
		return
	}
	a.ctx.DeleteBuffer(a.Buffer)
	a.Buffer = 0
}
