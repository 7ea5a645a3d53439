package gfx

import (
	"errors"
	"fmt"

	"github.com/kjkrol/metaball/pkg/gl"
)

// Attribute and uniform names a quad program is expected to declare.
const (
	AttribPosition    = "a_position"
	AttribUV          = "a_uv"
	AttribOffset      = "a_offset"
	UniformProjection = "u_projectionMatrix"
)

const (
	defaultQuadSize = 70
	quadVertexCount = 6
)

// QuadConfig describes one quad batch. Positions holds one x,y pair per
// instance when Instanced, otherwise the single x,y center the geometry is
// translated to. Viewport is the pixel size the projection maps to clip
// space. Zero Width, Height and Usage default to 70, 70 and STATIC_DRAW.
type QuadConfig struct {
	Width     float32
	Height    float32
	Program   *Program
	Usage     gl.Enum
	Instanced bool
	Positions []float32
	Viewport  [2]float32
}

// QuadBatch is a vertex array of one quad, optionally instanced, together
// with the buffers it owns.
type QuadBatch struct {
	ctx       gl.Context
	vao       gl.VertexArray
	buffers   []*VertexAttribute
	instanced bool
	instances int
}

func (q *QuadBatch) VertexArray() gl.VertexArray {
	return q.vao
}

// Instances is the number of instances, 1 for a plain quad.
func (q *QuadBatch) Instances() int {
	return q.instances
}

func (q *QuadBatch) Instanced() bool {
	return q.instanced
}

// Draw issues the draw call for the batch with its vertex array bound.
func (q *QuadBatch) Draw() {
	q.ctx.BindVertexArray(q.vao)
	if q.instanced {
		q.ctx.DrawArraysInstanced(gl.TRIANGLES, 0, quadVertexCount, q.instances)
		return
	}
	q.ctx.DrawArrays(gl.TRIANGLES, 0, quadVertexCount)
}

// Release deletes the vertex array and every buffer it references.
func (q *QuadBatch) Release() {
	if q == nil {
		return
	}
	if q.vao != 0 {
		q.ctx.DeleteVertexArray(q.vao)
		q.vao = 0
	}
	for _, b := range q.buffers {
		b.Release()
	}
	q.buffers = nil
}

// QuadVertices returns two triangles covering a width x height rectangle
// centered on (cx, cy), sharing the top-left to bottom-right diagonal.
func QuadVertices(width, height, cx, cy float32) []float32 {
	hw, hh := width*0.5, height*0.5
	return []float32{
		cx - hw, cy - hh,
		cx + hw, cy - hh,
		cx + hw, cy + hh,
		cx - hw, cy - hh,
		cx + hw, cy + hh,
		cx - hw, cy + hh,
	}
}

// QuadUVs returns texture coordinates matching QuadVertices.
func QuadUVs() []float32 {
	return []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 0,
		1, 1,
		0, 1,
	}
}

// BuildQuad uploads the geometry of conf into a new vertex array and, as a
// side effect, uploads the projection for conf.Viewport to the program.
func BuildQuad(factory *Factory, conf QuadConfig) (*QuadBatch, error) {
	if conf.Program == nil {
		return nil, errors.New("gfx: quad needs a program")
	}
	if conf.Width == 0 {
		conf.Width = defaultQuadSize
	}
	if conf.Height == 0 {
		conf.Height = defaultQuadSize
	}
	if conf.Usage == 0 {
		conf.Usage = gl.STATIC_DRAW
	}
	if len(conf.Positions) < 2 || len(conf.Positions)%2 != 0 {
		return nil, fmt.Errorf("gfx: quad positions must be x,y pairs, got %d values", len(conf.Positions))
	}
	if conf.Viewport[0] <= 0 || conf.Viewport[1] <= 0 {
		return nil, fmt.Errorf("gfx: quad viewport must be positive, got %v", conf.Viewport)
	}

	ctx := factory.Context()
	program := conf.Program
	batch := &QuadBatch{ctx: ctx, instances: 1}

	var cx, cy float32
	if !conf.Instanced {
		cx, cy = conf.Positions[0], conf.Positions[1]
	}
	batch.vao = ctx.CreateVertexArray()

	position, err := factory.CreateVertexAttribute(VertexAttributeConfig{
		Data:  QuadVertices(conf.Width, conf.Height, cx, cy),
		Usage: conf.Usage,
		Size:  2,
	})
	if err != nil {
		batch.Release()
		return nil, err
	}
	batch.buffers = append(batch.buffers, position)
	ctx.BindVertexArray(batch.vao)
	program.SetAttrib(AttribPosition, position)

	uv, err := factory.CreateVertexAttribute(VertexAttributeConfig{
		Data:  QuadUVs(),
		Usage: conf.Usage,
		Size:  2,
	})
	if err != nil {
		ctx.BindVertexArray(0)
		batch.Release()
		return nil, err
	}
	batch.buffers = append(batch.buffers, uv)
	program.SetAttrib(AttribUV, uv)

	if conf.Instanced {
		offsets, err := factory.CreateVertexAttribute(VertexAttributeConfig{
			Data:  conf.Positions,
			Usage: conf.Usage,
			Size:  2,
		})
		if err != nil {
			ctx.BindVertexArray(0)
			batch.Release()
			return nil, err
		}
		batch.buffers = append(batch.buffers, offsets)
		program.SetAttrib(AttribOffset, offsets)
		slot, err := program.AttribLocation(AttribOffset)
		if err != nil {
			ctx.BindVertexArray(0)
			batch.Release()
			return nil, err
		}
		ctx.VertexAttribDivisor(slot, 1)
		batch.instanced = true
		batch.instances = len(conf.Positions) / 2
	}
	ctx.BindVertexArray(0)

	program.Use()
	err = program.SetUniformMatrix(UniformProjection, Ortho2D(conf.Viewport[0], conf.Viewport[1]), false)
	program.Unuse()
	if err != nil {
		batch.Release()
		return nil, err
	}
	Logger().Debug("gfx: quad built", "vao", batch.vao, "instances", batch.instances)
	return batch, nil
}
