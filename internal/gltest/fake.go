// Package gltest provides a recording gl.Context that needs no GPU.
package gltest

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/kjkrol/metaball/pkg/gl"
)

type Kind string

const (
	KindShader      Kind = "shader"
	KindProgram     Kind = "program"
	KindBuffer      Kind = "buffer"
	KindVertexArray Kind = "vertexArray"
	KindTexture     Kind = "texture"
	KindFramebuffer Kind = "framebuffer"
)

// Call is one recorded context call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// AttribState is the layout recorded for one attribute slot of a vertex array.
type AttribState struct {
	Enabled    bool
	Buffer     gl.Buffer
	Size       int
	Type       gl.Enum
	Normalized bool
	Stride     int
	Offset     int
	Divisor    int
}

// Fake is a gl.Context that records every call and tracks object lifetimes.
// The zero value is not usable; call New.
type Fake struct {
	// Extensions reports which optional capabilities are present.
	Extensions map[string]bool
	// CompileError returns a non-empty diagnostic for sources that must fail
	// to compile. Sources containing "#error" fail when it is nil.
	CompileError func(stage gl.Enum, src string) string
	// LinkError, when non-empty, makes every link fail with that diagnostic.
	LinkError string
	// Uniforms and Attributes are the active interface reported for every
	// linked program, in enumeration order.
	Uniforms   []gl.ActiveInfo
	Attributes []gl.ActiveInfo
	// FromSource makes each program report the interface declared by its
	// own attached shaders, read at link time, instead of Uniforms and
	// Attributes.
	FromSource bool

	Calls []Call

	next    uint32
	live    map[Kind]map[uint32]bool
	deleted map[Kind]int

	shaderSource map[gl.Shader]string
	shaderStage  map[gl.Shader]gl.Enum
	shaderLog    map[gl.Shader]string
	attached     map[gl.Program][]gl.Shader
	programLog   map[gl.Program]string
	linked       map[gl.Program]bool
	interfaces   map[gl.Program]programInterface

	buffers       map[gl.Buffer][]byte
	arrayBuffer   gl.Buffer
	vertexArray   gl.VertexArray
	vertexArrays  map[gl.VertexArray]map[gl.Attrib]*AttribState
	program       gl.Program
	framebuffer   gl.Framebuffer
	activeTexture gl.Enum
	textures      map[gl.Enum]gl.Texture
	uniformValues map[gl.Program]map[gl.Uniform]any
}

var _ gl.Context = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		Extensions:    make(map[string]bool),
		live:          make(map[Kind]map[uint32]bool),
		deleted:       make(map[Kind]int),
		shaderSource:  make(map[gl.Shader]string),
		shaderStage:   make(map[gl.Shader]gl.Enum),
		shaderLog:     make(map[gl.Shader]string),
		attached:      make(map[gl.Program][]gl.Shader),
		programLog:    make(map[gl.Program]string),
		linked:        make(map[gl.Program]bool),
		interfaces:    make(map[gl.Program]programInterface),
		buffers:       make(map[gl.Buffer][]byte),
		vertexArrays:  make(map[gl.VertexArray]map[gl.Attrib]*AttribState),
		activeTexture: gl.TEXTURE0,
		textures:      make(map[gl.Enum]gl.Texture),
		uniformValues: make(map[gl.Program]map[gl.Uniform]any),
	}
}

// WithAllExtensions marks all four probed capabilities as present.
func (f *Fake) WithAllExtensions() *Fake {
	for _, name := range []string{gl.ExtColorBufferFloat, gl.ExtTextureFloatLinear, gl.ExtColorBufferHalfFloat, gl.ExtTextureHalfFloatLinear} {
		f.Extensions[name] = true
	}
	return f
}

func (f *Fake) record(name string, args ...any) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *Fake) create(kind Kind) uint32 {
	f.next++
	if f.live[kind] == nil {
		f.live[kind] = make(map[uint32]bool)
	}
	f.live[kind][f.next] = true
	return f.next
}

func (f *Fake) destroy(kind Kind, id uint32) {
	if id == 0 || !f.live[kind][id] {
		return
	}
	delete(f.live[kind], id)
	f.deleted[kind]++
}

// Live returns the number of objects of kind that were created and not deleted.
func (f *Fake) Live(kind Kind) int {
	return len(f.live[kind])
}

// IsLive reports whether the object id of kind exists.
func (f *Fake) IsLive(kind Kind, id uint32) bool {
	return f.live[kind][id]
}

// Deleted returns how many objects of kind have been deleted.
func (f *Fake) Deleted(kind Kind) int {
	return f.deleted[kind]
}

// Named returns the recorded calls with the given name, in order.
func (f *Fake) Named(name string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the names of all recorded calls, in order.
func (f *Fake) Names() []string {
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Name
	}
	return out
}

// Index returns the position of the first call named name at or after from,
// or -1.
func (f *Fake) Index(name string, from int) int {
	for i := from; i < len(f.Calls); i++ {
		if f.Calls[i].Name == name {
			return i
		}
	}
	return -1
}

// ResetCalls forgets recorded calls but keeps object state.
func (f *Fake) ResetCalls() {
	f.Calls = nil
}

// BufferFloats decodes the contents of b as float32 values.
func (f *Fake) BufferFloats(b gl.Buffer) []float32 {
	data := f.buffers[b]
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}

// VertexArrayState returns the attribute layout recorded for a.
func (f *Fake) VertexArrayState(a gl.VertexArray) map[gl.Attrib]AttribState {
	out := make(map[gl.Attrib]AttribState)
	for slot, st := range f.vertexArrays[a] {
		out[slot] = *st
	}
	return out
}

// UniformValue returns the last value uploaded to location u of program p.
func (f *Fake) UniformValue(p gl.Program, u gl.Uniform) (any, bool) {
	v, ok := f.uniformValues[p][u]
	return v, ok
}

// CurrentProgram returns the program installed by the last UseProgram.
func (f *Fake) CurrentProgram() gl.Program {
	return f.program
}

// CurrentFramebuffer returns the framebuffer bound by the last BindFramebuffer.
func (f *Fake) CurrentFramebuffer() gl.Framebuffer {
	return f.framebuffer
}

func (f *Fake) ShaderPreamble() string {
	return ""
}

func (f *Fake) Extension(name string) bool {
	f.record("Extension", name)
	return f.Extensions[name]
}

func (f *Fake) CreateShader(stage gl.Enum) gl.Shader {
	s := gl.Shader(f.create(KindShader))
	f.shaderStage[s] = stage
	f.record("CreateShader", stage, s)
	return s
}

func (f *Fake) ShaderSource(s gl.Shader, src string) {
	f.shaderSource[s] = src
	f.record("ShaderSource", s, src)
}

func (f *Fake) CompileShader(s gl.Shader) {
	src := f.shaderSource[s]
	var log string
	if f.CompileError != nil {
		log = f.CompileError(f.shaderStage[s], src)
	} else if strings.Contains(src, "#error") {
		log = "ERROR: 0:1: '#error' : compilation terminated"
	}
	f.shaderLog[s] = log
	f.record("CompileShader", s)
}

func (f *Fake) GetShaderi(s gl.Shader, pname gl.Enum) int {
	switch pname {
	case gl.COMPILE_STATUS:
		if f.shaderLog[s] != "" {
			return gl.FALSE
		}
		return gl.TRUE
	case gl.INFO_LOG_LENGTH:
		return len(f.shaderLog[s])
	}
	return 0
}

func (f *Fake) GetShaderInfoLog(s gl.Shader) string {
	return f.shaderLog[s]
}

func (f *Fake) DeleteShader(s gl.Shader) {
	f.destroy(KindShader, uint32(s))
	f.record("DeleteShader", s)
}

func (f *Fake) CreateProgram() gl.Program {
	p := gl.Program(f.create(KindProgram))
	f.record("CreateProgram", p)
	return p
}

func (f *Fake) AttachShader(p gl.Program, s gl.Shader) {
	f.attached[p] = append(f.attached[p], s)
	f.record("AttachShader", p, s)
}

func (f *Fake) DetachShader(p gl.Program, s gl.Shader) {
	shaders := f.attached[p]
	for i, v := range shaders {
		if v == s {
			f.attached[p] = append(shaders[:i], shaders[i+1:]...)
			break
		}
	}
	f.record("DetachShader", p, s)
}

// Attached returns the shaders currently attached to p.
func (f *Fake) Attached(p gl.Program) []gl.Shader {
	return f.attached[p]
}

type programInterface struct {
	uniforms   []gl.ActiveInfo
	attributes []gl.ActiveInfo
}

func (f *Fake) LinkProgram(p gl.Program) {
	f.programLog[p] = f.LinkError
	f.linked[p] = f.LinkError == ""
	if f.FromSource {
		var vertexSrc, fragmentSrc string
		for _, s := range f.attached[p] {
			switch f.shaderStage[s] {
			case gl.VERTEX_SHADER:
				vertexSrc = f.shaderSource[s]
			case gl.FRAGMENT_SHADER:
				fragmentSrc = f.shaderSource[s]
			}
		}
		var pi programInterface
		pi.uniforms, pi.attributes = Interface(vertexSrc, fragmentSrc)
		f.interfaces[p] = pi
	}
	f.record("LinkProgram", p)
}

func (f *Fake) uniformsOf(p gl.Program) []gl.ActiveInfo {
	if pi, ok := f.interfaces[p]; ok {
		return pi.uniforms
	}
	return f.Uniforms
}

func (f *Fake) attributesOf(p gl.Program) []gl.ActiveInfo {
	if pi, ok := f.interfaces[p]; ok {
		return pi.attributes
	}
	return f.Attributes
}

func (f *Fake) GetProgrami(p gl.Program, pname gl.Enum) int {
	switch pname {
	case gl.LINK_STATUS:
		if f.linked[p] {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		return len(f.programLog[p])
	case gl.ACTIVE_UNIFORMS:
		return len(f.uniformsOf(p))
	case gl.ACTIVE_ATTRIBUTES:
		return len(f.attributesOf(p))
	}
	return 0
}

func (f *Fake) GetProgramInfoLog(p gl.Program) string {
	return f.programLog[p]
}

func (f *Fake) DeleteProgram(p gl.Program) {
	f.destroy(KindProgram, uint32(p))
	f.record("DeleteProgram", p)
}

func (f *Fake) UseProgram(p gl.Program) {
	f.program = p
	f.record("UseProgram", p)
}

func (f *Fake) GetActiveUniform(p gl.Program, index int) gl.ActiveInfo {
	f.record("GetActiveUniform", p, index)
	uniforms := f.uniformsOf(p)
	if index < 0 || index >= len(uniforms) {
		return gl.ActiveInfo{}
	}
	return uniforms[index]
}

func (f *Fake) GetActiveAttrib(p gl.Program, index int) gl.ActiveInfo {
	f.record("GetActiveAttrib", p, index)
	attributes := f.attributesOf(p)
	if index < 0 || index >= len(attributes) {
		return gl.ActiveInfo{}
	}
	return attributes[index]
}

// UniformLocation is the location the fake reports for the i-th active uniform.
func UniformLocation(i int) gl.Uniform {
	return gl.Uniform(100 + i)
}

func (f *Fake) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.record("GetUniformLocation", p, name)
	for i, u := range f.uniformsOf(p) {
		if u.Name == name {
			return UniformLocation(i)
		}
	}
	return gl.NoUniform
}

func (f *Fake) GetAttribLocation(p gl.Program, name string) int {
	f.record("GetAttribLocation", p, name)
	for i, a := range f.attributesOf(p) {
		if a.Name == name {
			return i
		}
	}
	return -1
}

func (f *Fake) setUniform(name string, u gl.Uniform, v any) {
	if f.uniformValues[f.program] == nil {
		f.uniformValues[f.program] = make(map[gl.Uniform]any)
	}
	f.uniformValues[f.program][u] = v
	f.record(name, u, v)
}

func (f *Fake) Uniform1i(u gl.Uniform, v int) {
	f.setUniform("Uniform1i", u, v)
}

func (f *Fake) Uniform1f(u gl.Uniform, v float32) {
	f.setUniform("Uniform1f", u, v)
}

func (f *Fake) Uniform2fv(u gl.Uniform, v []float32) {
	f.setUniform("Uniform2fv", u, append([]float32(nil), v...))
}

func (f *Fake) Uniform3fv(u gl.Uniform, v []float32) {
	f.setUniform("Uniform3fv", u, append([]float32(nil), v...))
}

func (f *Fake) Uniform4fv(u gl.Uniform, v []float32) {
	f.setUniform("Uniform4fv", u, append([]float32(nil), v...))
}

func (f *Fake) UniformMatrix4fv(u gl.Uniform, transpose bool, v []float32) {
	if f.uniformValues[f.program] == nil {
		f.uniformValues[f.program] = make(map[gl.Uniform]any)
	}
	m := append([]float32(nil), v...)
	f.uniformValues[f.program][u] = m
	f.record("UniformMatrix4fv", u, transpose, m)
}

func (f *Fake) CreateBuffer() gl.Buffer {
	b := gl.Buffer(f.create(KindBuffer))
	f.record("CreateBuffer", b)
	return b
}

func (f *Fake) BindBuffer(target gl.Enum, b gl.Buffer) {
	if target == gl.ARRAY_BUFFER {
		f.arrayBuffer = b
	}
	f.record("BindBuffer", target, b)
}

func (f *Fake) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	if target == gl.ARRAY_BUFFER && f.arrayBuffer != 0 {
		f.buffers[f.arrayBuffer] = append([]byte(nil), data...)
	}
	f.record("BufferData", target, len(data), usage)
}

func (f *Fake) DeleteBuffer(b gl.Buffer) {
	f.destroy(KindBuffer, uint32(b))
	delete(f.buffers, b)
	f.record("DeleteBuffer", b)
}

func (f *Fake) CreateVertexArray() gl.VertexArray {
	a := gl.VertexArray(f.create(KindVertexArray))
	f.vertexArrays[a] = make(map[gl.Attrib]*AttribState)
	f.record("CreateVertexArray", a)
	return a
}

func (f *Fake) BindVertexArray(a gl.VertexArray) {
	f.vertexArray = a
	f.record("BindVertexArray", a)
}

func (f *Fake) DeleteVertexArray(a gl.VertexArray) {
	f.destroy(KindVertexArray, uint32(a))
	f.record("DeleteVertexArray", a)
}

func (f *Fake) attrib(a gl.Attrib) *AttribState {
	slots := f.vertexArrays[f.vertexArray]
	if slots == nil {
		slots = make(map[gl.Attrib]*AttribState)
		f.vertexArrays[f.vertexArray] = slots
	}
	st := slots[a]
	if st == nil {
		st = &AttribState{}
		slots[a] = st
	}
	return st
}

func (f *Fake) EnableVertexAttribArray(a gl.Attrib) {
	f.attrib(a).Enabled = true
	f.record("EnableVertexAttribArray", a)
}

func (f *Fake) VertexAttribPointer(a gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	st := f.attrib(a)
	st.Buffer = f.arrayBuffer
	st.Size = size
	st.Type = ty
	st.Normalized = normalized
	st.Stride = stride
	st.Offset = offset
	f.record("VertexAttribPointer", a, size, ty, normalized, stride, offset)
}

func (f *Fake) VertexAttribDivisor(a gl.Attrib, divisor int) {
	f.attrib(a).Divisor = divisor
	f.record("VertexAttribDivisor", a, divisor)
}

func (f *Fake) CreateTexture() gl.Texture {
	t := gl.Texture(f.create(KindTexture))
	f.record("CreateTexture", t)
	return t
}

func (f *Fake) ActiveTexture(unit gl.Enum) {
	f.activeTexture = unit
	f.record("ActiveTexture", unit)
}

// BoundTexture returns the texture bound to target on unit TEXTURE0+unit.
func (f *Fake) BoundTexture(unit int, target gl.Enum) gl.Texture {
	return f.textures[gl.Enum(gl.TEXTURE0+unit)<<16|target]
}

func (f *Fake) BindTexture(target gl.Enum, t gl.Texture) {
	f.textures[f.activeTexture<<16|target] = t
	f.record("BindTexture", target, t)
}

func (f *Fake) PixelStorei(pname gl.Enum, param int) {
	f.record("PixelStorei", pname, param)
}

func (f *Fake) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexImage2D", target, level, internalFormat, width, height, format, ty, len(data))
}

func (f *Fake) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri", target, pname, param)
}

func (f *Fake) DeleteTexture(t gl.Texture) {
	f.destroy(KindTexture, uint32(t))
	f.record("DeleteTexture", t)
}

func (f *Fake) CreateFramebuffer() gl.Framebuffer {
	fb := gl.Framebuffer(f.create(KindFramebuffer))
	f.record("CreateFramebuffer", fb)
	return fb
}

func (f *Fake) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.framebuffer = fb
	f.record("BindFramebuffer", target, fb)
}

func (f *Fake) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D", target, attachment, texTarget, t, level)
}

func (f *Fake) DeleteFramebuffer(fb gl.Framebuffer) {
	f.destroy(KindFramebuffer, uint32(fb))
	f.record("DeleteFramebuffer", fb)
}

func (f *Fake) Viewport(x, y, width, height int) {
	f.record("Viewport", x, y, width, height)
}

func (f *Fake) ClearColor(r, g, b, a float32) {
	f.record("ClearColor", r, g, b, a)
}

func (f *Fake) Clear(mask gl.Enum) {
	f.record("Clear", mask)
}

func (f *Fake) Enable(cap gl.Enum) {
	f.record("Enable", cap)
}

func (f *Fake) BlendFunc(sfactor, dfactor gl.Enum) {
	f.record("BlendFunc", sfactor, dfactor)
}

func (f *Fake) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gl.Enum) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (f *Fake) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays", mode, first, count)
}

func (f *Fake) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.record("DrawArraysInstanced", mode, first, count, instances)
}
