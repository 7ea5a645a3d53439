//go:build !js

package backend

import (
	"fmt"
	"strings"
	"unsafe"

	glc "github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/metaball/pkg/gl"
)

// Functions is the desktop OpenGL 3.3 core backend. NewFunctions must be
// called with a current context on the thread that will issue every call.
type Functions struct {
	flipY      bool
	extensions map[string]bool
}

var _ gl.Context = (*Functions)(nil)

// Capabilities that the WebGL names guard are part of OpenGL 3.3 core.
var coreExtensions = map[string]bool{
	gl.ExtColorBufferFloat:       true,
	gl.ExtTextureFloatLinear:     true,
	gl.ExtColorBufferHalfFloat:   true,
	gl.ExtTextureHalfFloatLinear: true,
}

func NewFunctions() (*Functions, error) {
	if err := glc.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	f := &Functions{extensions: make(map[string]bool)}
	var n int32
	glc.GetIntegerv(glc.NUM_EXTENSIONS, &n)
	for i := int32(0); i < n; i++ {
		f.extensions[glc.GoStr(glc.GetStringi(glc.EXTENSIONS, uint32(i)))] = true
	}
	return f, nil
}

func (f *Functions) ShaderPreamble() string {
	return "#version 330 core\n"
}

func (f *Functions) Extension(name string) bool {
	if coreExtensions[name] {
		return true
	}
	return f.extensions[name] || f.extensions["GL_"+name]
}

func (f *Functions) CreateShader(stage gl.Enum) gl.Shader {
	return gl.Shader(glc.CreateShader(uint32(stage)))
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	csources, free := glc.Strs(src + "\x00")
	glc.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (f *Functions) CompileShader(s gl.Shader) {
	glc.CompileShader(uint32(s))
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var v int32
	glc.GetShaderiv(uint32(s), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	n := f.GetShaderi(s, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", n+1)
	glc.GetShaderInfoLog(uint32(s), int32(n), nil, glc.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *Functions) DeleteShader(s gl.Shader) {
	glc.DeleteShader(uint32(s))
}

func (f *Functions) CreateProgram() gl.Program {
	return gl.Program(glc.CreateProgram())
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	glc.AttachShader(uint32(p), uint32(s))
}

func (f *Functions) DetachShader(p gl.Program, s gl.Shader) {
	glc.DetachShader(uint32(p), uint32(s))
}

func (f *Functions) LinkProgram(p gl.Program) {
	glc.LinkProgram(uint32(p))
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	var v int32
	glc.GetProgramiv(uint32(p), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	n := f.GetProgrami(p, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", n+1)
	glc.GetProgramInfoLog(uint32(p), int32(n), nil, glc.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *Functions) DeleteProgram(p gl.Program) {
	glc.DeleteProgram(uint32(p))
}

func (f *Functions) UseProgram(p gl.Program) {
	glc.UseProgram(uint32(p))
}

const maxActiveNameLength = 256

func (f *Functions) GetActiveUniform(p gl.Program, index int) gl.ActiveInfo {
	var (
		length int32
		size   int32
		ty     uint32
		name   [maxActiveNameLength]uint8
	)
	glc.GetActiveUniform(uint32(p), uint32(index), maxActiveNameLength, &length, &size, &ty, &name[0])
	return gl.ActiveInfo{Name: string(name[:length]), Size: int(size), Type: gl.Enum(ty)}
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) gl.ActiveInfo {
	var (
		length int32
		size   int32
		ty     uint32
		name   [maxActiveNameLength]uint8
	)
	glc.GetActiveAttrib(uint32(p), uint32(index), maxActiveNameLength, &length, &size, &ty, &name[0])
	return gl.ActiveInfo{Name: string(name[:length]), Size: int(size), Type: gl.Enum(ty)}
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform(glc.GetUniformLocation(uint32(p), glc.Str(name+"\x00")))
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	return int(glc.GetAttribLocation(uint32(p), glc.Str(name+"\x00")))
}

func (f *Functions) Uniform1i(u gl.Uniform, v int) {
	glc.Uniform1i(int32(u), int32(v))
}

func (f *Functions) Uniform1f(u gl.Uniform, v float32) {
	glc.Uniform1f(int32(u), v)
}

func (f *Functions) Uniform2fv(u gl.Uniform, v []float32) {
	glc.Uniform2fv(int32(u), int32(len(v)/2), &v[0])
}

func (f *Functions) Uniform3fv(u gl.Uniform, v []float32) {
	glc.Uniform3fv(int32(u), int32(len(v)/3), &v[0])
}

func (f *Functions) Uniform4fv(u gl.Uniform, v []float32) {
	glc.Uniform4fv(int32(u), int32(len(v)/4), &v[0])
}

func (f *Functions) UniformMatrix4fv(u gl.Uniform, transpose bool, v []float32) {
	glc.UniformMatrix4fv(int32(u), int32(len(v)/16), transpose, &v[0])
}

func (f *Functions) CreateBuffer() gl.Buffer {
	var b uint32
	glc.GenBuffers(1, &b)
	return gl.Buffer(b)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	glc.BindBuffer(uint32(target), uint32(b))
}

func (f *Functions) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = glc.Ptr(data)
	}
	glc.BufferData(uint32(target), len(data), ptr, uint32(usage))
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	v := uint32(b)
	glc.DeleteBuffers(1, &v)
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	var a uint32
	glc.GenVertexArrays(1, &a)
	return gl.VertexArray(a)
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	glc.BindVertexArray(uint32(a))
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	v := uint32(a)
	glc.DeleteVertexArrays(1, &v)
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	glc.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) VertexAttribPointer(a gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	glc.VertexAttribPointerWithOffset(uint32(a), int32(size), uint32(ty), normalized, int32(stride), uintptr(offset))
}

func (f *Functions) VertexAttribDivisor(a gl.Attrib, divisor int) {
	glc.VertexAttribDivisor(uint32(a), uint32(divisor))
}

func (f *Functions) CreateTexture() gl.Texture {
	var t uint32
	glc.GenTextures(1, &t)
	return gl.Texture(t)
}

func (f *Functions) ActiveTexture(unit gl.Enum) {
	glc.ActiveTexture(uint32(unit))
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	glc.BindTexture(uint32(target), uint32(t))
}

// PixelStorei accepts gl.UNPACK_FLIP_Y_WEBGL, which desktop GL lacks; uploads
// flip rows themselves while it is set.
func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	if pname == gl.UNPACK_FLIP_Y_WEBGL {
		f.flipY = param != 0
		return
	}
	glc.PixelStorei(uint32(pname), int32(param))
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		if f.flipY {
			data = flipRows(data, height)
		}
		ptr = glc.Ptr(data)
	}
	glc.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), ptr)
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	glc.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	v := uint32(t)
	glc.DeleteTextures(1, &v)
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	var fb uint32
	glc.GenFramebuffers(1, &fb)
	return gl.Framebuffer(fb)
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	glc.BindFramebuffer(uint32(target), uint32(fb))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	glc.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t), int32(level))
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	v := uint32(fb)
	glc.DeleteFramebuffers(1, &v)
}

func (f *Functions) Viewport(x, y, width, height int) {
	glc.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	glc.ClearColor(r, g, b, a)
}

func (f *Functions) Clear(mask gl.Enum) {
	glc.Clear(uint32(mask))
}

func (f *Functions) Enable(cap gl.Enum) {
	glc.Enable(uint32(cap))
}

func (f *Functions) BlendFunc(sfactor, dfactor gl.Enum) {
	glc.BlendFunc(uint32(sfactor), uint32(dfactor))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gl.Enum) {
	glc.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	glc.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	glc.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}
