//go:build js && wasm

package backend

import (
	"errors"
	"syscall/js"

	"github.com/kjkrol/metaball/pkg/gl"
)

// Functions is the WebGL2 backend. WebGL objects are JS values, so they are
// kept in a table and handed out as integer handles.
type Functions struct {
	ctx js.Value

	uint8Array   js.Value
	float32Array js.Value
	uint16Array  js.Value

	objects  map[uint32]js.Value
	uniforms map[gl.Uniform]js.Value
	next     uint32
	nextLoc  gl.Uniform
}

var _ gl.Context = (*Functions)(nil)

func NewFunctions(ctx js.Value) (*Functions, error) {
	if ctx.IsUndefined() || ctx.IsNull() {
		return nil, errors.New("gl: webgl2 context is required")
	}
	return &Functions{
		ctx:          ctx,
		uint8Array:   js.Global().Get("Uint8Array"),
		float32Array: js.Global().Get("Float32Array"),
		uint16Array:  js.Global().Get("Uint16Array"),
		objects:      make(map[uint32]js.Value),
		uniforms:     make(map[gl.Uniform]js.Value),
	}, nil
}

func (f *Functions) track(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	f.next++
	f.objects[f.next] = v
	return f.next
}

func (f *Functions) lookup(id uint32) js.Value {
	if id == 0 {
		return js.Null()
	}
	v, ok := f.objects[id]
	if !ok {
		return js.Null()
	}
	return v
}

func (f *Functions) release(id uint32) js.Value {
	v := f.lookup(id)
	delete(f.objects, id)
	return v
}

func (f *Functions) location(u gl.Uniform) js.Value {
	v, ok := f.uniforms[u]
	if !ok {
		return js.Null()
	}
	return v
}

func (f *Functions) byteArray(data []byte) js.Value {
	arr := f.uint8Array.New(len(data))
	js.CopyBytesToJS(arr, data)
	return arr
}

// pixelArray wraps texel bytes in the typed array WebGL requires for ty.
func (f *Functions) pixelArray(data []byte, ty gl.Enum) js.Value {
	if len(data) == 0 {
		return js.Null()
	}
	bytes := f.byteArray(data)
	switch ty {
	case gl.FLOAT:
		return f.float32Array.New(bytes.Get("buffer"), 0, len(data)/4)
	case gl.HALF_FLOAT, gl.UNSIGNED_SHORT:
		return f.uint16Array.New(bytes.Get("buffer"), 0, len(data)/2)
	default:
		return bytes
	}
}

func (f *Functions) floatArray(v []float32) js.Value {
	arr := f.float32Array.New(len(v))
	bytes := f.uint8Array.New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(bytes, gl.Float32Bytes(v))
	return arr
}

func (f *Functions) ShaderPreamble() string {
	return "#version 300 es\nprecision highp float;\nprecision highp int;\n"
}

func (f *Functions) Extension(name string) bool {
	return f.ctx.Call("getExtension", name).Truthy()
}

func (f *Functions) CreateShader(stage gl.Enum) gl.Shader {
	return gl.Shader(f.track(f.ctx.Call("createShader", int(stage))))
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.ctx.Call("shaderSource", f.lookup(uint32(s)), src)
}

func (f *Functions) CompileShader(s gl.Shader) {
	f.ctx.Call("compileShader", f.lookup(uint32(s)))
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	return paramInt(f.ctx.Call("getShaderParameter", f.lookup(uint32(s)), int(pname)))
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	return f.ctx.Call("getShaderInfoLog", f.lookup(uint32(s))).String()
}

func (f *Functions) DeleteShader(s gl.Shader) {
	f.ctx.Call("deleteShader", f.release(uint32(s)))
}

func (f *Functions) CreateProgram() gl.Program {
	return gl.Program(f.track(f.ctx.Call("createProgram")))
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.ctx.Call("attachShader", f.lookup(uint32(p)), f.lookup(uint32(s)))
}

func (f *Functions) DetachShader(p gl.Program, s gl.Shader) {
	f.ctx.Call("detachShader", f.lookup(uint32(p)), f.lookup(uint32(s)))
}

func (f *Functions) LinkProgram(p gl.Program) {
	f.ctx.Call("linkProgram", f.lookup(uint32(p)))
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	return paramInt(f.ctx.Call("getProgramParameter", f.lookup(uint32(p)), int(pname)))
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	return f.ctx.Call("getProgramInfoLog", f.lookup(uint32(p))).String()
}

func (f *Functions) DeleteProgram(p gl.Program) {
	f.ctx.Call("deleteProgram", f.release(uint32(p)))
}

func (f *Functions) UseProgram(p gl.Program) {
	f.ctx.Call("useProgram", f.lookup(uint32(p)))
}

func (f *Functions) GetActiveUniform(p gl.Program, index int) gl.ActiveInfo {
	return activeInfo(f.ctx.Call("getActiveUniform", f.lookup(uint32(p)), index))
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) gl.ActiveInfo {
	return activeInfo(f.ctx.Call("getActiveAttrib", f.lookup(uint32(p)), index))
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	loc := f.ctx.Call("getUniformLocation", f.lookup(uint32(p)), name)
	if loc.IsNull() {
		return gl.NoUniform
	}
	u := f.nextLoc
	f.nextLoc++
	f.uniforms[u] = loc
	return u
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	return f.ctx.Call("getAttribLocation", f.lookup(uint32(p)), name).Int()
}

func (f *Functions) Uniform1i(u gl.Uniform, v int) {
	f.ctx.Call("uniform1i", f.location(u), v)
}

func (f *Functions) Uniform1f(u gl.Uniform, v float32) {
	f.ctx.Call("uniform1f", f.location(u), v)
}

func (f *Functions) Uniform2fv(u gl.Uniform, v []float32) {
	f.ctx.Call("uniform2fv", f.location(u), f.floatArray(v))
}

func (f *Functions) Uniform3fv(u gl.Uniform, v []float32) {
	f.ctx.Call("uniform3fv", f.location(u), f.floatArray(v))
}

func (f *Functions) Uniform4fv(u gl.Uniform, v []float32) {
	f.ctx.Call("uniform4fv", f.location(u), f.floatArray(v))
}

func (f *Functions) UniformMatrix4fv(u gl.Uniform, transpose bool, v []float32) {
	f.ctx.Call("uniformMatrix4fv", f.location(u), transpose, f.floatArray(v))
}

func (f *Functions) CreateBuffer() gl.Buffer {
	return gl.Buffer(f.track(f.ctx.Call("createBuffer")))
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.ctx.Call("bindBuffer", int(target), f.lookup(uint32(b)))
}

func (f *Functions) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	if len(data) == 0 {
		f.ctx.Call("bufferData", int(target), 0, int(usage))
		return
	}
	f.ctx.Call("bufferData", int(target), f.byteArray(data), int(usage))
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	f.ctx.Call("deleteBuffer", f.release(uint32(b)))
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	return gl.VertexArray(f.track(f.ctx.Call("createVertexArray")))
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	f.ctx.Call("bindVertexArray", f.lookup(uint32(a)))
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	f.ctx.Call("deleteVertexArray", f.release(uint32(a)))
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	f.ctx.Call("enableVertexAttribArray", int(a))
}

func (f *Functions) VertexAttribPointer(a gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.ctx.Call("vertexAttribPointer", int(a), size, int(ty), normalized, stride, offset)
}

func (f *Functions) VertexAttribDivisor(a gl.Attrib, divisor int) {
	f.ctx.Call("vertexAttribDivisor", int(a), divisor)
}

func (f *Functions) CreateTexture() gl.Texture {
	return gl.Texture(f.track(f.ctx.Call("createTexture")))
}

func (f *Functions) ActiveTexture(unit gl.Enum) {
	f.ctx.Call("activeTexture", int(unit))
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.ctx.Call("bindTexture", int(target), f.lookup(uint32(t)))
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	if pname == gl.UNPACK_FLIP_Y_WEBGL {
		f.ctx.Call("pixelStorei", int(pname), param != 0)
		return
	}
	f.ctx.Call("pixelStorei", int(pname), param)
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.ctx.Call("texImage2D", int(target), level, int(internalFormat), width, height, 0, int(format), int(ty), f.pixelArray(data, ty))
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.ctx.Call("texParameteri", int(target), int(pname), param)
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	f.ctx.Call("deleteTexture", f.release(uint32(t)))
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	return gl.Framebuffer(f.track(f.ctx.Call("createFramebuffer")))
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.ctx.Call("bindFramebuffer", int(target), f.lookup(uint32(fb)))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.ctx.Call("framebufferTexture2D", int(target), int(attachment), int(texTarget), f.lookup(uint32(t)), level)
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	f.ctx.Call("deleteFramebuffer", f.release(uint32(fb)))
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.ctx.Call("viewport", x, y, width, height)
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	f.ctx.Call("clearColor", r, g, b, a)
}

func (f *Functions) Clear(mask gl.Enum) {
	f.ctx.Call("clear", int(mask))
}

func (f *Functions) Enable(cap gl.Enum) {
	f.ctx.Call("enable", int(cap))
}

func (f *Functions) BlendFunc(sfactor, dfactor gl.Enum) {
	f.ctx.Call("blendFunc", int(sfactor), int(dfactor))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gl.Enum) {
	f.ctx.Call("blendFuncSeparate", int(srcRGB), int(dstRGB), int(srcAlpha), int(dstAlpha))
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	f.ctx.Call("drawArrays", int(mode), first, count)
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.ctx.Call("drawArraysInstanced", int(mode), first, count, instances)
}

func activeInfo(v js.Value) gl.ActiveInfo {
	if v.IsNull() || v.IsUndefined() {
		return gl.ActiveInfo{}
	}
	return gl.ActiveInfo{
		Name: v.Get("name").String(),
		Size: v.Get("size").Int(),
		Type: gl.Enum(v.Get("type").Int()),
	}
}

// paramInt normalizes getXParameter results, which WebGL returns as either
// booleans or numbers depending on pname.
func paramInt(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if v.Bool() {
			return gl.TRUE
		}
		return gl.FALSE
	case js.TypeNumber:
		return v.Int()
	default:
		return 0
	}
}
