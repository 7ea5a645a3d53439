// Package gl is the subset of the OpenGL ES 3 / WebGL2 API the renderer
// needs, behind one interface so that the same helper code runs on desktop
// OpenGL, in the browser, and against a recording fake in tests.
package gl

type (
	Enum   uint32
	Attrib uint32
)

// Object handles. The zero value of every handle means "none", which is what
// binding functions expect to unbind.
type (
	Buffer      uint32
	Framebuffer uint32
	Program     uint32
	Shader      uint32
	Texture     uint32
	VertexArray uint32
	Uniform     int32
)

// NoUniform is returned for names the program does not use.
const NoUniform Uniform = -1

func (u Uniform) Valid() bool {
	return u >= 0
}

func (p Program) Valid() bool {
	return p != 0
}

func (s Shader) Valid() bool {
	return s != 0
}

// ActiveInfo describes one active uniform or attribute of a linked program.
type ActiveInfo struct {
	Name string
	Size int
	Type Enum
}

// Context is a current graphics context. All calls are immediate-mode and
// must come from the goroutine that owns the context.
type Context interface {
	// ShaderPreamble is the version and precision header the backend's
	// shading language dialect requires.
	ShaderPreamble() string
	// Extension enables and reports an optional capability by its WebGL name.
	Extension(name string) bool

	CreateShader(stage Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	GetActiveUniform(p Program, index int) ActiveInfo
	GetActiveAttrib(p Program, index int) ActiveInfo
	GetUniformLocation(p Program, name string) Uniform
	// GetAttribLocation returns -1 for unknown names.
	GetAttribLocation(p Program, name string) int

	Uniform1i(u Uniform, v int)
	Uniform1f(u Uniform, v float32)
	Uniform2fv(u Uniform, v []float32)
	Uniform3fv(u Uniform, v []float32)
	Uniform4fv(u Uniform, v []float32)
	UniformMatrix4fv(u Uniform, transpose bool, v []float32)

	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, data []byte, usage Enum)
	DeleteBuffer(b Buffer)

	CreateVertexArray() VertexArray
	BindVertexArray(a VertexArray)
	DeleteVertexArray(a VertexArray)
	EnableVertexAttribArray(a Attrib)
	VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride, offset int)
	VertexAttribDivisor(a Attrib, divisor int)

	CreateTexture() Texture
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	PixelStorei(pname Enum, param int)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	DeleteTexture(t Texture)

	CreateFramebuffer() Framebuffer
	BindFramebuffer(target Enum, fb Framebuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	DeleteFramebuffer(fb Framebuffer)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Enable(cap Enum)
	BlendFunc(sfactor, dfactor Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	DrawArrays(mode Enum, first, count int)
	DrawArraysInstanced(mode Enum, first, count, instances int)
}
