package gl

const (
	FALSE = 0
	TRUE  = 1

	ARRAY_BUFFER = 0x8892
	STATIC_DRAW  = 0x88e4
	STREAM_DRAW  = 0x88e0
	DYNAMIC_DRAW = 0x88e8

	VERTEX_SHADER     = 0x8b31
	FRAGMENT_SHADER   = 0x8b30
	COMPILE_STATUS    = 0x8b81
	LINK_STATUS       = 0x8b82
	INFO_LOG_LENGTH   = 0x8b84
	ACTIVE_UNIFORMS   = 0x8b86
	ACTIVE_ATTRIBUTES = 0x8b89

	BYTE           = 0x1400
	UNSIGNED_BYTE  = 0x1401
	SHORT          = 0x1402
	UNSIGNED_SHORT = 0x1403
	INT            = 0x1404
	UNSIGNED_INT   = 0x1405
	FLOAT          = 0x1406
	HALF_FLOAT     = 0x140b

	FLOAT_VEC2   = 0x8b50
	FLOAT_VEC3   = 0x8b51
	FLOAT_VEC4   = 0x8b52
	INT_VEC2     = 0x8b53
	INT_VEC3     = 0x8b54
	INT_VEC4     = 0x8b55
	BOOL         = 0x8b56
	FLOAT_MAT2   = 0x8b5a
	FLOAT_MAT3   = 0x8b5b
	FLOAT_MAT4   = 0x8b5c
	SAMPLER_2D   = 0x8b5e
	SAMPLER_3D   = 0x8b5f
	SAMPLER_CUBE = 0x8b60

	TEXTURE_2D         = 0x0de1
	TEXTURE_3D         = 0x806f
	TEXTURE_CUBE_MAP   = 0x8513
	TEXTURE0           = 0x84c0
	TEXTURE_MAG_FILTER = 0x2800
	TEXTURE_MIN_FILTER = 0x2801
	TEXTURE_WRAP_S     = 0x2802
	TEXTURE_WRAP_T     = 0x2803
	NEAREST            = 0x2600
	LINEAR             = 0x2601
	CLAMP_TO_EDGE      = 0x812f
	REPEAT             = 0x2901

	RGBA    = 0x1908
	RGBA8   = 0x8058
	RGBA16F = 0x881a
	RGBA32F = 0x8814

	UNPACK_FLIP_Y_WEBGL = 0x9240

	FRAMEBUFFER       = 0x8d40
	COLOR_ATTACHMENT0 = 0x8ce0

	COLOR_BUFFER_BIT    = 0x4000
	BLEND               = 0x0be2
	ZERO                = 0
	ONE                 = 1
	SRC_ALPHA           = 0x0302
	ONE_MINUS_SRC_ALPHA = 0x0303

	TRIANGLES = 0x0004

	EXTENSIONS     = 0x1f03
	NUM_EXTENSIONS = 0x821d
)

// WebGL extension names probed at startup.
const (
	ExtColorBufferFloat       = "EXT_color_buffer_float"
	ExtTextureFloatLinear     = "OES_texture_float_linear"
	ExtColorBufferHalfFloat   = "EXT_color_buffer_half_float"
	ExtTextureHalfFloatLinear = "OES_texture_half_float_linear"
)
