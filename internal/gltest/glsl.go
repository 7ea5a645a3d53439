package gltest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kjkrol/metaball/pkg/gl"
)

var declaration = regexp.MustCompile(`^(in|uniform)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)(?:\[(\d+)\])?\s*;`)

var glslTypes = map[string]gl.Enum{
	"float":       gl.FLOAT,
	"vec2":        gl.FLOAT_VEC2,
	"vec3":        gl.FLOAT_VEC3,
	"vec4":        gl.FLOAT_VEC4,
	"int":         gl.INT,
	"ivec2":       gl.INT_VEC2,
	"ivec3":       gl.INT_VEC3,
	"ivec4":       gl.INT_VEC4,
	"bool":        gl.BOOL,
	"mat2":        gl.FLOAT_MAT2,
	"mat3":        gl.FLOAT_MAT3,
	"mat4":        gl.FLOAT_MAT4,
	"sampler2D":   gl.SAMPLER_2D,
	"sampler3D":   gl.SAMPLER_3D,
	"samplerCube": gl.SAMPLER_CUBE,
}

// Interface reads the top-level in and uniform declarations of a shader
// pair the way a linker would report them: vertex inputs become attributes,
// uniforms of both stages are merged by name and arrays are named "x[0]".
// Declarations of unknown types are skipped.
func Interface(vertexSrc, fragmentSrc string) (uniforms, attributes []gl.ActiveInfo) {
	seen := make(map[string]bool)
	scan := func(src string, vertex bool) {
		for _, line := range strings.Split(src, "\n") {
			m := declaration.FindStringSubmatch(strings.TrimSpace(line))
			if m == nil {
				continue
			}
			ty, ok := glslTypes[m[2]]
			if !ok {
				continue
			}
			info := gl.ActiveInfo{Name: m[3], Size: 1, Type: ty}
			if m[4] != "" {
				info.Size, _ = strconv.Atoi(m[4])
				info.Name += "[0]"
			}
			switch {
			case m[1] == "in" && vertex:
				attributes = append(attributes, info)
			case m[1] == "uniform" && !seen[info.Name]:
				seen[info.Name] = true
				uniforms = append(uniforms, info)
			}
		}
	}
	scan(vertexSrc, true)
	scan(fragmentSrc, false)
	return uniforms, attributes
}
