package gfx

import (
	"errors"
	"strings"

	"github.com/kjkrol/metaball/pkg/gl"
)

// CompileShader compiles one stage. On failure the diagnostic is logged, the
// shader is deleted and a *ShaderError is returned together with the zero
// handle.
func CompileShader(ctx gl.Context, stage gl.Enum, source string) (gl.Shader, error) {
	shader := ctx.CreateShader(stage)
	ctx.ShaderSource(shader, withPreamble(ctx, source))
	ctx.CompileShader(shader)
	if ctx.GetShaderi(shader, gl.COMPILE_STATUS) == gl.FALSE {
		err := &ShaderError{Stage: stage, Log: strings.TrimSpace(ctx.GetShaderInfoLog(shader))}
		Logger().Error("gfx: compile error", "stage", stageName(stage), "log", err.Log)
		ctx.DeleteShader(shader)
		return 0, err
	}
	return shader, nil
}

// LinkProgram compiles both stages and links them. When a stage fails no
// program object is created. When linking fails the program and both
// shaders are deleted. On success the shaders are detached and deleted; the
// program is the only object left to track.
func LinkProgram(ctx gl.Context, vertexSource, fragmentSource string) (gl.Program, error) {
	vertexShader, vertErr := CompileShader(ctx, gl.VERTEX_SHADER, vertexSource)
	fragmentShader, fragErr := CompileShader(ctx, gl.FRAGMENT_SHADER, fragmentSource)
	if vertErr != nil || fragErr != nil {
		if vertexShader.Valid() {
			ctx.DeleteShader(vertexShader)
		}
		if fragmentShader.Valid() {
			ctx.DeleteShader(fragmentShader)
		}
		return 0, errors.Join(vertErr, fragErr)
	}

	program := ctx.CreateProgram()
	ctx.AttachShader(program, vertexShader)
	ctx.AttachShader(program, fragmentShader)
	ctx.LinkProgram(program)

	if ctx.GetProgrami(program, gl.LINK_STATUS) == gl.FALSE {
		err := &LinkError{Log: strings.TrimSpace(ctx.GetProgramInfoLog(program))}
		Logger().Error("gfx: link error", "log", err.Log)
		ctx.DeleteProgram(program)
		ctx.DeleteShader(vertexShader)
		ctx.DeleteShader(fragmentShader)
		return 0, err
	}

	ctx.DetachShader(program, vertexShader)
	ctx.DetachShader(program, fragmentShader)
	ctx.DeleteShader(vertexShader)
	ctx.DeleteShader(fragmentShader)
	return program, nil
}

func withPreamble(ctx gl.Context, source string) string {
	preamble := ctx.ShaderPreamble()
	if preamble == "" || strings.HasPrefix(strings.TrimSpace(source), "#version") {
		return source
	}
	var sb strings.Builder
	sb.WriteString(preamble)
	sb.WriteString(source)
	if !strings.HasSuffix(source, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}
