package gfx

import (
	"errors"
	"fmt"

	"github.com/kjkrol/metaball/pkg/gl"
)

var (
	ErrCompile          = errors.New("gfx: shader compilation failed")
	ErrLink             = errors.New("gfx: program link failed")
	ErrUnknownAttribute = errors.New("gfx: unknown attribute")
	ErrUniformValue     = errors.New("gfx: uniform value does not match its type")
	ErrAttributeConfig  = errors.New("gfx: invalid vertex attribute config")
)

// ShaderError carries the compiler diagnostic for one stage.
type ShaderError struct {
	Stage gl.Enum
	Log   string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("%s shader: %s", stageName(e.Stage), e.Log)
}

func (e *ShaderError) Unwrap() error {
	return ErrCompile
}

// LinkError carries the linker diagnostic of a program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link: " + e.Log
}

func (e *LinkError) Unwrap() error {
	return ErrLink
}

func stageName(stage gl.Enum) string {
	switch stage {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("stage 0x%x", uint32(stage))
	}
}
