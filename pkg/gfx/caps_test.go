package gfx_test

import (
	"testing"

	"github.com/kjkrol/metaball/internal/gltest"
	"github.com/kjkrol/metaball/pkg/gfx"
	"github.com/kjkrol/metaball/pkg/gl"
	"github.com/stretchr/testify/assert"
)

func TestProbe(t *testing.T) {
	assert.Equal(t, gfx.Capabilities{}, gfx.Probe(gltest.New()))

	assert.Equal(t, allCaps, gfx.Probe(gltest.New().WithAllExtensions()))

	fake := gltest.New()
	fake.Extensions[gl.ExtTextureHalfFloatLinear] = true
	caps := gfx.Probe(fake)
	assert.True(t, caps.TextureHalfFloatLinear)
	assert.False(t, caps.TextureFloatLinear)
	assert.Len(t, fake.Named("Extension"), 4)
}
