package gfx_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/kjkrol/metaball/pkg/gfx"
	"github.com/stretchr/testify/assert"
)

func TestLogger_SilentByDefault(t *testing.T) {
	gfx.SetLogger(nil)
	assert.False(t, gfx.Logger().Enabled(context.Background(), slog.LevelError))

	logs := captureLogs(t)
	gfx.Logger().Debug("hello")
	assert.Contains(t, logs.String(), "hello")
}
