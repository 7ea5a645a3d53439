package window

import (
	"testing"

	"github.com/kjkrol/metaball/internal/platform"
	"github.com/stretchr/testify/assert"
)

func TestEventQueue(t *testing.T) {
	q := newEventQueue(2)

	_, ok := q.next()
	assert.False(t, ok)

	q.push(platform.Resize{Width: 10, Height: 20})
	q.push(platform.KeyPress{Label: "p"})
	q.push(platform.DestroyNotify{})

	e, ok := q.next()
	assert.True(t, ok)
	assert.Equal(t, platform.Resize{Width: 10, Height: 20}, e)
	e, ok = q.next()
	assert.True(t, ok)
	assert.Equal(t, platform.KeyPress{Label: "p"}, e)
	_, ok = q.next()
	assert.False(t, ok, "third event is dropped when the queue is full")
}

func TestEventQueue_DefaultSize(t *testing.T) {
	assert.Equal(t, 64, cap(newEventQueue(0)))
}
