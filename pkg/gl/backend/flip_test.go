package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlipRows(t *testing.T) {
	data := []byte{
		1, 2,
		3, 4,
		5, 6,
	}
	assert.Equal(t, []byte{5, 6, 3, 4, 1, 2}, flipRows(data, 3))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, data)
	assert.Equal(t, data, flipRows(data, 1))
	assert.Equal(t, data, flipRows(data, 4))
}
