package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewID()
		require.NoError(t, err)
		assert.Len(t, id, IDLength)
		assert.True(t, IsID(id))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIsID(t *testing.T) {
	assert.False(t, IsID(""))
	assert.False(t, IsID("1"))
	assert.False(t, IsID("zz0123456789abcdef0123456789abcd"))
	assert.True(t, IsID("00112233445566778899aabbccddeeff"))
}
