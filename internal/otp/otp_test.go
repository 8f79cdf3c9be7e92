package otp

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomGenerator_Range(t *testing.T) {
	g := NewRandomGenerator()
	for i := 0; i < 1000; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestRandomGenerator_ReaderFailure(t *testing.T) {
	g := &RandomGenerator{Rand: bytes.NewReader(nil)}
	_, err := g.Generate()
	assert.Error(t, err)
}

func TestFixed(t *testing.T) {
	code, err := Fixed("123456").Generate()
	require.NoError(t, err)
	assert.Equal(t, "123456", code)
}
