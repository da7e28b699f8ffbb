package index

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%04d", i)
	}
	return strings.Join(parts, " ")
}

func TestChunkerSplit(t *testing.T) {
	c := Chunker{Words: 600, Overlap: 100, MinChars: 50}

	t.Run("short document is a single chunk", func(t *testing.T) {
		chunks := c.Split(words(80))
		assert.Len(t, chunks, 1)
	})

	t.Run("long document is split with overlap", func(t *testing.T) {
		chunks := c.Split(words(1200))
		assert.Len(t, chunks, 3)

		// Windows start every 500 words, so consecutive chunks share text.
		first := strings.Fields(chunks[0])
		second := strings.Fields(chunks[1])
		assert.Equal(t, first[500], second[0])
	})

	t.Run("whitespace only yields nothing", func(t *testing.T) {
		assert.Empty(t, c.Split("   \n\t  "))
	})

	t.Run("tiny trailing chunk is dropped", func(t *testing.T) {
		chunks := Chunker{Words: 10, Overlap: 0, MinChars: 50}.Split(
			words(10) + " tail")
		assert.Len(t, chunks, 1)
		assert.NotContains(t, chunks[0], "tail")
	})
}

func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0, cosineDistance([]float32{1, 0}, []float32{1, 0}), 1e-6)
	assert.InDelta(t, 1, cosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, 2, cosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-6)

	// Zero vectors must not divide by zero.
	assert.InDelta(t, 1, cosineDistance([]float32{0, 0}, []float32{0, 0}), 1e-6)
}
