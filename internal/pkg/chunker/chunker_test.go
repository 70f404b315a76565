package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reassemble concatenates chunks dropping the leading overlap of every chunk
// after the first.
func reassemble(chunks []string, overlap int) string {
	var b strings.Builder
	for i, chunk := range chunks {
		runes := []rune(chunk)
		if i > 0 {
			runes = runes[overlap:]
		}
		b.WriteString(string(runes))
	}
	return b.String()
}

func TestSplitReconstructsInput(t *testing.T) {
	texts := []string{
		"The sky is blue.",
		strings.Repeat("lorem ipsum dolor sit amet ", 100),
		strings.Repeat("днём небо голубое, ночью чёрное. ", 40),
	}

	c := New(50, 10)
	for _, text := range texts {
		chunks := c.Split(text)
		require.NotEmpty(t, chunks)
		assert.Equal(t, text, reassemble(chunks, c.Overlap()))
	}
}

func TestSplitKeepsTrailingPartial(t *testing.T) {
	c := New(10, 2)
	text := "abcdefghijklm" // 13 runes: one full window plus a tail

	chunks := c.Split(text)
	require.Len(t, chunks, 2)
	assert.Equal(t, "abcdefghij", chunks[0])
	assert.Equal(t, "ijklm", chunks[1])
}

func TestSplitShortInputSingleChunk(t *testing.T) {
	c := New(500, 100)
	chunks := c.Split("short")
	require.Len(t, chunks, 1)
	assert.Equal(t, "short", chunks[0])
}

func TestSplitEmptyInput(t *testing.T) {
	c := New(500, 100)
	assert.Empty(t, c.Split(""))
}

func TestSplitDeterministic(t *testing.T) {
	c := New(37, 9)
	text := strings.Repeat("determinism matters for reproducible retrieval. ", 20)

	first := c.Split(text)
	second := c.Split(text)
	assert.Equal(t, first, second)
}

func TestNewRejectsInvalidOverlap(t *testing.T) {
	c := New(500, 500)
	assert.Less(t, c.Overlap(), c.Size())

	c = New(500, -1)
	assert.Equal(t, DefaultChunkOverlap, c.Overlap())
}

func TestSplitUnicodeBoundaries(t *testing.T) {
	c := New(4, 1)
	chunks := c.Split("небо голубое")
	for _, chunk := range chunks {
		assert.NotContains(t, chunk, "�")
	}
	assert.Equal(t, "небо голубое", reassemble(chunks, c.Overlap()))
}
