package chunker

const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

// Chunker splits text into fixed-size overlapping windows. Splitting is done
// on runes so multi-byte characters are never cut in half.
type Chunker struct {
	size    int
	overlap int
}

// New creates a chunker with the given window size and overlap, both in
// runes. Invalid combinations fall back to the defaults.
func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split cuts text into overlapping chunks covering the whole input with no
// gaps. The trailing partial chunk is kept. Deterministic for identical
// input and configuration.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := c.size - c.overlap
	chunks := make([]string, 0, len(runes)/step+1)
	for start := 0; ; start += step {
		end := start + c.size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			return chunks
		}
		chunks = append(chunks, string(runes[start:end]))
	}
}

// Size returns the configured window size in runes
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap in runes
func (c *Chunker) Overlap() int { return c.overlap }
