package vectorstore

import (
	"context"

	"github.com/futig/docchat-backend/internal/entity"
)

// Embedder converts free text into a numeric vector representation
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorStore persists chunk embeddings and supports similarity search.
// Chunks are independent: a partial Index failure may leave some chunks
// indexed, re-indexing is idempotent enough for this data.
type VectorStore interface {
	// Index embeds and persists all given chunks
	Index(ctx context.Context, chunks []entity.Chunk) error
	// Search embeds the query and returns up to k chunks by decreasing
	// similarity. An empty store yields an empty result, not an error.
	Search(ctx context.Context, query string, k int) ([]entity.ScoredChunk, error)
	// DeleteByOwner removes all chunks derived from the given document.
	// No-op when nothing matches.
	DeleteByOwner(ctx context.Context, documentID string) error
}
