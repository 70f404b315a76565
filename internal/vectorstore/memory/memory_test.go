package memory

import (
	"context"
	"testing"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordEmbedder maps known texts to fixed vectors so similarity ordering is
// predictable in tests.
type wordEmbedder struct {
	vectors map[string][]float32
}

func (e *wordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func testChunk(docID, text string) entity.Chunk {
	return entity.Chunk{
		DocumentID: docID,
		Text:       text,
		Metadata: entity.ChunkMetadata{
			DocumentID: docID,
			Filename:   docID + ".txt",
		},
	}
}

func TestSearchEmptyStore(t *testing.T) {
	store := NewStore(&wordEmbedder{})

	results, err := store.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchOrdersBySimilarity(t *testing.T) {
	embedder := &wordEmbedder{vectors: map[string][]float32{
		"sky":    {1, 0, 0},
		"grass":  {0, 1, 0},
		"clouds": {0.9, 0.1, 0},
		"query":  {1, 0, 0},
	}}
	store := NewStore(embedder)

	ctx := context.Background()
	require.NoError(t, store.Index(ctx, []entity.Chunk{
		testChunk("d1", "grass"),
		testChunk("d2", "sky"),
		testChunk("d3", "clouds"),
	}))

	results, err := store.Search(ctx, "query", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "sky", results[0].Text)
	assert.Equal(t, "clouds", results[1].Text)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchCapsAtK(t *testing.T) {
	store := NewStore(&wordEmbedder{})
	ctx := context.Background()

	require.NoError(t, store.Index(ctx, []entity.Chunk{
		testChunk("d1", "a"),
		testChunk("d1", "b"),
		testChunk("d1", "c"),
		testChunk("d1", "d"),
	}))

	results, err := store.Search(ctx, "a", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestDeleteByOwnerRemovesAllChunks(t *testing.T) {
	store := NewStore(&wordEmbedder{})
	ctx := context.Background()

	require.NoError(t, store.Index(ctx, []entity.Chunk{
		testChunk("doomed", "first"),
		testChunk("doomed", "second"),
		testChunk("survivor", "third"),
	}))

	require.NoError(t, store.DeleteByOwner(ctx, "doomed"))

	results, err := store.Search(ctx, "anything", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "survivor", results[0].Metadata.DocumentID)

	// idempotent: deleting again is a no-op
	require.NoError(t, store.DeleteByOwner(ctx, "doomed"))
}
