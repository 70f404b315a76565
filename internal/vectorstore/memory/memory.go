package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/vectorstore"
)

var _ vectorstore.VectorStore = &Store{}

type record struct {
	chunk  entity.Chunk
	vector []float32
}

// Store is a brute-force cosine similarity store kept in memory. It backs
// the mock mode and tests; production uses the pgvector store.
type Store struct {
	mu       sync.RWMutex
	embedder vectorstore.Embedder
	records  []record
}

func NewStore(embedder vectorstore.Embedder) *Store {
	return &Store{embedder: embedder}
}

func (s *Store) Index(ctx context.Context, chunks []entity.Chunk) error {
	for _, chunk := range chunks {
		vec, err := s.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.records = append(s.records, record{chunk: chunk, vector: vec})
		s.mu.Unlock()
	}
	return nil
}

func (s *Store) Search(ctx context.Context, query string, k int) ([]entity.ScoredChunk, error) {
	s.mu.RLock()
	empty := len(s.records) == 0
	s.mu.RUnlock()
	if empty {
		return []entity.ScoredChunk{}, nil
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]entity.ScoredChunk, 0, len(s.records))
	for _, rec := range s.records {
		results = append(results, entity.ScoredChunk{
			Text:     rec.chunk.Text,
			Metadata: rec.chunk.Metadata,
			Score:    cosine(rec.vector, vec),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (s *Store) DeleteByOwner(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.chunk.Metadata.DocumentID != documentID {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	return nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
