package pgvector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/vectorstore"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jackc/pgx/v5/pgxpool"
	pgv "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

var _ vectorstore.VectorStore = &Store{}

// Store implements vectorstore.VectorStore on Postgres with the pgvector
// extension. Rows are tied to their owning document through the metadata
// doc_id field rather than a foreign key, so documents and vectors stay
// loosely coupled.
type Store struct {
	db       *pgxpool.Pool
	embedder vectorstore.Embedder
}

func NewStore(db *pgxpool.Pool, embedder vectorstore.Embedder) *Store {
	return &Store{
		db:       db,
		embedder: embedder,
	}
}

func (s *Store) Index(ctx context.Context, chunks []entity.Chunk) error {
	for i, chunk := range chunks {
		vec, err := s.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", i, err)
		}

		metadata, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshal chunk metadata: %w", err)
		}

		_, err = s.db.Exec(ctx,
			`INSERT INTO document_vectors (content, embedding, metadata) VALUES ($1, $2, $3)`,
			chunk.Text, pgv.NewVector(vec), metadata,
		)
		if err != nil {
			return fmt.Errorf("insert chunk %d: %w", i, err)
		}
	}

	ctxzap.Info(ctx, "chunks indexed", zap.Int("chunk_count", len(chunks)))
	return nil
}

func (s *Store) Search(ctx context.Context, query string, k int) ([]entity.ScoredChunk, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT content, metadata, embedding <=> $1 AS distance
		 FROM document_vectors
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		pgv.NewVector(vec), k,
	)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	results := make([]entity.ScoredChunk, 0, k)
	for rows.Next() {
		var (
			content  string
			metaJSON []byte
			distance float64
		)
		if err := rows.Scan(&content, &metaJSON, &distance); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}

		var meta entity.ChunkMetadata
		if err := json.Unmarshal(metaJSON, &meta); err != nil {
			return nil, fmt.Errorf("unmarshal chunk metadata: %w", err)
		}

		results = append(results, entity.ScoredChunk{
			Text:     content,
			Metadata: meta,
			// cosine distance in [0,2] -> similarity
			Score: 1 - distance,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search results: %w", err)
	}

	return results, nil
}

func (s *Store) DeleteByOwner(ctx context.Context, documentID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM document_vectors WHERE metadata->>'doc_id' = $1`,
		documentID,
	)
	if err != nil {
		return fmt.Errorf("delete vectors by owner: %w", err)
	}

	ctxzap.Info(ctx, "vectors deleted",
		zap.String("document_id", documentID),
		zap.Int64("deleted_count", tag.RowsAffected()),
	)
	return nil
}
