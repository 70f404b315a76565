package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	Create(ctx context.Context, filename, content string) (*entity.Document, error)
	List(ctx context.Context) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) (*entity.Document, error)
	Count(ctx context.Context) (int, error)
}

var _ DocumentRepository = &DocumentPostgres{}

// DocumentPostgres implements DocumentRepository using PostgreSQL
type DocumentPostgres struct {
	db *pgxpool.Pool
}

func NewDocumentPostgres(db *pgxpool.Pool) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

func (r *DocumentPostgres) Create(ctx context.Context, filename, content string) (*entity.Document, error) {
	var row documentRow
	err := r.db.QueryRow(ctx,
		`INSERT INTO documents (filename, content)
		 VALUES ($1, $2)
		 RETURNING id, filename, uploaded_at, content`,
		filename, content,
	).Scan(&row.ID, &row.Filename, &row.UploadedAt, &row.Content)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	return toEntityDocument(&row), nil
}

// List returns document metadata ordered by upload time, newest first.
// Content is not loaded.
func (r *DocumentPostgres) List(ctx context.Context) ([]*entity.Document, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, filename, uploaded_at FROM documents ORDER BY uploaded_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*entity.Document, 0)
	for rows.Next() {
		var row documentRow
		if err := rows.Scan(&row.ID, &row.Filename, &row.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, toEntityDocument(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// Delete removes a document and returns its metadata so the caller can
// clean up derived state.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) (*entity.Document, error) {
	docID, err := toPgUUID(id)
	if err != nil {
		return nil, entity.ErrDocumentNotFound
	}

	var row documentRow
	err = r.db.QueryRow(ctx,
		`DELETE FROM documents WHERE id = $1 RETURNING id, filename, uploaded_at`,
		docID,
	).Scan(&row.ID, &row.Filename, &row.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("delete document: %w", err)
	}

	return toEntityDocument(&row), nil
}

func (r *DocumentPostgres) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}
