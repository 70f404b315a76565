package document

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/pkg/chunker"
	"github.com/futig/docchat-backend/internal/pkg/parser"
	"github.com/futig/docchat-backend/internal/pkg/validator"
	"github.com/futig/docchat-backend/internal/repository"
	"github.com/futig/docchat-backend/internal/vectorstore"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase manages the document lifecycle: ingest, list, remove
type Usecase struct {
	repo      repository.DocumentRepository
	store     vectorstore.VectorStore
	splitter  *chunker.Chunker
	validator *validator.Validator
	logger    *zap.Logger
}

func NewUsecase(
	repo repository.DocumentRepository,
	store vectorstore.VectorStore,
	splitter *chunker.Chunker,
	v *validator.Validator,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		repo:      repo,
		store:     store,
		splitter:  splitter,
		validator: v,
		logger:    logger,
	}
}

// Upload validates the file, extracts its text, persists the document and
// indexes its chunks for retrieval
func (uc *Usecase) Upload(ctx context.Context, header *multipart.FileHeader) (*entity.Document, error) {
	if err := uc.validator.ValidateUpload(header); err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}

	filename := validator.SanitizeFilename(header.Filename)

	text, err := parser.Parse(filename, data)
	if err != nil {
		return nil, err
	}

	doc, err := uc.repo.Create(ctx, filename, text)
	if err != nil {
		return nil, fmt.Errorf("persist document: %w", err)
	}

	chunks := uc.toChunks(doc, text)
	if err := uc.store.Index(ctx, chunks); err != nil {
		// Indexing inserts per chunk, so a failure can leave some vectors
		// behind. Roll back both sides: retrieval must never cite a
		// document that no longer exists.
		if derr := uc.store.DeleteByOwner(ctx, doc.ID); derr != nil {
			ctxzap.Error(ctx, "rollback vectors after index failure",
				zap.String("document_id", doc.ID), zap.Error(derr))
		}
		if _, derr := uc.repo.Delete(ctx, doc.ID); derr != nil {
			ctxzap.Error(ctx, "rollback document after index failure",
				zap.String("document_id", doc.ID), zap.Error(derr))
		}
		return nil, fmt.Errorf("index document chunks: %w", err)
	}

	ctxzap.Info(ctx, "document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("filename", doc.Filename),
		zap.Int("chunk_count", len(chunks)),
	)

	return doc, nil
}

// List returns document metadata, newest first
func (uc *Usecase) List(ctx context.Context) ([]*entity.Document, error) {
	return uc.repo.List(ctx)
}

// Delete removes the document row and every vector it owns
func (uc *Usecase) Delete(ctx context.Context, id string) error {
	doc, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.store.DeleteByOwner(ctx, id); err != nil {
		return fmt.Errorf("delete document vectors: %w", err)
	}

	ctxzap.Info(ctx, "document deleted",
		zap.String("document_id", id),
		zap.String("filename", doc.Filename),
	)

	return nil
}

func (uc *Usecase) toChunks(doc *entity.Document, text string) []entity.Chunk {
	pieces := uc.splitter.Split(text)
	chunks := make([]entity.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, entity.Chunk{
			DocumentID: doc.ID,
			Text:       piece,
			Metadata: entity.ChunkMetadata{
				DocumentID: doc.ID,
				Filename:   doc.Filename,
				UploadedAt: doc.UploadedAt,
			},
		})
	}
	return chunks
}
