package document

import (
	"context"
	"mime/multipart"

	"github.com/futig/docchat-backend/internal/entity"
)

type DocumentUsecase interface {
	Upload(ctx context.Context, header *multipart.FileHeader) (*entity.Document, error)
	List(ctx context.Context) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) error
}
