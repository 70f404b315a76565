package chat

import (
	"context"

	"github.com/futig/docchat-backend/internal/entity"
	chatuc "github.com/futig/docchat-backend/internal/usecase/chat"
)

type ChatUsecase interface {
	Create(ctx context.Context, title string) (*entity.Chat, error)
	List(ctx context.Context) ([]*entity.Chat, error)
	Rename(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]*entity.Message, error)
	Export(ctx context.Context, id string, format entity.ExportFormat) (*chatuc.ExportResult, error)
}
