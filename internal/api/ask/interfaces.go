package ask

import (
	"context"

	"github.com/futig/docchat-backend/internal/entity"
)

type AnswerUsecase interface {
	Answer(ctx context.Context, req *entity.AskRequest) (<-chan entity.AnswerEvent, error)
}
