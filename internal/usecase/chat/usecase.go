package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/pkg/formatter"
	"github.com/futig/docchat-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase manages conversation threads and their transcripts
type Usecase struct {
	chatRepo   repository.ChatRepository
	msgRepo    repository.MessageRepository
	formatters *formatter.Factory
	logger     *zap.Logger
}

func NewUsecase(
	chatRepo repository.ChatRepository,
	msgRepo repository.MessageRepository,
	formatters *formatter.Factory,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		chatRepo:   chatRepo,
		msgRepo:    msgRepo,
		formatters: formatters,
		logger:     logger,
	}
}

// Create starts a new chat. An empty title gets the default placeholder and
// is replaced by the first question asked in the chat.
func (uc *Usecase) Create(ctx context.Context, title string) (*entity.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = entity.DefaultChatTitle
	}

	chat, err := uc.chatRepo.Create(ctx, entity.Chat{Title: title})
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}

	ctxzap.Info(ctx, "chat created", zap.String("chat_id", chat.ID))
	return chat, nil
}

// List returns all chats, newest first
func (uc *Usecase) List(ctx context.Context) ([]*entity.Chat, error) {
	return uc.chatRepo.List(ctx)
}

// Rename sets a user-chosen title, ending automatic titling for the chat
func (uc *Usecase) Rename(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title", entity.ErrMissingField)
	}

	return uc.chatRepo.UpdateTitle(ctx, id, title)
}

// Delete removes the chat and all of its messages
func (uc *Usecase) Delete(ctx context.Context, id string) error {
	if err := uc.chatRepo.Delete(ctx, id); err != nil {
		return err
	}

	ctxzap.Info(ctx, "chat deleted", zap.String("chat_id", id))
	return nil
}

// History returns the chat's messages in conversation order
func (uc *Usecase) History(ctx context.Context, id string) ([]*entity.Message, error) {
	if _, err := uc.chatRepo.Get(ctx, id); err != nil {
		return nil, err
	}

	return uc.msgRepo.ListByChat(ctx, id)
}

// ExportResult is a rendered transcript ready to be served as a download
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Export renders the chat transcript in the requested format
func (uc *Usecase) Export(ctx context.Context, id string, format entity.ExportFormat) (*ExportResult, error) {
	chat, err := uc.chatRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	messages, err := uc.msgRepo.ListByChat(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load chat messages: %w", err)
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, fmt.Errorf("%w: format %q", entity.ErrInvalidParameter, format)
	}

	data, err := f.Format(chat.Title, messages)
	if err != nil {
		return nil, fmt.Errorf("render transcript: %w", err)
	}

	ctxzap.Info(ctx, "chat exported",
		zap.String("chat_id", id),
		zap.String("format", string(format)),
		zap.Int("message_count", len(messages)),
	)

	return &ExportResult{
		Data:        data,
		ContentType: f.ContentType(),
		Filename:    exportFilename(chat.Title, f.FileExtension()),
	}, nil
}

// exportFilename builds a safe attachment name from the chat title
func exportFilename(title, extension string) string {
	name := strings.Join(strings.Fields(strings.TrimSpace(title)), "_")
	if name == "" {
		name = "chat"
	}
	if runes := []rune(name); len(runes) > 64 {
		name = string(runes[:64])
	}
	return name + extension
}
