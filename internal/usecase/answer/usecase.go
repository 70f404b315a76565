package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/repository"
	"github.com/futig/docchat-backend/internal/vectorstore"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// genericFailure is the only message streamed to clients when generation or
// persistence breaks mid-stream; the cause stays in the logs.
const genericFailure = "Failed to generate answer"

// Usecase orchestrates a single question: retrieve, ground, stream, persist
type Usecase struct {
	docRepo  repository.DocumentRepository
	chatRepo repository.ChatRepository
	msgRepo  repository.MessageRepository
	store    vectorstore.VectorStore
	llm      LLMConnector
	topK     int
	logger   *zap.Logger
}

func NewUsecase(
	docRepo repository.DocumentRepository,
	chatRepo repository.ChatRepository,
	msgRepo repository.MessageRepository,
	store vectorstore.VectorStore,
	llm LLMConnector,
	topK int,
	logger *zap.Logger,
) *Usecase {
	if topK <= 0 {
		topK = 3
	}
	return &Usecase{
		docRepo:  docRepo,
		chatRepo: chatRepo,
		msgRepo:  msgRepo,
		store:    store,
		llm:      llm,
		topK:     topK,
		logger:   logger,
	}
}

// Answer validates the question and returns the event stream for it.
// Validation failures are returned synchronously so the transport can reply
// with a plain error before any streaming starts. The returned channel is
// closed when the stream ends; a stream that closes without a done event is
// inconclusive.
func (uc *Usecase) Answer(ctx context.Context, req *entity.AskRequest) (<-chan entity.AnswerEvent, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, entity.ErrEmptyQuestion
	}

	count, err := uc.docRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		return nil, entity.ErrNoDocuments
	}

	events := make(chan entity.AnswerEvent)
	go uc.run(ctx, question, req.ConversationID, events)

	return events, nil
}

func (uc *Usecase) run(ctx context.Context, question, chatID string, events chan<- entity.AnswerEvent) {
	defer close(events)

	// Retrieval comes first; generation is never attempted without
	// retrieved context.
	chunks, err := uc.store.Search(ctx, question, uc.topK)
	if err != nil {
		ctxzap.Error(ctx, "similarity search failed", zap.Error(err))
		uc.emit(ctx, events, entity.AnswerEvent{Type: entity.EventError, Content: genericFailure})
		return
	}
	if len(chunks) == 0 {
		ctxzap.Info(ctx, "no relevant chunks found")
		uc.emit(ctx, events, entity.AnswerEvent{
			Type:    entity.EventError,
			Content: "I couldn't find any relevant information in your documents for this question.",
		})
		return
	}

	// Only truly prior turns go into the transcript: history is loaded
	// before the current question is recorded.
	var history []*entity.Message
	if chatID != "" {
		if err := uc.ensureChat(ctx, chatID, question); err != nil {
			ctxzap.Error(ctx, "prepare chat failed", zap.Error(err))
			uc.emit(ctx, events, entity.AnswerEvent{Type: entity.EventError, Content: genericFailure})
			return
		}

		history, err = uc.msgRepo.ListByChat(ctx, chatID)
		if err != nil {
			ctxzap.Error(ctx, "load history failed", zap.Error(err))
			uc.emit(ctx, events, entity.AnswerEvent{Type: entity.EventError, Content: genericFailure})
			return
		}

		// The user turn is durable even if generation fails below
		if _, err := uc.msgRepo.Append(ctx, chatID, entity.RoleUser, question); err != nil {
			ctxzap.Error(ctx, "persist user message failed", zap.Error(err))
			uc.emit(ctx, events, entity.AnswerEvent{Type: entity.EventError, Content: genericFailure})
			return
		}
	}

	prompt := buildPrompt(chunks, history, question)

	var answer strings.Builder
	err = uc.llm.GenerateStream(ctx, prompt, func(fragment string) error {
		answer.WriteString(fragment)
		return uc.emit(ctx, events, entity.AnswerEvent{Type: entity.EventText, Content: fragment})
	})
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			// Client is gone: abandon the turn, discard the partial answer
			ctxzap.Info(ctx, "generation aborted by client",
				zap.Int("partial_length", answer.Len()),
			)
			return
		}
		ctxzap.Error(ctx, "generation failed", zap.Error(err))
		uc.emit(ctx, events, entity.AnswerEvent{Type: entity.EventError, Content: genericFailure})
		return
	}
	if ctx.Err() != nil {
		ctxzap.Info(ctx, "client disconnected after generation",
			zap.Int("partial_length", answer.Len()),
		)
		return
	}

	if chatID != "" {
		if _, err := uc.msgRepo.Append(ctx, chatID, entity.RoleAssistant, answer.String()); err != nil {
			ctxzap.Error(ctx, "persist assistant message failed", zap.Error(err))
			uc.emit(ctx, events, entity.AnswerEvent{Type: entity.EventError, Content: genericFailure})
			return
		}
	}

	if err := uc.emit(ctx, events, entity.AnswerEvent{Type: entity.EventSources, Sources: toSources(chunks)}); err != nil {
		return
	}
	uc.emit(ctx, events, entity.AnswerEvent{Type: entity.EventDone})

	ctxzap.Info(ctx, "question answered",
		zap.Int("chunk_count", len(chunks)),
		zap.Int("answer_length", answer.Len()),
	)
}

// ensureChat lazily creates the conversation on its first question and
// titles it from that question. The title update is a no-op once a real
// title is assigned.
func (uc *Usecase) ensureChat(ctx context.Context, chatID, question string) error {
	_, err := uc.chatRepo.Get(ctx, chatID)
	if errors.Is(err, entity.ErrChatNotFound) {
		_, err = uc.chatRepo.Create(ctx, entity.Chat{
			ID:    chatID,
			Title: summarizeTitle(question),
		})
		return err
	}
	if err != nil {
		return err
	}

	return uc.chatRepo.UpdateTitleIfUnset(ctx, chatID, summarizeTitle(question))
}

// emit delivers an event unless the consumer already went away
func (uc *Usecase) emit(ctx context.Context, events chan<- entity.AnswerEvent, event entity.AnswerEvent) error {
	select {
	case events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
