package ask

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/pkg/logger"
	"github.com/futig/docchat-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase AnswerUsecase
}

func NewHandler(usecase AnswerUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Ask handles POST /ask. Validation failures are plain JSON errors; once
// streaming starts, every outcome is delivered as SSE events.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ask")

	var req entity.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ConversationID != "" {
		ctx = logger.AddFields(ctx, zap.String("chat_id", req.ConversationID))
	}

	events, err := h.usecase.Answer(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		ctxzap.Error(ctx, "response writer does not support streaming")
		response.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for event := range events {
		payload, err := json.Marshal(toFrame(event))
		if err != nil {
			ctxzap.Error(ctx, "failed to marshal stream event", zap.Error(err))
			return
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			// Writer is dead, the producer will notice via ctx
			ctxzap.Info(ctx, "client closed the stream", zap.Error(err))
			return
		}
		flusher.Flush()
	}
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrEmptyQuestion):
		ctxzap.Warn(ctx, "empty question")
		response.Error(w, http.StatusBadRequest, "No question provided")
	case errors.Is(err, entity.ErrNoDocuments):
		ctxzap.Warn(ctx, "no documents uploaded")
		response.Error(w, http.StatusBadRequest, "No documents found. Please upload documents first.")
	default:
		ctxzap.Error(ctx, "failed to start answer stream", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
