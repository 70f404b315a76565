package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/pkg/logger"
	"github.com/futig/docchat-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase ChatUsecase
}

func NewHandler(usecase ChatUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Create handles POST /chats
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateChat")

	var req entity.CreateChatRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	chat, err := h.usecase.Create(ctx, req.Title)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, chat)
}

// List handles GET /chats
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListChats")

	chats, err := h.usecase.List(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if chats == nil {
		chats = []*entity.Chat{}
	}

	ctxzap.Debug(ctx, "chats listed", zap.Int("count", len(chats)))
	response.Success(w, chats)
}

// Rename handles PATCH /chats
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RenameChat")

	var req entity.RenameChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ID == "" {
		ctxzap.Warn(ctx, "missing chat id")
		response.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx = logger.AddFields(ctx, zap.String("chat_id", req.ID))

	if err := h.usecase.Rename(ctx, req.ID, req.Title); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.DeleteResponse{Success: true})
}

// Delete handles DELETE /chats?id=
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chatID := r.URL.Query().Get("id")

	ctx = logger.AddFields(ctx,
		zap.String("chat_id", chatID),
		zap.String("action", "DeleteChat"),
	)

	if chatID == "" {
		ctxzap.Warn(ctx, "missing chat id")
		response.Error(w, http.StatusBadRequest, "id query parameter is required")
		return
	}

	if err := h.usecase.Delete(ctx, chatID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.DeleteResponse{Success: true})
}

// History handles GET /chats/{chat_id}
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chatID := chi.URLParam(r, "chat_id")

	ctx = logger.AddFields(ctx,
		zap.String("chat_id", chatID),
		zap.String("action", "ChatHistory"),
	)

	messages, err := h.usecase.History(ctx, chatID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if messages == nil {
		messages = []*entity.Message{}
	}

	response.Success(w, messages)
}

// Export handles GET /chats/{chat_id}/export?format=md|docx|pdf
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chatID := chi.URLParam(r, "chat_id")

	format := entity.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	ctx = logger.AddFields(ctx,
		zap.String("chat_id", chatID),
		zap.String("format", string(format)),
		zap.String("action", "ExportChat"),
	)

	result, err := h.usecase.Export(ctx, chatID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrChatNotFound):
		ctxzap.Warn(ctx, "chat not found", zap.Error(err))
		response.Error(w, http.StatusNotFound, "Chat not found")
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter):
		ctxzap.Warn(ctx, "invalid request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		ctxzap.Error(ctx, "chat operation failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
