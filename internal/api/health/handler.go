package health

import (
	"context"
	"net/http"
	"time"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/pkg/logger"
	"github.com/futig/docchat-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	statusOK    = "OK"
	statusError = "Error"

	probeTimeout = 10 * time.Second
)

type Handler struct {
	db   DBPinger
	docs DocumentCounter
	llm  LLMPinger
}

func NewHandler(db DBPinger, docs DocumentCounter, llm LLMPinger) *Handler {
	return &Handler{db: db, docs: docs, llm: llm}
}

// Check handles GET /health. Each subsystem is probed independently so one
// failing dependency does not mask the state of the others.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "HealthCheck")
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	status := entity.HealthResponse{
		Backend: statusOK,
		Storage: statusOK,
		DB:      statusOK,
		LLM:     statusOK,
	}

	if err := h.db.Ping(ctx); err != nil {
		ctxzap.Warn(ctx, "database probe failed", zap.Error(err))
		status.DB = statusError
	}

	if _, err := h.docs.Count(ctx); err != nil {
		ctxzap.Warn(ctx, "storage probe failed", zap.Error(err))
		status.Storage = statusError
	}

	if err := h.llm.Ping(ctx); err != nil {
		ctxzap.Warn(ctx, "llm probe failed", zap.Error(err))
		status.LLM = statusError
	}

	response.Success(w, status)
}
