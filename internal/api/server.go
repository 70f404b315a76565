package api

import (
	"net/http"
	"time"

	askapi "github.com/futig/docchat-backend/internal/api/ask"
	chatapi "github.com/futig/docchat-backend/internal/api/chat"
	"github.com/futig/docchat-backend/internal/api/docs"
	documentapi "github.com/futig/docchat-backend/internal/api/document"
	healthapi "github.com/futig/docchat-backend/internal/api/health"
	"github.com/futig/docchat-backend/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	askHandler *askapi.Handler,
	documentHandler *documentapi.Handler,
	chatHandler *chatapi.Handler,
	healthHandler *healthapi.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	healthapi.RegisterRoutes(r, healthHandler)
	askapi.RegisterRoutes(r, askHandler)
	documentapi.RegisterRoutes(r, documentHandler)
	chatapi.RegisterRoutes(r, chatHandler)

	return r
}
