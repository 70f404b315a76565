package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/docchat-backend/internal/api"
	askapi "github.com/futig/docchat-backend/internal/api/ask"
	chatapi "github.com/futig/docchat-backend/internal/api/chat"
	documentapi "github.com/futig/docchat-backend/internal/api/document"
	healthapi "github.com/futig/docchat-backend/internal/api/health"
	"github.com/futig/docchat-backend/internal/config"
	"github.com/futig/docchat-backend/internal/integration/gemini"
	"github.com/futig/docchat-backend/internal/pkg/chunker"
	"github.com/futig/docchat-backend/internal/pkg/formatter"
	"github.com/futig/docchat-backend/internal/pkg/validator"
	"github.com/futig/docchat-backend/internal/repository"
	answeruc "github.com/futig/docchat-backend/internal/usecase/answer"
	chatuc "github.com/futig/docchat-backend/internal/usecase/chat"
	documentuc "github.com/futig/docchat-backend/internal/usecase/document"
	"github.com/futig/docchat-backend/internal/vectorstore"
	"github.com/futig/docchat-backend/internal/vectorstore/memory"
	"github.com/futig/docchat-backend/internal/vectorstore/pgvector"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	docRepo := repository.NewDocumentPostgres(db)
	chatRepo := repository.NewChatPostgres(db)
	msgRepo := repository.NewMessagePostgres(db)
	logger.Info("Repositories initialized")

	// Initialize the LLM connector and vector store (with mock support)
	var llm answeruc.LLMConnector
	var llmPinger healthapi.LLMPinger
	var store vectorstore.VectorStore

	if cfg.EnableMocks {
		logger.Info("Using mock connector and in-memory vector store")
		mock := gemini.NewMockConnector(logger)
		llm = mock
		llmPinger = mock
		store = memory.NewStore(mock)
	} else {
		logger.Info("Using Gemini connector and pgvector store")
		conn := gemini.NewConnector(cfg.GeminiCfg, logger)
		llm = conn
		llmPinger = conn
		store = pgvector.NewStore(db, conn)
	}

	// Initialize supporting components
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)
	splitter := chunker.New(cfg.RAGCfg.ChunkSize, cfg.RAGCfg.ChunkOverlap)
	formatters := formatter.NewFactory()

	// Initialize use cases
	answerUC := answeruc.NewUsecase(docRepo, chatRepo, msgRepo, store, llm, cfg.RAGCfg.TopK, logger)
	documentUC := documentuc.NewUsecase(docRepo, store, splitter, fileValidator, logger)
	chatUC := chatuc.NewUsecase(chatRepo, msgRepo, formatters, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	askHandler := askapi.NewHandler(answerUC)
	documentHandler := documentapi.NewHandler(documentUC, cfg.FileUploadCfg)
	chatHandler := chatapi.NewHandler(chatUC)
	healthHandler := healthapi.NewHandler(db, docRepo, llmPinger)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(askHandler, documentHandler, chatHandler, healthHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. WriteTimeout stays unset: answer streams are
	// long-lived and bounded by the router timeout middleware instead.
	server := &http.Server{
		Addr:        cfg.ServerAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
