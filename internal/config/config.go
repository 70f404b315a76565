package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/docchat-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configuration
	GeminiCfg GeminiConnectorConfig `envPrefix:"GEMINI_"`

	// Retrieval configuration
	RAGCfg RAGConfig `envPrefix:"RAG_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// GeminiConnectorConfig configures the Gemini embeddings/generation client
type GeminiConnectorConfig struct {
	HTTPClientConfig
	APIKey             string               `env:"API_KEY"`
	EmbedModel         string               `env:"EMBED_MODEL" envDefault:"gemini-embedding-001"`
	GenerateModel      string               `env:"GENERATE_MODEL" envDefault:"gemini-2.0-flash"`
	EmbeddingDimension int                  `env:"EMBEDDING_DIMENSION" envDefault:"768"`
	MaxOutputTokens    int                  `env:"MAX_OUTPUT_TOKENS" envDefault:"2048"`
	EmbedCacheTTL      time.Duration        `env:"EMBED_CACHE_TTL" envDefault:"5m"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// RAGConfig controls chunking and retrieval
type RAGConfig struct {
	ChunkSize    int `env:"CHUNK_SIZE" envDefault:"500"`
	ChunkOverlap int `env:"CHUNK_OVERLAP" envDefault:"100"`
	TopK         int `env:"TOP_K" envDefault:"3"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	StreamTimeout         time.Duration `env:"STREAM_TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"`    // 5 MiB
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if cfg.RAGCfg.ChunkSize < 1 {
		errors = append(errors, fmt.Sprintf("RAG_CHUNK_SIZE must be positive, got %d", cfg.RAGCfg.ChunkSize))
	}

	if cfg.RAGCfg.ChunkOverlap < 0 || cfg.RAGCfg.ChunkOverlap >= cfg.RAGCfg.ChunkSize {
		errors = append(errors, fmt.Sprintf("RAG_CHUNK_OVERLAP must be between 0 and RAG_CHUNK_SIZE(%d), got %d", cfg.RAGCfg.ChunkSize, cfg.RAGCfg.ChunkOverlap))
	}

	if cfg.RAGCfg.TopK < 1 || cfg.RAGCfg.TopK > 20 {
		errors = append(errors, fmt.Sprintf("RAG_TOP_K must be between 1 and 20, got %d", cfg.RAGCfg.TopK))
	}

	if !cfg.EnableMocks && cfg.GeminiCfg.APIKey == "" {
		errors = append(errors, "GEMINI_API_KEY is required unless ENABLE_MOCKS is set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
