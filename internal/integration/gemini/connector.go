package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/futig/docchat-backend/internal/config"
	"github.com/futig/docchat-backend/internal/entity"
	pkghttp "github.com/futig/docchat-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Connector talks to the Gemini generative language API. It serves both
// embedContent (indexing and query-time vectors) and streamGenerateContent
// (token-streaming answers).
type Connector struct {
	config     config.GeminiConnectorConfig
	connector  *pkghttp.Connector
	streamConn *pkghttp.Connector
	embedCache *gocache.Cache
	logger     *zap.Logger
}

func NewConnector(cfg config.GeminiConnectorConfig, logger *zap.Logger) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	baseOpts := []pkghttp.HttpOpts{
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithAuthHeader("x-goog-api-key", cfg.APIKey),
	}

	// The streaming client must not carry an overall request timeout: a
	// generation stream stays open while tokens arrive. Its lifetime is
	// bounded by the caller's context instead.
	return &Connector{
		config:     cfg,
		connector:  pkghttp.NewConnector(connCfg, append(baseOpts, pkghttp.WithRequestTimeout(cfg.RequestTimeout))...),
		streamConn: pkghttp.NewConnector(connCfg, append(baseOpts, pkghttp.WithRequestTimeout(0))...),
		embedCache: gocache.New(cfg.EmbedCacheTTL, 2*cfg.EmbedCacheTTL),
		logger:     logger,
	}
}

// Embed returns the embedding vector for text. A single bounded retry is
// applied; auth failures are not retried. Identical inputs within the cache
// TTL are served from memory.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	key := embedCacheKey(text)
	if cached, ok := c.embedCache.Get(key); ok {
		return cached.([]float32), nil
	}

	req := &entity.GeminiEmbedRequest{
		Model:                "models/" + c.config.EmbedModel,
		Content:              entity.GeminiContent{Parts: []entity.GeminiPart{{Text: text}}},
		OutputDimensionality: c.config.EmbeddingDimension,
	}
	endpoint := fmt.Sprintf("/models/%s:embedContent", c.config.EmbedModel)

	var resp entity.GeminiEmbedResponse
	err := retry.Do(func() error {
		var embedResp entity.GeminiEmbedResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &embedResp); err != nil {
			return classifyEmbedError(err)
		}
		if len(embedResp.Embedding.Values) == 0 {
			return fmt.Errorf("%w: empty embedding in response", entity.ErrEmbeddingUnavailable)
		}
		resp = embedResp
		return nil
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "embedding request failed", zap.Error(err))
		return nil, err
	}

	c.embedCache.SetDefault(key, resp.Embedding.Values)

	ctxzap.Debug(ctx, "text embedded",
		zap.Int("text_length", len(text)),
		zap.Int("dimension", len(resp.Embedding.Values)),
	)

	return resp.Embedding.Values, nil
}

// Ping verifies upstream connectivity with a real embedding call
func (c *Connector) Ping(ctx context.Context) error {
	_, err := c.Embed(ctx, "test")
	return err
}

func classifyEmbedError(err error) error {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
			return retry.Unrecoverable(fmt.Errorf("%w: %v", entity.ErrEmbeddingAuth, err))
		}
		return fmt.Errorf("%w: %v", entity.ErrEmbeddingUnavailable, err)
	}

	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", entity.ErrEmbeddingUnavailable, err)
	}

	return retry.Unrecoverable(err)
}

func embedCacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
