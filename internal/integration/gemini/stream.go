package gemini

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxStreamLineBytes = 1 << 20

// GenerateStream invokes the generative model in token-streaming mode and
// relays every text fragment to onFragment in arrival order. The call
// returns when the upstream stream closes, ctx is cancelled, or onFragment
// returns an error.
func (c *Connector) GenerateStream(ctx context.Context, prompt string, onFragment func(string) error) error {
	if c.config.StreamTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.StreamTimeout)
		defer cancel()
	}

	req := &entity.GeminiGenerateRequest{
		Contents: []entity.GeminiContent{
			{Role: "user", Parts: []entity.GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: &entity.GeminiGenerationConfig{
			MaxOutputTokens: c.config.MaxOutputTokens,
		},
	}
	endpoint := fmt.Sprintf("/models/%s:streamGenerateContent?alt=sse", c.config.GenerateModel)

	ctxzap.Info(ctx, "starting generation stream",
		zap.String("model", c.config.GenerateModel),
		zap.Int("prompt_length", len(prompt)),
	)

	fragments := 0
	err := c.streamConn.DoStreamRequest(ctx, http.MethodPost, endpoint, req, func(body io.Reader) error {
		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 64*1024), maxStreamLineBytes)

		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				return err
			}

			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}

			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == "" || payload == "[DONE]" {
				continue
			}

			var chunk entity.GeminiGenerateChunk
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				return fmt.Errorf("decode stream chunk: %w", err)
			}

			if text := chunk.Text(); text != "" {
				fragments++
				if err := onFragment(text); err != nil {
					return err
				}
			}
		}

		return scanner.Err()
	})
	if err != nil {
		return err
	}

	ctxzap.Info(ctx, "generation stream finished", zap.Int("fragments", fragments))
	return nil
}
