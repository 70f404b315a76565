package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockDimension = 768

// MockConnector is a deterministic stand-in for the Gemini API, enabled via
// ENABLE_MOCKS. Embeddings are derived from a hash of the input so identical
// texts always map to identical vectors.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] embedding text", zap.Int("text_length", len(text)))

	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(text))))
	vec := make([]float32, mockDimension)
	var norm float64
	for i := range vec {
		seed := binary.LittleEndian.Uint32(sum[(i*4)%28 : (i*4)%28+4])
		v := float64(int32(seed+uint32(i)*2654435761)) / math.MaxInt32
		vec[i] = float32(v)
		norm += v * v
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}

	return vec, nil
}

func (m *MockConnector) GenerateStream(ctx context.Context, prompt string, onFragment func(string) error) error {
	ctxzap.Info(ctx, "[MOCK] streaming generated answer", zap.Int("prompt_length", len(prompt)))

	words := []string{"This ", "is ", "a ", "mocked ", "answer ", "grounded ", "in ", "your ", "documents."}
	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onFragment(word); err != nil {
			return err
		}
	}

	return nil
}

func (m *MockConnector) Ping(ctx context.Context) error {
	ctxzap.Debug(ctx, "[MOCK] ping")
	return nil
}
