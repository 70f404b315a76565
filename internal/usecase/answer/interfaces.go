package answer

import "context"

// LLMConnector produces a streamed answer for a fully assembled prompt
type LLMConnector interface {
	GenerateStream(ctx context.Context, prompt string, onFragment func(string) error) error
}
