package entity

// Wire types for the Gemini generative language REST API.

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiEmbedRequest struct {
	Model                string        `json:"model"`
	Content              GeminiContent `json:"content"`
	OutputDimensionality int           `json:"outputDimensionality,omitempty"`
}

type GeminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

type GeminiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

type GeminiGenerateRequest struct {
	Contents         []GeminiContent         `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

// GeminiGenerateChunk is one SSE frame of a streamGenerateContent response
type GeminiGenerateChunk struct {
	Candidates []struct {
		Content      GeminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
}

// Text concatenates the text parts of the first candidate
func (c *GeminiGenerateChunk) Text() string {
	if len(c.Candidates) == 0 {
		return ""
	}
	var out string
	for _, p := range c.Candidates[0].Content.Parts {
		out += p.Text
	}
	return out
}
