package answer

import (
	"strings"

	"github.com/futig/docchat-backend/internal/entity"
)

const (
	contextSeparator = "\n\n---\n\n"
	maxTitleLength   = 60
)

// buildPrompt assembles the grounded prompt: instructions, retrieved
// context, prior conversation turns, then the question.
func buildPrompt(chunks []entity.ScoredChunk, history []*entity.Message, question string) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant. Use the following pieces of context to answer the question at the end.\n")
	b.WriteString("If the answer is not in the context, say \"I don't know\". Do not try to make up an answer.\n\n")

	b.WriteString("Context:\n")
	for i, chunk := range chunks {
		if i > 0 {
			b.WriteString(contextSeparator)
		}
		b.WriteString(chunk.Text)
	}
	b.WriteString("\n\n")

	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, msg := range history {
			b.WriteString(historyPrefix(msg.Role))
			b.WriteString(msg.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Question:\n")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")

	return b.String()
}

func historyPrefix(role entity.MessageRole) string {
	if role == entity.RoleAssistant {
		return "Assistant: "
	}
	return "Human: "
}

// summarizeTitle derives a chat title from its first question
func summarizeTitle(question string) string {
	title := strings.Join(strings.Fields(question), " ")
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return strings.TrimSpace(string(runes[:maxTitleLength])) + "..."
}

func toSources(chunks []entity.ScoredChunk) []entity.Source {
	sources := make([]entity.Source, 0, len(chunks))
	for _, chunk := range chunks {
		sources = append(sources, entity.Source{
			Filename: chunk.Metadata.Filename,
			Text:     chunk.Text,
		})
	}
	return sources
}
