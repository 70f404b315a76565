package entity

import "time"

// MessageRole identifies the author of a chat message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// DefaultChatTitle is assigned to chats created without an explicit title.
// The chat is renamed once, from the first question asked in it.
const DefaultChatTitle = "New Chat"

// Document is an uploaded file with its extracted text
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Content    string    `json:"-"`
}

// Chunk is a bounded segment of a document, the unit of retrieval
type Chunk struct {
	DocumentID string
	Text       string
	Metadata   ChunkMetadata
}

// ChunkMetadata travels with every indexed chunk and is stored alongside
// its embedding. DocumentID duplicates Chunk.DocumentID on purpose: vector
// rows are owned through the metadata field, not a foreign key.
type ChunkMetadata struct {
	DocumentID string    `json:"doc_id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ScoredChunk is a retrieval result ordered by decreasing similarity
type ScoredChunk struct {
	Text     string
	Metadata ChunkMetadata
	Score    float64
}

// Chat is a conversation thread
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single turn in a chat. Messages are append-only and are
// removed only together with their chat.
type Message struct {
	ID        int64       `json:"id"`
	ChatID    string      `json:"chat_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}
