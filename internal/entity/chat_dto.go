package entity

// CreateChatRequest is the payload of POST /chats
type CreateChatRequest struct {
	Title string `json:"title,omitempty"`
}

// RenameChatRequest is the payload of PATCH /chats
type RenameChatRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ExportFormat selects the rendering of a chat transcript export
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "md"
	FormatDOCX     ExportFormat = "docx"
	FormatPDF      ExportFormat = "pdf"
)
