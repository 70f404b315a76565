package entity

// AskRequest is the payload of POST /ask
type AskRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ErrorResponse is the JSON body of non-streaming error replies
type ErrorResponse struct {
	Error string `json:"error"`
}
