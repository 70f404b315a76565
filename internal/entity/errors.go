package entity

import "errors"

// Domain errors
var (
	// Ask errors
	ErrEmptyQuestion = errors.New("no question provided")
	ErrNoDocuments   = errors.New("no documents uploaded")

	// Document errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrFileTooLarge     = errors.New("file too large")
	ErrEmptyFile        = errors.New("file contains no extractable text")

	// Chat errors
	ErrChatNotFound = errors.New("chat not found")

	// Upstream errors
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	ErrEmbeddingAuth        = errors.New("embedding service rejected credentials")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
