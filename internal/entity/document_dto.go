package entity

// UploadDocumentResponse is returned by POST /documents
type UploadDocumentResponse struct {
	Success  bool      `json:"success"`
	Metadata *Document `json:"metadata"`
}

// DeleteResponse acknowledges a successful delete
type DeleteResponse struct {
	Success bool `json:"success"`
}

// HealthResponse reports per-subsystem liveness, each value is "OK" or "Error"
type HealthResponse struct {
	Backend string `json:"backend"`
	Storage string `json:"storage"`
	DB      string `json:"db"`
	LLM     string `json:"llm"`
}
