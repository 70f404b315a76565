package ask

import "github.com/futig/docchat-backend/internal/entity"

// frame is the wire shape of one SSE data payload
type frame struct {
	Type    entity.AnswerEventType `json:"type"`
	Content any                    `json:"content,omitempty"`
}

// toFrame converts a stream event to its wire shape
func toFrame(event entity.AnswerEvent) frame {
	switch event.Type {
	case entity.EventSources:
		sources := event.Sources
		if sources == nil {
			sources = []entity.Source{}
		}
		return frame{Type: event.Type, Content: sources}
	case entity.EventDone:
		return frame{Type: event.Type}
	default:
		return frame{Type: event.Type, Content: event.Content}
	}
}
