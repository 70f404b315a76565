package entity

// AnswerEventType discriminates the frames of an answer stream
type AnswerEventType string

const (
	EventText    AnswerEventType = "text"
	EventSources AnswerEventType = "sources"
	EventError   AnswerEventType = "error"
	EventDone    AnswerEventType = "done"
)

// Source identifies a retrieved chunk cited by an answer
type Source struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// AnswerEvent is one frame of an answer stream. Content is set for text and
// error events, Sources for sources events, neither for done.
type AnswerEvent struct {
	Type    AnswerEventType
	Content string
	Sources []Source
}
