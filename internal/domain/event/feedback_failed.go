package event

import "time"

const FeedbackFailedType = "FeedbackFailedEvent"

// FeedbackFailedEvent records a feedback submission the server rejected.
type FeedbackFailedEvent struct {
	OutfitID   int64     `json:"outfit_id"`
	Liked      *bool     `json:"liked,omitempty"`
	Saved      *bool     `json:"saved,omitempty"`
	Error      string    `json:"error"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *FeedbackFailedEvent) EventType() string {
	return FeedbackFailedType
}

func (e *FeedbackFailedEvent) EventValue() ([]byte, error) {
	return DefaultEventValue(e)
}
