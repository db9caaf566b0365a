package domain

import "time"

type Outfit struct {
	ID        int64          `json:"id"`
	Items     []ClothingItem `json:"items"`
	Liked     *bool          `json:"liked,omitempty"`
	Saved     *bool          `json:"saved,omitempty"`
	Style     string         `json:"style,omitempty"`
	Date      string         `json:"date,omitempty"` // YYYY-MM-DD the outfit was generated for
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
}

func (o *Outfit) HasID() bool {
	return o != nil && o.ID != 0
}

type FeedbackLabel string

const (
	FeedbackLoved   FeedbackLabel = "loved"
	FeedbackSaved   FeedbackLabel = "saved"
	FeedbackSkipped FeedbackLabel = "skipped"
	FeedbackPending FeedbackLabel = "pending"
)

// FeedbackLabel collapses the liked/saved pair into the badge shown in history.
// A save wins over a like; an explicit dislike is a skip.
func (o Outfit) FeedbackLabel() FeedbackLabel {
	switch {
	case o.Saved != nil && *o.Saved:
		return FeedbackSaved
	case o.Liked != nil && *o.Liked:
		return FeedbackLoved
	case o.Liked != nil && !*o.Liked:
		return FeedbackSkipped
	default:
		return FeedbackPending
	}
}

// OutfitFeedback is the body of a feedback submission. Nil fields are left untouched server-side.
type OutfitFeedback struct {
	Liked *bool `json:"liked,omitempty"`
	Saved *bool `json:"saved,omitempty"`
}

func (f OutfitFeedback) IsEmpty() bool {
	return f.Liked == nil && f.Saved == nil
}
