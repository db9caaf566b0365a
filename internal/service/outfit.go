package service

import (
	"context"
	"time"

	"wardrobe/client/internal/client"
	"wardrobe/client/internal/domain"
	"wardrobe/client/internal/domain/event"
	"wardrobe/client/internal/queue"
	"wardrobe/client/internal/resource"

	log "github.com/sirupsen/logrus"
)

// TodaysOutfit is the current day's outfit. It has no parameter.
type TodaysOutfit struct {
	*resource.Resource[*domain.Outfit, struct{}]

	api         client.WardrobeAPI
	diagnostics queue.Channel
}

func NewTodaysOutfit(api client.WardrobeAPI, diagnostics queue.Channel) *TodaysOutfit {
	fetch := func(ctx context.Context, _ struct{}) (*domain.Outfit, error) {
		return api.GetTodaysOutfit(ctx)
	}

	if diagnostics == nil {
		diagnostics = queue.NewLogChannel()
	}

	return &TodaysOutfit{
		Resource: resource.New("todays outfit", fetch, resource.Options[*domain.Outfit]{
			FallbackMessage: "Failed to fetch outfit",
		}),
		api:         api,
		diagnostics: diagnostics,
	}
}

func (o *TodaysOutfit) Use(ctx context.Context) <-chan struct{} {
	return o.Resource.Use(ctx, struct{}{})
}

func (o *TodaysOutfit) Outfit() *domain.Outfit {
	return o.State().Value
}

// GenerateNew asks the server for a fresh outfit. The result replaces the current
// outfit and is also returned. nil means the request failed and Error is set, or
// a newer load started meanwhile and owns the state.
func (o *TodaysOutfit) GenerateNew(ctx context.Context, style string) *domain.Outfit {
	outfit, err := o.Do(ctx, func(ctx context.Context) (*domain.Outfit, error) {
		outfit, err := o.api.GenerateOutfit(ctx, style)
		if err != nil && err.Error() == "" {
			return nil, &client.APIError{Op: "generate outfit", Message: "Failed to generate outfit"}
		}
		return outfit, err
	})
	if err != nil {
		return nil
	}
	return outfit
}

// SubmitFeedback records liked/saved on the current outfit. Without a loaded outfit
// it does nothing. A failure leaves the outfit and Error untouched; it is logged,
// published to the diagnostic channel and returned so callers can tell.
func (o *TodaysOutfit) SubmitFeedback(ctx context.Context, liked, saved *bool) error {
	current := o.Outfit()
	if !current.HasID() {
		log.Debug("Skipping feedback: no outfit loaded")
		return nil
	}

	feedback := domain.OutfitFeedback{Liked: liked, Saved: saved}

	err := o.Update(ctx, func(ctx context.Context, _ *domain.Outfit) (*domain.Outfit, error) {
		return o.api.SubmitOutfitFeedback(ctx, current.ID, feedback)
	})
	if err != nil {
		log.Errorf("❌ Failed to submit feedback for outfit %d: %v", current.ID, err)

		failure := &event.FeedbackFailedEvent{
			OutfitID:   current.ID,
			Liked:      liked,
			Saved:      saved,
			Error:      err.Error(),
			OccurredAt: time.Now().UTC(),
		}
		if _, pubErr := o.diagnostics.Publish(ctx, failure); pubErr != nil {
			log.Errorf("❌ Failed to publish feedback failure for outfit %d: %v", current.ID, pubErr)
		}
		return err
	}

	log.Debugf("Feedback recorded for outfit %d", current.ID)
	return nil
}
