package service

import (
	"context"
	"sync"

	"wardrobe/client/internal/domain"
	"wardrobe/client/internal/domain/event"
	"wardrobe/client/internal/queue"
)

// fakeAPI is an in-memory WardrobeAPI that records calls.
type fakeAPI struct {
	mu sync.Mutex

	wardrobe    map[domain.Category][]domain.ClothingItem
	wardrobeErr error
	today       *domain.Outfit
	todayErr    error
	generated   *domain.Outfit
	generateErr error
	feedbackErr error
	history     []domain.Outfit
	historyErr  error

	wardrobeCalls []domain.Category
	generateCalls []string
	feedbackCalls []domain.OutfitFeedback
	historyCalls  []int
}

func (f *fakeAPI) GetWardrobe(_ context.Context, category domain.Category) ([]domain.ClothingItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.wardrobeCalls = append(f.wardrobeCalls, category)
	if f.wardrobeErr != nil {
		return nil, f.wardrobeErr
	}
	return f.wardrobe[category], nil
}

func (f *fakeAPI) GetTodaysOutfit(context.Context) (*domain.Outfit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.todayErr != nil {
		return nil, f.todayErr
	}
	return f.today, nil
}

func (f *fakeAPI) GenerateOutfit(_ context.Context, style string) (*domain.Outfit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.generateCalls = append(f.generateCalls, style)
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.generated, nil
}

func (f *fakeAPI) SubmitOutfitFeedback(_ context.Context, outfitID int64, feedback domain.OutfitFeedback) (*domain.Outfit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.feedbackCalls = append(f.feedbackCalls, feedback)
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}

	updated := domain.Outfit{ID: outfitID, Liked: feedback.Liked, Saved: feedback.Saved}
	if f.today != nil && f.today.ID == outfitID {
		updated = *f.today
		updated.Liked = feedback.Liked
		updated.Saved = feedback.Saved
	}
	return &updated, nil
}

func (f *fakeAPI) GetOutfitHistory(_ context.Context, limit int) ([]domain.Outfit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.historyCalls = append(f.historyCalls, limit)
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeAPI) feedbackCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.feedbackCalls)
}

type recordingChannel struct {
	mu     sync.Mutex
	events []event.Event
}

func (c *recordingChannel) Publish(_ context.Context, e event.Event) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return "1-0", nil
}

func (c *recordingChannel) Recent(context.Context, string, int64) ([]queue.Record, error) {
	return nil, nil
}

func boolPtr(b bool) *bool {
	return &b
}
