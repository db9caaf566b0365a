package service

import (
	"context"

	"wardrobe/client/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Home is the landing screen: today's outfit, a closet preview and recent history.
type Home struct {
	Outfit   *TodaysOutfit
	Wardrobe *Wardrobe
	History  *OutfitHistory
}

func NewHome(outfit *TodaysOutfit, wardrobe *Wardrobe, history *OutfitHistory) *Home {
	return &Home{
		Outfit:   outfit,
		Wardrobe: wardrobe,
		History:  history,
	}
}

// Load starts all three resources concurrently and waits until each has committed.
// Fetch failures stay in each resource's state; the returned error is only ctx's.
func (h *Home) Load(ctx context.Context, historyLimit int) error {
	g, ctx := errgroup.WithContext(ctx)

	wait := func(name string, done <-chan struct{}) func() error {
		return func() error {
			select {
			case <-done:
				log.Debugf("%s ready", name)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	g.Go(wait("outfit", h.Outfit.Use(ctx)))
	g.Go(wait("wardrobe", h.Wardrobe.Use(ctx, domain.CategoryAll)))
	g.Go(wait("history", h.History.Use(ctx, historyLimit)))

	return g.Wait()
}

// Errors lists the messages of resources that ended in error.
func (h *Home) Errors() []string {
	var errs []string
	if s := h.Outfit.State(); s.Failed() {
		errs = append(errs, s.Error)
	}
	if s := h.Wardrobe.State(); s.Failed() {
		errs = append(errs, s.Error)
	}
	if s := h.History.State(); s.Failed() {
		errs = append(errs, s.Error)
	}
	return errs
}
