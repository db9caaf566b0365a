package service

import (
	"context"

	"wardrobe/client/internal/client"
	"wardrobe/client/internal/domain"
	"wardrobe/client/internal/resource"
)

const DefaultHistoryLimit = 20

// OutfitHistory lists past outfits in server order (newest first), capped at the
// bound limit.
type OutfitHistory struct {
	*resource.Resource[[]domain.Outfit, int]
}

func NewOutfitHistory(api client.WardrobeAPI) *OutfitHistory {
	fetch := func(ctx context.Context, limit int) ([]domain.Outfit, error) {
		if limit <= 0 {
			limit = DefaultHistoryLimit
		}

		outfits, err := api.GetOutfitHistory(ctx, limit)
		if err != nil {
			return nil, err
		}
		if outfits == nil {
			return []domain.Outfit{}, nil
		}
		if len(outfits) > limit {
			outfits = outfits[:limit]
		}
		return outfits, nil
	}

	h := &OutfitHistory{
		Resource: resource.New("outfit history", fetch, resource.Options[[]domain.Outfit]{
			Empty:           []domain.Outfit{},
			FallbackMessage: "Failed to fetch history",
		}),
	}
	h.Bind(DefaultHistoryLimit)
	return h
}

// Use binds the result limit; non-positive limits fall back to DefaultHistoryLimit.
func (h *OutfitHistory) Use(ctx context.Context, limit int) <-chan struct{} {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return h.Resource.Use(ctx, limit)
}

func (h *OutfitHistory) Outfits() []domain.Outfit {
	return h.State().Value
}

// Filtered applies a history screen filter to the loaded outfits.
func (h *OutfitHistory) Filtered(filter domain.HistoryFilter) []domain.Outfit {
	return domain.FilterOutfits(h.Outfits(), filter)
}
