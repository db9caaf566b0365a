package service

import (
	"context"

	"wardrobe/client/internal/client"
	"wardrobe/client/internal/domain"
	"wardrobe/client/internal/resource"
)

// Wardrobe is the closet gallery resource, filtered by category on the server.
type Wardrobe struct {
	*resource.Resource[[]domain.ClothingItem, domain.Category]
}

func NewWardrobe(api client.WardrobeAPI) *Wardrobe {
	fetch := func(ctx context.Context, category domain.Category) ([]domain.ClothingItem, error) {
		items, err := api.GetWardrobe(ctx, category)
		if err != nil {
			return nil, err
		}
		if items == nil {
			return []domain.ClothingItem{}, nil
		}
		return items, nil
	}

	w := &Wardrobe{
		Resource: resource.New("wardrobe", fetch, resource.Options[[]domain.ClothingItem]{
			Empty:           []domain.ClothingItem{},
			FallbackMessage: "Failed to fetch wardrobe",
		}),
	}
	w.Bind(domain.CategoryAll)
	return w
}

// Use binds the category filter. "all" and "" are the same filter.
func (w *Wardrobe) Use(ctx context.Context, category domain.Category) <-chan struct{} {
	if category == "" {
		category = domain.CategoryAll
	}
	return w.Resource.Use(ctx, category)
}

func (w *Wardrobe) Items() []domain.ClothingItem {
	return w.State().Value
}
