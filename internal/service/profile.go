package service

import (
	"context"

	"wardrobe/client/internal/domain"
	"wardrobe/client/internal/resource"
	"wardrobe/client/internal/state"
)

// Profile holds the profile screen preferences for one user.
type Profile struct {
	*resource.Resource[domain.Preferences, string]

	store state.PreferenceStore
}

func NewProfile(store state.PreferenceStore) *Profile {
	fetch := func(ctx context.Context, user string) (domain.Preferences, error) {
		return store.Get(ctx, user)
	}

	return &Profile{
		Resource: resource.New("profile", fetch, resource.Options[domain.Preferences]{
			Empty:           domain.DefaultPreferences(),
			FallbackMessage: "Failed to load preferences",
		}),
		store: store,
	}
}

// Save persists prefs for the bound user. It reports whether the save succeeded;
// on failure Error is set and the preferences reset to defaults.
func (p *Profile) Save(ctx context.Context, prefs domain.Preferences) bool {
	user := p.Param()

	_, err := p.Do(ctx, func(ctx context.Context) (domain.Preferences, error) {
		if err := p.store.Save(ctx, user, prefs); err != nil {
			return domain.Preferences{}, err
		}
		return prefs, nil
	})
	return err == nil
}
