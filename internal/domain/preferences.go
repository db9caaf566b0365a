package domain

import (
	"fmt"
	"strings"
)

type Vibe string

const (
	VibeChill Vibe = "chill"
	VibeClean Vibe = "clean"
	VibeSmart Vibe = "smart"
)

var Vibes = []Vibe{VibeChill, VibeClean, VibeSmart}

func ParseVibe(s string) (Vibe, error) {
	v := Vibe(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Vibes {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown vibe %q", s)
}

// Preferences are the profile screen settings.
type Preferences struct {
	Vibe               Vibe `json:"vibe"`
	WeatherEnabled     bool `json:"weatherEnabled"`
	DailyInspo         bool `json:"dailyInspo"`
	OnboardingComplete bool `json:"onboardingComplete"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Vibe:           VibeClean,
		WeatherEnabled: true,
	}
}
