package domain

import (
	"fmt"
	"strings"
)

type HistoryFilter string

const (
	HistoryAll     HistoryFilter = "all"
	HistorySaved   HistoryFilter = "saved"
	HistorySkipped HistoryFilter = "skipped"
)

var HistoryFilters = []HistoryFilter{HistoryAll, HistorySaved, HistorySkipped}

func ParseHistoryFilter(s string) (HistoryFilter, error) {
	switch f := HistoryFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return HistoryAll, nil
	case HistoryAll, HistorySaved, HistorySkipped:
		return f, nil
	default:
		return "", fmt.Errorf("unknown history filter %q", s)
	}
}

func (f HistoryFilter) Match(o Outfit) bool {
	switch f {
	case HistorySaved:
		return o.FeedbackLabel() == FeedbackSaved
	case HistorySkipped:
		return o.FeedbackLabel() == FeedbackSkipped
	default:
		return true
	}
}

// FilterOutfits keeps the server order.
func FilterOutfits(outfits []Outfit, f HistoryFilter) []Outfit {
	filtered := make([]Outfit, 0, len(outfits))
	for _, o := range outfits {
		if f.Match(o) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
