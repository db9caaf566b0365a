package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"wardrobe/client/internal/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printItems(w io.Writer, items []domain.ClothingItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "closet is empty")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDETAIL")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", item.ID, item.Name, item.Category.Label(), item.Subtitle())
	}
	tw.Flush()
}

func printOutfit(w io.Writer, outfit *domain.Outfit) {
	if outfit == nil {
		fmt.Fprintln(w, "no outfit yet")
		return
	}

	fmt.Fprintf(w, "outfit #%d", outfit.ID)
	if outfit.Style != "" {
		fmt.Fprintf(w, " (%s)", outfit.Style)
	}
	if outfit.Date != "" {
		fmt.Fprintf(w, " for %s", outfit.Date)
	}
	fmt.Fprintf(w, " [%s]\n", outfit.FeedbackLabel())

	for _, item := range outfit.Items {
		fmt.Fprintf(w, "  - %s (%s)\n", item.Name, item.Category.Label())
	}
}

func printHistory(w io.Writer, outfits []domain.Outfit) {
	if len(outfits) == 0 {
		fmt.Fprintln(w, "no outfits yet")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tSTYLE\tFEEDBACK\tITEMS")
	for _, o := range outfits {
		names := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			names = append(names, item.Name)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", o.ID, o.Date, o.Style, o.FeedbackLabel(), strings.Join(names, ", "))
	}
	tw.Flush()
}

func printPreferences(w io.Writer, user string, prefs domain.Preferences) {
	tw := newTable(w)
	fmt.Fprintf(tw, "user\t%s\n", user)
	fmt.Fprintf(tw, "vibe\t%s\n", prefs.Vibe)
	fmt.Fprintf(tw, "weather\t%t\n", prefs.WeatherEnabled)
	fmt.Fprintf(tw, "daily inspo\t%t\n", prefs.DailyInspo)
	fmt.Fprintf(tw, "onboarded\t%t\n", prefs.OnboardingComplete)
	tw.Flush()
}
