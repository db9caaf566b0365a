package main

import (
	"errors"

	"wardrobe/client/internal/domain"

	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyFilter string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past outfits",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := domain.ParseHistoryFilter(historyFilter)
		if err != nil {
			return err
		}

		limit := historyLimit
		if limit <= 0 {
			limit = app.Config.History.Limit
		}

		<-app.History.Use(cmd.Context(), limit)

		if state := app.History.State(); state.Failed() {
			return errors.New(state.Error)
		}

		printHistory(cmd.OutOrStdout(), app.History.Filtered(filter))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum outfits to fetch (default from config)")
	historyCmd.Flags().StringVarP(&historyFilter, "filter", "f", "all", "all, saved or skipped")
	rootCmd.AddCommand(historyCmd)
}
