package main

import (
	"errors"

	"wardrobe/client/internal/domain"

	"github.com/spf13/cobra"
)

var closetCategory string

var closetCmd = &cobra.Command{
	Use:   "closet",
	Short: "List closet items",
	Long:  `List the items in your closet, optionally filtered by category (all, tops, bottoms, layers, shoes, accessories).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := domain.ParseCategory(closetCategory)
		if err != nil {
			return err
		}

		<-app.Wardrobe.Use(cmd.Context(), category)

		state := app.Wardrobe.State()
		if state.Failed() {
			return errors.New(state.Error)
		}

		printItems(cmd.OutOrStdout(), state.Value)
		return nil
	},
}

func init() {
	closetCmd.Flags().StringVarP(&closetCategory, "category", "c", "all", "category filter")
	rootCmd.AddCommand(closetCmd)
}
