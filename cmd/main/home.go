package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const closetPreviewSize = 4

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Today's outfit, a closet preview and recent outfits",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Home.Load(cmd.Context(), app.Config.History.Limit); err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "== today")
		printOutfit(out, app.Outfit.Outfit())

		fmt.Fprintln(out, "\n== closet")
		items := app.Wardrobe.Items()
		if len(items) > closetPreviewSize {
			items = items[:closetPreviewSize]
		}
		printItems(out, items)

		fmt.Fprintln(out, "\n== recent")
		printHistory(out, app.History.Outfits())

		if errs := app.Home.Errors(); len(errs) > 0 {
			return errors.New(strings.Join(errs, "; "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)
}
