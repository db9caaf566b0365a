package main

import (
	"fmt"

	"wardrobe/client/internal/domain/event"

	"github.com/spf13/cobra"
)

var diagnosticsCount int64

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "List recent feedback submissions that failed",
	Long:  `Failed feedback never changes the outfit shown, so failures are kept on a diagnostic stream. Requires redis.enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.Config.Redis.Enabled {
			return fmt.Errorf("diagnostics are only kept when redis is enabled")
		}

		records, err := app.Diagnostics.Recent(cmd.Context(), event.FeedbackFailedType, diagnosticsCount)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "no failures recorded")
			return nil
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tOUTFIT\tWHEN\tERROR")
		for _, rec := range records {
			e, err := event.UnmarshalEvent[event.FeedbackFailedEvent]([]byte(rec.Data))
			if err != nil {
				fmt.Fprintf(tw, "%s\t?\t?\tunreadable: %v\n", rec.ID, err)
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", rec.ID, e.OutfitID, e.OccurredAt.Format("2006-01-02 15:04"), e.Error)
		}
		return tw.Flush()
	},
}

func init() {
	diagnosticsCmd.Flags().Int64VarP(&diagnosticsCount, "count", "n", 20, "number of failures to show")
	rootCmd.AddCommand(diagnosticsCmd)
}
