package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	generateStyle string

	feedbackLike    bool
	feedbackDislike bool
	feedbackSave    bool
	feedbackUnsave  bool
)

var outfitCmd = &cobra.Command{
	Use:   "outfit",
	Short: "Show today's outfit",
	RunE: func(cmd *cobra.Command, args []string) error {
		<-app.Outfit.Use(cmd.Context())

		state := app.Outfit.State()
		if state.Failed() {
			return errors.New(state.Error)
		}

		printOutfit(cmd.OutOrStdout(), state.Value)
		return nil
	},
}

var outfitGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new outfit for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		outfit := app.Outfit.GenerateNew(cmd.Context(), generateStyle)
		if outfit == nil {
			return errors.New(app.Outfit.State().Error)
		}

		printOutfit(cmd.OutOrStdout(), outfit)
		return nil
	},
}

var outfitFeedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Like, skip or save today's outfit",
	RunE: func(cmd *cobra.Command, args []string) error {
		liked, err := tristate(cmd, "like", "dislike", feedbackLike)
		if err != nil {
			return err
		}
		saved, err := tristate(cmd, "save", "unsave", feedbackSave)
		if err != nil {
			return err
		}
		if liked == nil && saved == nil {
			return errors.New("nothing to submit: pass --like, --dislike, --save or --unsave")
		}

		<-app.Outfit.Use(cmd.Context())
		if state := app.Outfit.State(); state.Failed() {
			return errors.New(state.Error)
		}

		if err := app.Outfit.SubmitFeedback(cmd.Context(), liked, saved); err != nil {
			return fmt.Errorf("feedback not recorded: %w", err)
		}

		printOutfit(cmd.OutOrStdout(), app.Outfit.Outfit())
		return nil
	},
}

// tristate maps a --x/--no-x flag pair to nil (neither), true or false.
func tristate(cmd *cobra.Command, on, off string, value bool) (*bool, error) {
	onSet := cmd.Flags().Changed(on)
	offSet := cmd.Flags().Changed(off)

	switch {
	case onSet && offSet:
		return nil, fmt.Errorf("--%s and --%s are mutually exclusive", on, off)
	case onSet:
		return &value, nil
	case offSet:
		v := false
		return &v, nil
	default:
		return nil, nil
	}
}

func init() {
	outfitGenerateCmd.Flags().StringVarP(&generateStyle, "style", "s", "", "style hint, e.g. casual")

	outfitFeedbackCmd.Flags().BoolVar(&feedbackLike, "like", false, "mark as loved")
	outfitFeedbackCmd.Flags().BoolVar(&feedbackDislike, "dislike", false, "mark as skipped")
	outfitFeedbackCmd.Flags().BoolVar(&feedbackSave, "save", false, "save for later")
	outfitFeedbackCmd.Flags().BoolVar(&feedbackUnsave, "unsave", false, "remove from saved")

	outfitCmd.AddCommand(outfitGenerateCmd, outfitFeedbackCmd)
	rootCmd.AddCommand(outfitCmd)
}
