package main

import (
	"errors"

	"wardrobe/client/internal/domain"

	"github.com/spf13/cobra"
)

var (
	profileVibe       string
	profileWeather    bool
	profileDailyInspo bool
	profileOnboarded  bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show profile preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := app.Config.Profile.User
		<-app.Profile.Use(cmd.Context(), user)

		state := app.Profile.State()
		if state.Failed() {
			return errors.New(state.Error)
		}

		printPreferences(cmd.OutOrStdout(), user, state.Value)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := app.Config.Profile.User
		<-app.Profile.Use(cmd.Context(), user)

		state := app.Profile.State()
		if state.Failed() {
			return errors.New(state.Error)
		}

		prefs := state.Value
		if cmd.Flags().Changed("vibe") {
			vibe, err := domain.ParseVibe(profileVibe)
			if err != nil {
				return err
			}
			prefs.Vibe = vibe
		}
		if cmd.Flags().Changed("weather") {
			prefs.WeatherEnabled = profileWeather
		}
		if cmd.Flags().Changed("daily-inspo") {
			prefs.DailyInspo = profileDailyInspo
		}
		if cmd.Flags().Changed("onboarded") {
			prefs.OnboardingComplete = profileOnboarded
		}

		if !app.Profile.Save(cmd.Context(), prefs) {
			return errors.New(app.Profile.State().Error)
		}

		printPreferences(cmd.OutOrStdout(), user, app.Profile.State().Value)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileVibe, "vibe", "", "chill, clean or smart")
	profileSetCmd.Flags().BoolVar(&profileWeather, "weather", true, "use weather when picking outfits")
	profileSetCmd.Flags().BoolVar(&profileDailyInspo, "daily-inspo", false, "daily inspiration notifications")
	profileSetCmd.Flags().BoolVar(&profileOnboarded, "onboarded", false, "mark onboarding as complete")

	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}
