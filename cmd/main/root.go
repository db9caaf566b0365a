package main

import (
	"fmt"
	"os"
	"strings"

	"wardrobe/client/internal/config"
	"wardrobe/client/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	app *container.Container
)

var rootCmd = &cobra.Command{
	Use:          "wardrobe",
	Short:        "Browse your closet and daily outfits",
	Long:         `wardrobe talks to the outfit API: list closet items, get or generate today's outfit, leave feedback and browse past outfits.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if err := setupLogging(cfg.Log); err != nil {
			return err
		}
		log.Debugf("Configuration loaded (api=%s)", cfg.API.BaseURL)

		app, err = container.New(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func setupLogging(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
