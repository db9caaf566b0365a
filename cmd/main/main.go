package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:]); err != nil {
		log.Debugf("Command failed: %v", err)
		stop()
		os.Exit(1)
	}
}

// execute runs the command line and closes the container whether or not the
// command succeeded. Cobra skips post-run hooks after a failed RunE.
func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)

	if app != nil {
		if closeErr := app.Close(); closeErr != nil {
			log.Warnf("⚠️ %v", closeErr)
			if err == nil {
				err = closeErr
			}
		}
		app = nil
	}

	return err
}
