package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wfh-backend/internal/app"
	"wfh-backend/internal/config"
	"wfh-backend/internal/logger"
)

// opener is swapped in tests.
var opener = openApp

func openApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// the sweep lock still applies; idempotency is an HTTP concern
	cfg.IdempEnabled = false
	return app.New(cfg, logger.Setup(cfg.LogLevel, cfg.LogFormat))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "wfhctl",
		Short:        "Operational commands for the WFH request service",
		SilenceUsage: true,
	}
	cmd.AddCommand(newMigrateCmd(), newSweepCmd())
	return cmd
}

func withApp(fn func(cmd *cobra.Command, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := opener()
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				logrus.WithError(err).Warn("close connections")
			}
		}()
		return fn(cmd, a)
	}
}
