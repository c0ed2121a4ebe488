package main

import (
	"github.com/spf13/cobra"

	"wfh-backend/internal/app"
	"wfh-backend/internal/infrastructure/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the request, log and employee tables",
		RunE: withApp(func(cmd *cobra.Command, a *app.App) error {
			if err := db.Migrate(a.DB); err != nil {
				return err
			}
			return writeJSON(cmd, map[string]any{"command": "migrate", "ok": true})
		}),
	}
}
