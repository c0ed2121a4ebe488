package main

import (
	"time"

	"github.com/spf13/cobra"

	"wfh-backend/internal/app"
	"wfh-backend/internal/usecase/sweep"
	"wfh-backend/pkg/dateutil"
)

type sweepOutput struct {
	Command    string `json:"command"`
	DryRun     bool   `json:"dry_run"`
	Cutoff     string `json:"cutoff"`
	Count      int    `json:"count"`
	DurationMS int64  `json:"duration_ms"`
}

func newSweepCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the auto-rejection sweep once (for an external scheduler)",
		RunE: withApp(func(cmd *cobra.Command, a *app.App) error {
			start := time.Now()
			var (
				res *sweep.Result
				err error
			)
			if dryRun {
				res, err = a.Sweep.Preview(cmd.Context())
			} else {
				res, err = a.Sweep.Run(cmd.Context())
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd, sweepOutput{
				Command:    "sweep",
				DryRun:     res.DryRun,
				Cutoff:     dateutil.Format(res.Cutoff),
				Count:      res.Cancelled,
				DurationMS: time.Since(start).Milliseconds(),
			})
		}),
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Count stale pending rows without changing them")
	return cmd
}
