package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tandem/internal/cli/formatter"
	"github.com/alexanderramin/tandem/internal/repository"
	"github.com/spf13/cobra"
)

func newTelemetryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Inspect and resend queued focus reports",
	}

	cmd.AddCommand(
		newTelemetryFlushCmd(app),
		newTelemetryStatusCmd(app),
	)

	return cmd
}

func newTelemetryFlushCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Resend every queued focus report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Sending queued reports")
			}
			res, err := app.Telemetry.FlushRetryQueue(ctx)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(out, formatter.FormatFlush(res.Succeeded, res.Failed))
			if res.Failed > 0 && res.LastErr != nil {
				fmt.Fprintln(out, formatter.Dim("last error: "+res.LastErr.Error()))
			}
			return nil
		},
	}
}

func newTelemetryStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List focus reports waiting to be sent",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Telemetry.Pending(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRetryQueue(entries, app.now()))
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your total focus time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := "you"
			profile, err := app.Profiles.Get(ctx)
			switch {
			case err == nil:
				name = profile.Name
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}

			total, err := app.Telemetry.TotalFocusTime(ctx)
			if err != nil {
				return err
			}
			pending, err := app.Telemetry.Pending(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(name, total, len(pending)))
			return nil
		},
	}
}
