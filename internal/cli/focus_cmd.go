package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/tandem/internal/cli/formatter"
	"github.com/alexanderramin/tandem/internal/focus"
	"github.com/alexanderramin/tandem/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	var projectRef string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "focus --project ID",
		Short: "Run a focus session and report the time to the backend",
		Long: `Runs a focus timer for a project. On a terminal a live timer is shown:
space pauses and resumes, q stops. Every pause and the final stop report the
time focused since the last report; reports that cannot be delivered are
queued and sent by "tandem telemetry flush".

Without a terminal, --for sets how long the session runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			profile, err := requireProfile(ctx, app)
			if err != nil {
				return err
			}
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}

			interactive := app.interactive()
			if !interactive && duration <= 0 {
				return fmt.Errorf("--for is required without a terminal")
			}

			session := service.NewFocusSession(app.newTimer(), app.Telemetry.NewSession(profile.UserID, p.ID))
			if err := session.Start(); err != nil {
				return err
			}

			var runErr error
			if interactive {
				runErr = runFocusProgram(ctx, session, p.Name, duration)
			} else {
				runErr = waitFocus(ctx, cmd.OutOrStdout(), p.Name, duration)
			}

			// The session may have been interrupted; the last checkpoint still runs.
			res, err := session.Close(context.WithoutCancel(ctx))
			printFocusSummary(cmd.OutOrStdout(), session, res)
			if runErr != nil {
				return runErr
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project ID or team code")
	cmd.Flags().DurationVar(&duration, "for", 0, "Stop automatically after this long (e.g. 25m)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func runFocusProgram(ctx context.Context, session *service.FocusSession, projectName string, limit time.Duration) error {
	if limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}
	model := newFocusModel(ctx, session, projectName)
	defer model.unsubscribe()

	_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		// Timeout or interrupt ends the session normally.
		return nil
	}
	return err
}

func waitFocus(ctx context.Context, out io.Writer, projectName string, limit time.Duration) error {
	fmt.Fprintf(out, "Focusing on %s for %s %s\n", formatter.Bold(projectName), limit, formatter.Dim("(Ctrl+C to stop)"))
	t := time.NewTimer(limit)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
	return nil
}

func printFocusSummary(out io.Writer, session *service.FocusSession, res service.CheckpointResult) {
	elapsed := focus.Format(session.Timer().Elapsed())
	fmt.Fprintf(out, "Focused %s  %s\n", formatter.Bold(elapsed), formatter.CheckpointBadge(res.Outcome.String()))
	if res.Outcome == service.CheckpointQueued {
		fmt.Fprintln(out, formatter.Dim(fmt.Sprintf(
			"Backend unreachable: %ds queued. Run `tandem telemetry flush` when back online.", res.Delta)))
	}
}
