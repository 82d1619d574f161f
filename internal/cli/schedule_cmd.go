package cli

import (
	"fmt"

	"github.com/alexanderramin/tandem/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "schedule --project ID",
		Short: "Show the team heat map and the proposed meeting time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}

			sched, err := app.Meetings.ProposeAt(ctx, p.ID, app.now())
			if err != nil {
				return err
			}

			view := formatter.ScheduleView{
				ProjectName: p.Name,
				Today:       sched.Today,
				Votes:       sched.Votes,
				Members:     max(len(p.Members), len(sched.Grids)),
				Stale:       sched.StaleGrids(),
				Offline:     sched.RemoteErr != nil,
			}
			if sched.HasProposal {
				view.Proposal = &sched.Proposal
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchedule(view))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project ID or team code")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
