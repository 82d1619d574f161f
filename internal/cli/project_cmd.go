package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tandem/internal/cli/formatter"
	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage team projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectJoinCmd(app),
		newProjectSetMeetingCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var goal, deadline, code, nextMeeting string

	cmd := &cobra.Command{
		Use:   "create [NAME]",
		Short: "Create a project and join it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			profile, err := requireProfile(ctx, app)
			if err != nil {
				return err
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" && app.interactive() {
				if err := projectForm(&name, &goal, &deadline, &code).RunWithContext(ctx); err != nil {
					return err
				}
			}
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("project name is required")
			}

			p := &domain.Project{
				Name:        name,
				Goal:        strings.TrimSpace(goal),
				Code:        strings.ToUpper(strings.TrimSpace(code)),
				NextMeeting: nextMeeting,
			}
			if deadline != "" {
				d, err := time.ParseInLocation(domain.DateLayout, deadline, time.Local)
				if err != nil {
					return fmt.Errorf("invalid deadline %q: %w", deadline, err)
				}
				p.Deadline = &d
			}

			if err := app.Projects.Create(ctx, p, profile.UserID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", formatter.Bold(p.Name), p.DisplayID())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Dim("Share this id with your team:"), p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Project goal")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&code, "code", "", "Team code, e.g. CAP01")
	cmd.Flags().StringVar(&nextMeeting, "next-meeting", "", `Explicit next meeting ("YYYY-MM-DD HH:MM")`)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects known on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projects, err := app.Projects.List(ctx)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No projects yet. Create one with `tandem project create NAME`."))
				return nil
			}

			var userID string
			if p, err := app.Profiles.Get(ctx); err == nil {
				userID = p.UserID
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, userID, app.now()))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(p, app.now()))
			return nil
		},
	}
}

func newProjectJoinCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "join ID",
		Short: "Join a project by id or team code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			profile, err := requireProfile(ctx, app)
			if err != nil {
				return err
			}
			if _, err := resolveProject(ctx, app, args[0]); err != nil {
				return err
			}
			p, err := app.Projects.Join(ctx, args[0], profile.UserID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Joined %s (%d members)\n", formatter.Bold(p.Name), len(p.Members))
			return nil
		},
	}
}

func newProjectSetMeetingCmd(app *App) *cobra.Command {
	var clearMeeting bool

	cmd := &cobra.Command{
		Use:   `set-meeting ID ["YYYY-MM-DD HH:MM"]`,
		Short: "Set or clear a project's explicit next meeting",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var when string
			switch {
			case len(args) == 2:
				when = args[1]
			case clearMeeting:
			case app.interactive():
				if err := meetingForm(&when).RunWithContext(ctx); err != nil {
					return err
				}
			default:
				return fmt.Errorf(`meeting time is required ("YYYY-MM-DD HH:MM") or pass --clear`)
			}

			if _, err := resolveProject(ctx, app, args[0]); err != nil {
				return err
			}
			p, err := app.Projects.SetMeeting(ctx, args[0], when)
			if err != nil {
				return err
			}

			if p.NextMeeting == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared next meeting for %s; proposals follow availability again\n", formatter.Bold(p.Name))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Next meeting for %s: %s\n", formatter.Bold(p.Name), formatter.StyleBlue.Render(p.NextMeeting))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearMeeting, "clear", false, "Clear the explicit meeting time")

	return cmd
}
