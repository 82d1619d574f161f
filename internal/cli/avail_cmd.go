package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/tandem/internal/cli/formatter"
	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// slotListValue is a repeatable --slot flag. Keys are validated as they are
// parsed.
type slotListValue struct {
	keys []string
}

var _ pflag.Value = (*slotListValue)(nil)

func (v *slotListValue) String() string { return strings.Join(v.keys, ",") }

func (v *slotListValue) Set(s string) error {
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if _, err := domain.ParseSlot(k); err != nil {
			return err
		}
		v.keys = append(v.keys, k)
	}
	return nil
}

func (v *slotListValue) Type() string { return "slot" }

func newAvailCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avail",
		Short: "Edit and view your weekly availability",
	}

	cmd.AddCommand(
		newAvailToggleCmd(app),
		newAvailShowCmd(app),
	)

	return cmd
}

func newAvailToggleCmd(app *App) *cobra.Command {
	var projectRef string
	var slots slotListValue

	cmd := &cobra.Command{
		Use:   "toggle --project ID SLOT...",
		Short: `Toggle slots such as "09:00-0" (hour-dayOffset) and save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			keys := append(slices.Clone(slots.keys), args...)
			if len(keys) == 0 {
				return fmt.Errorf(`at least one slot is required, e.g. "09:00-0"`)
			}

			profile, err := requireProfile(ctx, app)
			if err != nil {
				return err
			}
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}

			g, err := app.Availability.ToggleAndCommit(ctx, p.ID, profile.UserID, keys)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.RenderPersonalGrid(g, app.now()))
			fmt.Fprintf(out, "Saved %d slot(s) for %s\n", g.Len(), formatter.Bold(p.Name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project ID or team code")
	cmd.Flags().VarP(&slots, "slot", "s", `Slot to toggle, repeatable or comma separated ("09:00-0,10:00-0")`)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newAvailShowCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "show --project ID",
		Short: "Show your saved availability",
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

			g, err := app.Availability.Load(ctx, p.ID, profile.UserID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.RenderPersonalGrid(g, app.now()))
			if g.Len() == 0 {
				fmt.Fprintln(out, formatter.Dim(`No slots saved. Add some with "tandem avail toggle --project ID 09:00-0".`))
			} else if stale := g.StaleDays(app.now()); stale > 0 {
				fmt.Fprintln(out, formatter.StyleYellow.Render(fmt.Sprintf(
					"Saved %d day(s) ago: day columns have shifted since.", stale)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project ID or team code")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
