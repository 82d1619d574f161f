package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tandem/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSetupCmd(app *App) *cobra.Command {
	var name, major string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create or update this device's member profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if name == "" && app.interactive() {
				if err := setupForm(&name, &major).RunWithContext(ctx); err != nil {
					return err
				}
			}
			name = strings.TrimSpace(name)
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			p, created, err := app.Profiles.Ensure(ctx, name)
			if err != nil {
				return err
			}
			if !created {
				p.Name = name
				if cmd.Flags().Changed("major") || major != "" {
					p.Major = strings.TrimSpace(major)
				}
				if err := app.Profiles.Update(ctx, p); err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated profile %s %s\n", formatter.Bold(p.Name), formatter.Dim("("+formatter.TruncID(p.UserID)+")"))
				return nil
			}

			if major != "" {
				p.Major = strings.TrimSpace(major)
				if err := app.Profiles.Update(ctx, p); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Welcome, %s. Your member id is %s\n", formatter.Bold(p.Name), formatter.StyleGreen.Render(p.UserID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&major, "major", "", "Major or role")

	return cmd
}
