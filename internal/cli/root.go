package cli

import (
	"net/http"
	"time"

	"github.com/alexanderramin/tandem/internal/focus"
	"github.com/alexanderramin/tandem/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and environment hooks used by CLI commands.
type App struct {
	Profiles     service.ProfileService
	Projects     service.ProjectService
	Availability service.AvailabilityService
	Meetings     service.MeetingService
	Telemetry    service.TelemetryService

	// NewTimer builds the timer of a focus session. Nil uses focus.New.
	NewTimer func() *focus.Timer
	// Now returns the current time. Nil uses time.Now.
	Now func() time.Time
	// IsInteractive reports whether forms and the live timer may be used.
	IsInteractive func() bool

	// Backend is the development backend handler served by "devserver".
	Backend       http.Handler
	DevServerAddr string
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) newTimer() *focus.Timer {
	if a.NewTimer != nil {
		return a.NewTimer()
	}
	return focus.New()
}

// NewRootCmd creates the top-level "tandem" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tandem",
		Short:         "Team availability, meeting proposals and focus tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSetupCmd(app),
		newProjectCmd(app),
		newAvailCmd(app),
		newScheduleCmd(app),
		newFocusCmd(app),
		newTelemetryCmd(app),
		newStatsCmd(app),
		newDevServerCmd(app),
	)

	return root
}
