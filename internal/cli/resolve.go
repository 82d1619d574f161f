package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/repository"
)

// errNoProfile is returned by commands that need a member identity before
// "tandem setup" has run.
var errNoProfile = errors.New("no profile on this device: run `tandem setup` first")

func requireProfile(ctx context.Context, app *App) (*domain.Profile, error) {
	p, err := app.Profiles.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errNoProfile
	}
	return p, err
}

// resolveProject finds a project by id or team code.
func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	if ref == "" {
		return nil, fmt.Errorf("project is required (--project ID or team code)")
	}
	p, err := app.Projects.Resolve(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("project not found: %q", ref)
	}
	return p, err
}
