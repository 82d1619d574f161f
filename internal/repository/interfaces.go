package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
)

type AvailabilityRepo interface {
	// Commit replaces the stored slot set of g's owner and records the owner
	// in the project's contributor index.
	Commit(ctx context.Context, g *domain.Grid, at time.Time) error
	// Load returns the committed grid, or an empty grid if none exists.
	Load(ctx context.Context, projectID, userID string) (*domain.Grid, error)
	ListGrids(ctx context.Context, projectID string) ([]*domain.Grid, error)
	ListContributors(ctx context.Context, projectID string) ([]string, error)
}

type RetryQueueRepo interface {
	List(ctx context.Context) ([]domain.RetryEntry, error)
	Append(ctx context.Context, report domain.FocusReport, now time.Time) (domain.RetryEntry, error)
	Supersede(ctx context.Context, oldID int64, now time.Time, build SupersedeFunc) (SupersedeResult, error)
	Remove(ctx context.Context, ids []int64) (int, error)
	Claim(ctx context.Context, ids []int64, owner string, now time.Time) ([]domain.RetryEntry, error)
	Release(ctx context.Context, ids []int64, owner string) error
}

type FocusStatsRepo interface {
	Add(ctx context.Context, seconds int64) (int64, error)
	Total(ctx context.Context) (int64, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByCode(ctx context.Context, code string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Save(ctx context.Context, p *domain.Profile) error
}
