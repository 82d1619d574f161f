package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
)

type ProfileService interface {
	Get(ctx context.Context) (*domain.Profile, error)
	// Ensure returns the device profile, creating it with a new user id when
	// none exists. created reports whether it was created by this call.
	Ensure(ctx context.Context, name string) (p *domain.Profile, created bool, err error)
	Update(ctx context.Context, p *domain.Profile) error
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project, creatorID string) error
	// Resolve finds a project by id, then by team code.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Join(ctx context.Context, ref, userID string) (*domain.Project, error)
	// SetMeeting sets the explicit next meeting; an empty value clears it.
	SetMeeting(ctx context.Context, ref, when string) (*domain.Project, error)
}

type AvailabilityService interface {
	Load(ctx context.Context, projectID, userID string) (*domain.Grid, error)
	Commit(ctx context.Context, g *domain.Grid) error
	// ToggleAndCommit flips every slot key on the committed grid and commits
	// the result. No slot is toggled if any key is invalid.
	ToggleAndCommit(ctx context.Context, projectID, userID string, keys []string) (*domain.Grid, error)
}

type MeetingService interface {
	Aggregate(ctx context.Context, projectID string) (domain.VoteMap, error)
	Propose(ctx context.Context, projectID string) (*Schedule, error)
	ProposeAt(ctx context.Context, projectID string, today time.Time) (*Schedule, error)
}

type TelemetryService interface {
	NewSession(userID, projectID string) *TelemetrySession
	FlushRetryQueue(ctx context.Context) (FlushResult, error)
	Pending(ctx context.Context) ([]domain.RetryEntry, error)
	TotalFocusTime(ctx context.Context) (int64, error)
}
