package testutil

import (
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithDeadline(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Deadline = &d
	}
}

func WithNextMeeting(when string) ProjectOption {
	return func(p *domain.Project) {
		p.NextMeeting = when
	}
}

func WithCode(code string) ProjectOption {
	return func(p *domain.Project) {
		p.Code = code
	}
}

func WithMembers(ids ...string) ProjectOption {
	return func(p *domain.Project) {
		p.Members = append(p.Members, ids...)
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Goal:      "ship " + name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestGrid returns a grid with the given slot keys selected. Keys must be
// valid.
func NewTestGrid(projectID, userID string, keys ...string) *domain.Grid {
	g := domain.NewGrid(projectID, userID)
	for _, k := range keys {
		g.Toggle(domain.MustParseSlot(k))
	}
	return g
}

// Date returns local midnight of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
