package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/remote"
	"github.com/alexanderramin/tandem/internal/repository"
	"github.com/alexanderramin/tandem/internal/scheduler"
)

// Schedule is the team view of a project's availability.
type Schedule struct {
	ProjectID string
	Today     time.Time
	Votes     domain.VoteMap
	Grids     []*domain.Grid

	// Proposal is valid when HasProposal is set. An explicit meeting time
	// from the project record takes precedence over the vote winner.
	Proposal    domain.Proposal
	HasProposal bool

	// RemoteErr is set when the backend could not be consulted; the
	// schedule then reflects local data only.
	RemoteErr error
}

// StaleGrids counts grids committed before today, whose day offsets have
// shifted since.
func (s *Schedule) StaleGrids() int {
	n := 0
	for _, g := range s.Grids {
		if g.StaleDays(s.Today) > 0 {
			n++
		}
	}
	return n
}

type meetingService struct {
	grids    repository.AvailabilityRepo
	projects repository.ProjectRepo
	client   remote.Client
	observer UseCaseObserver
}

// NewMeetingService creates a MeetingService. client may be nil, in which
// case only local project records are consulted.
func NewMeetingService(
	grids repository.AvailabilityRepo,
	projects repository.ProjectRepo,
	client remote.Client,
	observers ...UseCaseObserver,
) MeetingService {
	return &meetingService{
		grids:    grids,
		projects: projects,
		client:   client,
		observer: combineObservers(observers),
	}
}

func (s *meetingService) Aggregate(ctx context.Context, projectID string) (domain.VoteMap, error) {
	grids, err := s.grids.ListGrids(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("aggregating availability: %w", err)
	}
	return scheduler.CountVotes(grids), nil
}

func (s *meetingService) Propose(ctx context.Context, projectID string) (*Schedule, error) {
	return s.ProposeAt(ctx, projectID, time.Now())
}

func (s *meetingService) ProposeAt(ctx context.Context, projectID string, today time.Time) (sched *Schedule, err error) {
	run := startUseCase(s.observer, "propose-meeting", map[string]any{"project": projectID})
	defer func() {
		if sched != nil && sched.RemoteErr != nil {
			run.degraded = true
		}
		run.finish(ctx, err)
	}()

	grids, err := s.grids.ListGrids(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("aggregating availability: %w", err)
	}
	sched = &Schedule{
		ProjectID: projectID,
		Today:     today,
		Votes:     scheduler.CountVotes(grids),
		Grids:     grids,
	}
	run.set("members", len(grids))

	explicit, err := s.explicitMeeting(ctx, sched)
	if err != nil {
		return nil, err
	}
	if explicit != "" {
		sched.Proposal = scheduler.ExplicitProposal(explicit)
		sched.HasProposal = true
		run.set("explicit", true)
		return sched, nil
	}

	sched.Proposal, sched.HasProposal = scheduler.ResolveBestSlot(sched.Votes, today)
	if sched.HasProposal {
		run.set("proposal", sched.Proposal.Text)
	}
	return sched, nil
}

// explicitMeeting returns the project's next meeting from the local record,
// falling back to the backend. Backend failures are recorded on sched.
func (s *meetingService) explicitMeeting(ctx context.Context, sched *Schedule) (string, error) {
	p, err := s.projects.GetByID(ctx, sched.ProjectID)
	switch {
	case err == nil:
		if p.NextMeeting != "" {
			return p.NextMeeting, nil
		}
	case !errors.Is(err, repository.ErrNotFound):
		return "", err
	}

	if s.client == nil {
		return "", nil
	}
	var body struct {
		NextMeeting string `json:"nextMeeting"`
	}
	if err := s.client.Fetch(ctx, remote.ProjectEndpoint(sched.ProjectID)).Decode(&body); err != nil {
		sched.RemoteErr = err
		return "", nil
	}
	if body.NextMeeting == "" {
		return "", nil
	}
	if err := domain.ValidateMeetingTime(body.NextMeeting); err != nil {
		sched.RemoteErr = err
		return "", nil
	}
	return body.NextMeeting, nil
}
