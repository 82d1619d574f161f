package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/repository"
)

type availabilityService struct {
	grids    repository.AvailabilityRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewAvailabilityService(grids repository.AvailabilityRepo, observers ...UseCaseObserver) AvailabilityService {
	return &availabilityService{
		grids:    grids,
		observer: combineObservers(observers),
		now:      time.Now,
	}
}

func (s *availabilityService) Load(ctx context.Context, projectID, userID string) (*domain.Grid, error) {
	return s.grids.Load(ctx, projectID, userID)
}

func (s *availabilityService) Commit(ctx context.Context, g *domain.Grid) (err error) {
	run := startUseCase(s.observer, "commit-availability", map[string]any{
		"project": g.ProjectID,
		"slots":   g.Len(),
	})
	defer func() { run.finish(ctx, err) }()
	return s.grids.Commit(ctx, g, s.now())
}

func (s *availabilityService) ToggleAndCommit(ctx context.Context, projectID, userID string, keys []string) (*domain.Grid, error) {
	slots := make([]domain.Slot, 0, len(keys))
	for _, k := range keys {
		slot, err := domain.ParseSlot(k)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	g, err := s.grids.Load(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	for _, slot := range slots {
		g.Toggle(slot)
	}
	if err := s.Commit(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
