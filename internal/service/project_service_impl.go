package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project, creatorID string) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Name = strings.TrimSpace(p.Name)
	p.NextMeeting = strings.TrimSpace(p.NextMeeting)
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if creatorID != "" {
		p.AddMember(creatorID)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return p, err
	}
	return s.projects.GetByCode(ctx, ref)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Join(ctx context.Context, ref, userID string) (*domain.Project, error) {
	p, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !p.AddMember(userID) {
		return p, nil
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) SetMeeting(ctx context.Context, ref, when string) (*domain.Project, error) {
	when = strings.TrimSpace(when)
	if when != "" {
		if err := domain.ValidateMeetingTime(when); err != nil {
			return nil, err
		}
	}
	p, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	p.NextMeeting = when
	p.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
