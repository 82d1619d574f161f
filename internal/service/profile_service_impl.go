package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/repository"
	"github.com/google/uuid"
)

type profileService struct {
	profiles repository.ProfileRepo
}

func NewProfileService(profiles repository.ProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context) (*domain.Profile, error) {
	return s.profiles.Get(ctx)
}

func (s *profileService) Ensure(ctx context.Context, name string) (*domain.Profile, bool, error) {
	p, err := s.profiles.Get(ctx)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	p = &domain.Profile{
		UserID:    uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *profileService) Update(ctx context.Context, p *domain.Profile) error {
	if p.UserID == "" {
		return fmt.Errorf("profile has no user id")
	}
	return s.profiles.Save(ctx, p)
}
