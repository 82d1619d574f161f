package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/store"
)

// ProfileKey holds the device's member profile.
const ProfileKey = "profile"

type profileRecord struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Major     string    `json:"major,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoreProfileRepo implements ProfileRepo.
type StoreProfileRepo struct {
	st store.Store
}

// NewStoreProfileRepo creates a new StoreProfileRepo.
func NewStoreProfileRepo(st store.Store) *StoreProfileRepo {
	return &StoreProfileRepo{st: st}
}

func (r *StoreProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	var rec profileRecord
	ok, err := getJSON(ctx, r.st, ProfileKey, &rec)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("profile: %w", ErrNotFound)
	}
	return &domain.Profile{
		UserID:    rec.UserID,
		Name:      rec.Name,
		Major:     rec.Major,
		Bio:       rec.Bio,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (r *StoreProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	rec := profileRecord{
		UserID:    p.UserID,
		Name:      p.Name,
		Major:     p.Major,
		Bio:       p.Bio,
		CreatedAt: p.CreatedAt.UTC(),
	}
	if err := putJSON(ctx, r.st, ProfileKey, rec); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}
