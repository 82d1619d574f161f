package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/store"
)

const projectPrefix = "project:"

// ProjectKey is the store key of one project record.
func ProjectKey(id string) string {
	return projectPrefix + keyPart(id)
}

type projectRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Goal        string    `json:"goal,omitempty"`
	Code        string    `json:"code,omitempty"`
	Deadline    string    `json:"deadline,omitempty"`
	NextMeeting string    `json:"nextMeeting,omitempty"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProjectRecord(p *domain.Project) projectRecord {
	rec := projectRecord{
		ID:          p.ID,
		Name:        p.Name,
		Goal:        p.Goal,
		Code:        p.Code,
		NextMeeting: p.NextMeeting,
		Members:     p.Members,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
	if p.Deadline != nil {
		rec.Deadline = p.Deadline.Format(domain.DateLayout)
	}
	if rec.Members == nil {
		rec.Members = []string{}
	}
	return rec
}

func (rec projectRecord) toDomain() *domain.Project {
	p := &domain.Project{
		ID:          rec.ID,
		Name:        rec.Name,
		Goal:        rec.Goal,
		Code:        rec.Code,
		NextMeeting: rec.NextMeeting,
		Members:     rec.Members,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.Deadline != "" {
		if t, err := time.ParseInLocation(domain.DateLayout, rec.Deadline, time.Local); err == nil {
			p.Deadline = &t
		}
	}
	return p
}

// StoreProjectRepo implements ProjectRepo.
type StoreProjectRepo struct {
	st store.Store
}

// NewStoreProjectRepo creates a new StoreProjectRepo.
func NewStoreProjectRepo(st store.Store) *StoreProjectRepo {
	return &StoreProjectRepo{st: st}
}

func (r *StoreProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	data, err := jsonMarshal(toProjectRecord(p))
	if err != nil {
		return err
	}
	err = r.st.Update(ctx, ProjectKey(p.ID), func(_ []byte, ok bool) ([]byte, error) {
		if ok {
			return nil, fmt.Errorf("project %s: %w", p.ID, ErrExists)
		}
		return data, nil
	})
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *StoreProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var rec projectRecord
	ok, err := getJSON(ctx, r.st, ProjectKey(id), &rec)
	if err != nil {
		return nil, fmt.Errorf("reading project: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return rec.toDomain(), nil
}

// GetByCode finds a project by team code, case-insensitively.
func (r *StoreProjectRepo) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Code != "" && strings.EqualFold(p.Code, code) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project code %s: %w", code, ErrNotFound)
}

// List returns every project, oldest first.
func (r *StoreProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	keys, err := r.st.Enumerate(ctx, projectPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	projects := make([]*domain.Project, 0, len(keys))
	for _, k := range keys {
		var rec projectRecord
		ok, err := getJSON(ctx, r.st, k, &rec)
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}
		if ok {
			projects = append(projects, rec.toDomain())
		}
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *StoreProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	data, err := jsonMarshal(toProjectRecord(p))
	if err != nil {
		return err
	}
	err = r.st.Update(ctx, ProjectKey(p.ID), func(_ []byte, ok bool) ([]byte, error) {
		if !ok {
			return nil, fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
		}
		return data, nil
	})
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}
