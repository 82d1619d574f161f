package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/store"
)

const (
	availabilityPrefix      = "availability:"
	availabilityIndexPrefix = "availability.index:"
)

// AvailabilityKey is the store key of one member's grid.
func AvailabilityKey(projectID, userID string) string {
	return availabilityPrefix + keyPart(projectID) + ":" + keyPart(userID)
}

// AvailabilityIndexKey is the store key of a project's contributor list.
func AvailabilityIndexKey(projectID string) string {
	return availabilityIndexPrefix + keyPart(projectID)
}

func availabilityProjectPrefix(projectID string) string {
	return availabilityPrefix + keyPart(projectID) + ":"
}

type gridRecord struct {
	Slots       []string `json:"slots"`
	CommittedAt string   `json:"committedAt,omitempty"`
}

// StoreAvailabilityRepo implements AvailabilityRepo on a key-value store.
type StoreAvailabilityRepo struct {
	st store.Store
}

// NewStoreAvailabilityRepo creates a new StoreAvailabilityRepo.
func NewStoreAvailabilityRepo(st store.Store) *StoreAvailabilityRepo {
	return &StoreAvailabilityRepo{st: st}
}

func (r *StoreAvailabilityRepo) Commit(ctx context.Context, g *domain.Grid, at time.Time) error {
	slots := g.Keys()
	if slots == nil {
		slots = []string{}
	}
	rec := gridRecord{Slots: slots, CommittedAt: at.Format(domain.DateLayout)}
	if err := putJSON(ctx, r.st, AvailabilityKey(g.ProjectID, g.UserID), rec); err != nil {
		return fmt.Errorf("committing availability: %w", err)
	}

	// Grids committed before the index existed are folded in on first use.
	_, indexed, err := r.st.Get(ctx, AvailabilityIndexKey(g.ProjectID))
	if err != nil {
		return fmt.Errorf("reading contributor index: %w", err)
	}
	var seed []string
	if !indexed {
		if seed, err = r.scanContributors(ctx, g.ProjectID); err != nil {
			return err
		}
	}

	err = r.st.Update(ctx, AvailabilityIndexKey(g.ProjectID), func(cur []byte, ok bool) ([]byte, error) {
		members := seed
		if ok {
			members = nil
			if err := json.Unmarshal(cur, &members); err != nil {
				return nil, fmt.Errorf("decoding contributor index: %w", err)
			}
		}
		slices.Sort(members)
		members = slices.Compact(members)
		i, found := slices.BinarySearch(members, g.UserID)
		if found && ok {
			return nil, store.ErrAbort
		}
		if !found {
			members = slices.Insert(members, i, g.UserID)
		}
		return json.Marshal(members)
	})
	if err != nil {
		return fmt.Errorf("updating contributor index: %w", err)
	}

	g.CommittedAt = dateOf(at)
	return nil
}

func (r *StoreAvailabilityRepo) Load(ctx context.Context, projectID, userID string) (*domain.Grid, error) {
	data, ok, err := r.st.Get(ctx, AvailabilityKey(projectID, userID))
	if err != nil {
		return nil, fmt.Errorf("loading availability: %w", err)
	}
	if !ok {
		return domain.NewGrid(projectID, userID), nil
	}
	return decodeGrid(projectID, userID, data)
}

func (r *StoreAvailabilityRepo) ListGrids(ctx context.Context, projectID string) ([]*domain.Grid, error) {
	members, err := r.ListContributors(ctx, projectID)
	if err != nil {
		return nil, err
	}
	grids := make([]*domain.Grid, 0, len(members))
	for _, userID := range members {
		data, ok, err := r.st.Get(ctx, AvailabilityKey(projectID, userID))
		if err != nil {
			return nil, fmt.Errorf("loading availability of %s: %w", userID, err)
		}
		if !ok {
			continue
		}
		g, err := decodeGrid(projectID, userID, data)
		if err != nil {
			return nil, err
		}
		grids = append(grids, g)
	}
	return grids, nil
}

// ListContributors returns the members that committed a grid, from the index
// when present and from a key scan otherwise.
func (r *StoreAvailabilityRepo) ListContributors(ctx context.Context, projectID string) ([]string, error) {
	var members []string
	ok, err := getJSON(ctx, r.st, AvailabilityIndexKey(projectID), &members)
	if err != nil {
		return nil, fmt.Errorf("reading contributor index: %w", err)
	}
	if ok {
		return members, nil
	}
	return r.scanContributors(ctx, projectID)
}

func (r *StoreAvailabilityRepo) scanContributors(ctx context.Context, projectID string) ([]string, error) {
	prefix := availabilityProjectPrefix(projectID)
	keys, err := r.st.Enumerate(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("scanning availability: %w", err)
	}
	members := make([]string, 0, len(keys))
	for _, k := range keys {
		userID, err := unescapeKeyPart(strings.TrimPrefix(k, prefix))
		if err != nil {
			return nil, fmt.Errorf("availability key %q: %w", k, err)
		}
		members = append(members, userID)
	}
	return members, nil
}

// decodeGrid accepts the record form and a bare array of slot keys.
func decodeGrid(projectID, userID string, data []byte) (*domain.Grid, error) {
	var rec gridRecord
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rec.Slots); err != nil {
			return nil, fmt.Errorf("decoding availability of %s: %w", userID, err)
		}
	} else if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding availability of %s: %w", userID, err)
	}

	g, err := domain.GridFromKeys(projectID, userID, rec.Slots)
	if err != nil {
		return nil, fmt.Errorf("availability of %s: %w", userID, err)
	}
	if rec.CommittedAt != "" {
		if t, err := time.ParseInLocation(domain.DateLayout, rec.CommittedAt, time.Local); err == nil {
			g.CommittedAt = t
		}
	}
	return g, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
