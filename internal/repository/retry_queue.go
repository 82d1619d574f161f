package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/store"
)

// RetryQueueKey holds the JSON array of unsent focus reports.
const RetryQueueKey = "telemetry.retryQueue"

// SupersedeFunc builds the report that replaces a queued entry. oldPresent
// reports whether the entry was still queued. Returning false appends nothing.
type SupersedeFunc func(oldPresent bool) (domain.FocusReport, bool)

// SupersedeResult describes the outcome of Supersede.
type SupersedeResult struct {
	Entry      domain.RetryEntry
	Appended   bool
	OldPresent bool
}

// StoreRetryQueueRepo implements RetryQueueRepo. Every mutation is a single
// atomic update of RetryQueueKey.
type StoreRetryQueueRepo struct {
	st store.Store
}

// NewStoreRetryQueueRepo creates a new StoreRetryQueueRepo.
func NewStoreRetryQueueRepo(st store.Store) *StoreRetryQueueRepo {
	return &StoreRetryQueueRepo{st: st}
}

func (r *StoreRetryQueueRepo) List(ctx context.Context) ([]domain.RetryEntry, error) {
	var entries []domain.RetryEntry
	if _, err := getJSON(ctx, r.st, RetryQueueKey, &entries); err != nil {
		return nil, fmt.Errorf("reading retry queue: %w", err)
	}
	return entries, nil
}

func (r *StoreRetryQueueRepo) Append(ctx context.Context, report domain.FocusReport, now time.Time) (domain.RetryEntry, error) {
	var entry domain.RetryEntry
	err := r.update(ctx, func(entries []domain.RetryEntry) ([]domain.RetryEntry, error) {
		entry = domain.RetryEntry{Report: report, EnqueuedAt: nextStamp(entries, now)}
		return append(entries, entry), nil
	})
	if err != nil {
		return domain.RetryEntry{}, fmt.Errorf("appending to retry queue: %w", err)
	}
	return entry, nil
}

// Supersede removes the entry oldID, if queued, and appends the report built
// for that outcome, in one update.
func (r *StoreRetryQueueRepo) Supersede(ctx context.Context, oldID int64, now time.Time, build SupersedeFunc) (SupersedeResult, error) {
	var res SupersedeResult
	err := r.update(ctx, func(entries []domain.RetryEntry) ([]domain.RetryEntry, error) {
		res = SupersedeResult{}
		if oldID != 0 {
			before := len(entries)
			entries = slices.DeleteFunc(entries, func(e domain.RetryEntry) bool { return e.EnqueuedAt == oldID })
			res.OldPresent = len(entries) != before
		}
		report, ok := build(res.OldPresent)
		if !ok {
			if !res.OldPresent {
				return nil, store.ErrAbort
			}
			return entries, nil
		}
		res.Entry = domain.RetryEntry{Report: report, EnqueuedAt: nextStamp(entries, now)}
		res.Appended = true
		return append(entries, res.Entry), nil
	})
	if err != nil {
		return SupersedeResult{}, fmt.Errorf("superseding retry entry: %w", err)
	}
	return res, nil
}

// Remove deletes the entries with the given enqueue timestamps and returns
// how many were present.
func (r *StoreRetryQueueRepo) Remove(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	removed := 0
	err := r.update(ctx, func(entries []domain.RetryEntry) ([]domain.RetryEntry, error) {
		before := len(entries)
		entries = slices.DeleteFunc(entries, func(e domain.RetryEntry) bool {
			return slices.Contains(ids, e.EnqueuedAt)
		})
		removed = before - len(entries)
		if removed == 0 {
			return nil, store.ErrAbort
		}
		return entries, nil
	})
	if err != nil {
		return 0, fmt.Errorf("removing from retry queue: %w", err)
	}
	return removed, nil
}

// Claim marks the listed entries, or every entry when ids is nil, as held by
// owner and returns the ones it took. Entries under another live claim are
// skipped.
func (r *StoreRetryQueueRepo) Claim(ctx context.Context, ids []int64, owner string, now time.Time) ([]domain.RetryEntry, error) {
	var claimed []domain.RetryEntry
	err := r.update(ctx, func(entries []domain.RetryEntry) ([]domain.RetryEntry, error) {
		claimed = claimed[:0]
		for i := range entries {
			e := &entries[i]
			if ids != nil && !slices.Contains(ids, e.EnqueuedAt) {
				continue
			}
			if e.ClaimedByOther(owner, now) {
				continue
			}
			e.ClaimedBy, e.ClaimedAt = owner, now.UnixMilli()
			claimed = append(claimed, *e)
		}
		if len(claimed) == 0 {
			return nil, store.ErrAbort
		}
		return entries, nil
	})
	if err != nil {
		return nil, fmt.Errorf("claiming retry entries: %w", err)
	}
	return claimed, nil
}

// Release drops owner's claim on the listed entries so a later flush can
// resubmit them.
func (r *StoreRetryQueueRepo) Release(ctx context.Context, ids []int64, owner string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.update(ctx, func(entries []domain.RetryEntry) ([]domain.RetryEntry, error) {
		changed := false
		for i := range entries {
			e := &entries[i]
			if e.ClaimedBy == owner && slices.Contains(ids, e.EnqueuedAt) {
				e.ClaimedBy, e.ClaimedAt = "", 0
				changed = true
			}
		}
		if !changed {
			return nil, store.ErrAbort
		}
		return entries, nil
	})
	if err != nil {
		return fmt.Errorf("releasing retry entries: %w", err)
	}
	return nil
}

func (r *StoreRetryQueueRepo) update(ctx context.Context, fn func([]domain.RetryEntry) ([]domain.RetryEntry, error)) error {
	return r.st.Update(ctx, RetryQueueKey, func(cur []byte, ok bool) ([]byte, error) {
		var entries []domain.RetryEntry
		if ok && len(cur) > 0 {
			if err := json.Unmarshal(cur, &entries); err != nil {
				return nil, fmt.Errorf("decoding retry queue: %w", err)
			}
		}
		next, err := fn(entries)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []domain.RetryEntry{}
		}
		return json.Marshal(next)
	})
}

// nextStamp returns now in unix milliseconds, moved past every queued stamp so
// entries stay uniquely identified.
func nextStamp(entries []domain.RetryEntry, now time.Time) int64 {
	stamp := now.UnixMilli()
	for _, e := range entries {
		if e.EnqueuedAt >= stamp {
			stamp = e.EnqueuedAt + 1
		}
	}
	return stamp
}
