package repository

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/tandem/internal/store"
)

// TotalFocusTimeKey holds the acknowledged focus seconds of this device.
const TotalFocusTimeKey = "telemetry.totalFocusTime"

// StoreFocusStatsRepo implements FocusStatsRepo.
type StoreFocusStatsRepo struct {
	st store.Store
}

// NewStoreFocusStatsRepo creates a new StoreFocusStatsRepo.
func NewStoreFocusStatsRepo(st store.Store) *StoreFocusStatsRepo {
	return &StoreFocusStatsRepo{st: st}
}

// Add increases the total by seconds and returns the new total.
func (r *StoreFocusStatsRepo) Add(ctx context.Context, seconds int64) (int64, error) {
	var total int64
	err := r.st.Update(ctx, TotalFocusTimeKey, func(cur []byte, ok bool) ([]byte, error) {
		prev, err := parseTotal(cur, ok)
		if err != nil {
			return nil, err
		}
		total = prev + seconds
		return []byte(strconv.FormatInt(total, 10)), nil
	})
	if err != nil {
		return 0, fmt.Errorf("adding focus time: %w", err)
	}
	return total, nil
}

func (r *StoreFocusStatsRepo) Total(ctx context.Context) (int64, error) {
	data, ok, err := r.st.Get(ctx, TotalFocusTimeKey)
	if err != nil {
		return 0, fmt.Errorf("reading focus time: %w", err)
	}
	return parseTotal(data, ok)
}

// parseTotal accepts a bare or quoted integer.
func parseTotal(data []byte, ok bool) (int64, error) {
	if !ok {
		return 0, nil
	}
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decoding %q: %w", TotalFocusTimeKey, err)
	}
	return n, nil
}
