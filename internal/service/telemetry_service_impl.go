package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/tandem/internal/domain"
	"github.com/alexanderramin/tandem/internal/remote"
	"github.com/alexanderramin/tandem/internal/repository"
	"github.com/google/uuid"
)

// CheckpointOutcome classifies a checkpoint.
type CheckpointOutcome int

const (
	// CheckpointSkipped means there was no unacknowledged time.
	CheckpointSkipped CheckpointOutcome = iota
	// CheckpointAcknowledged means the backend accepted the delta.
	CheckpointAcknowledged
	// CheckpointQueued means submission failed and the delta is in the
	// retry queue.
	CheckpointQueued
)

func (o CheckpointOutcome) String() string {
	switch o {
	case CheckpointSkipped:
		return "skipped"
	case CheckpointAcknowledged:
		return "acknowledged"
	case CheckpointQueued:
		return "queued"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// CheckpointResult describes one checkpoint. Delta is the number of seconds
// submitted or queued.
type CheckpointResult struct {
	Outcome   CheckpointOutcome
	Delta     int64
	RemoteErr error
}

// FlushResult counts the queue entries delivered and kept by a flush.
type FlushResult struct {
	Succeeded int
	Failed    int
	Seconds   int64
	LastErr   error
}

type telemetryService struct {
	client   remote.Client
	queue    repository.RetryQueueRepo
	stats    repository.FocusStatsRepo
	observer UseCaseObserver
	now      func() time.Time

	flushMu sync.Mutex
}

func NewTelemetryService(
	client remote.Client,
	queue repository.RetryQueueRepo,
	stats repository.FocusStatsRepo,
	observers ...UseCaseObserver,
) TelemetryService {
	return &telemetryService{
		client:   client,
		queue:    queue,
		stats:    stats,
		observer: combineObservers(observers),
		now:      time.Now,
	}
}

// TelemetrySession tracks what one member's focus time on one project has
// delivered so far. A session has at most one entry of its own in the retry
// queue; a later failure replaces it with a delta covering both.
type TelemetrySession struct {
	svc       *telemetryService
	userID    string
	projectID string
	// owner names this session's claims on retry entries.
	owner string

	mu sync.Mutex
	// lastAck is the total the session no longer reports itself: delivered,
	// or handed over to a flush through the retry queue.
	lastAck int64
	// pendingID is the enqueue stamp of this session's queued entry, which
	// covers seconds (lastAck, pendingTotal].
	pendingID    int64
	pendingTotal int64
}

func (s *telemetryService) NewSession(userID, projectID string) *TelemetrySession {
	return &TelemetrySession{svc: s, userID: userID, projectID: projectID, owner: "session:" + uuid.NewString()}
}

// LastAcknowledged returns the total seconds the session has finished
// reporting.
func (t *TelemetrySession) LastAcknowledged() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastAck
}

// Checkpoint reports focus time up to totalSeconds that has not been
// acknowledged yet. A remote failure is not an error: the delta is queued
// and RemoteErr is set. Errors are local store failures.
func (t *TelemetrySession) Checkpoint(ctx context.Context, totalSeconds int64) (res CheckpointResult, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	run := startUseCase(t.svc.observer, "focus-checkpoint", map[string]any{"project": t.projectID})
	defer func() {
		if res.Outcome == CheckpointSkipped && err == nil {
			return
		}
		run.set("outcome", res.Outcome.String())
		run.set("delta_s", res.Delta)
		run.degraded = res.Outcome == CheckpointQueued
		run.finish(ctx, err)
	}()

	if err := t.claimPendingLocked(ctx); err != nil {
		return CheckpointResult{}, err
	}

	delta := totalSeconds - t.lastAck
	if delta <= 0 {
		return CheckpointResult{Outcome: CheckpointSkipped}, t.releasePendingLocked(ctx)
	}

	result := t.svc.client.Submit(ctx, remote.EndpointFocusSessions, t.report(delta))

	// The submit has happened; record its outcome even if ctx ended meanwhile.
	local := context.WithoutCancel(ctx)
	if result.OK() {
		return t.acknowledgeLocked(local, totalSeconds, delta)
	}
	return t.enqueueLocked(local, totalSeconds, result.Err)
}

// claimPendingLocked takes this session's queued entry before a submit that
// covers its seconds. If the entry is gone or a flush holds it, the flush
// owns those seconds and the baseline moves past them.
func (t *TelemetrySession) claimPendingLocked(ctx context.Context) error {
	if t.pendingID == 0 {
		return nil
	}
	claimed, err := t.svc.queue.Claim(ctx, []int64{t.pendingID}, t.owner, t.svc.now())
	if err != nil {
		return err
	}
	if len(claimed) == 0 {
		t.lastAck = t.pendingTotal
		t.pendingID, t.pendingTotal = 0, 0
	}
	return nil
}

func (t *TelemetrySession) releasePendingLocked(ctx context.Context) error {
	if t.pendingID == 0 {
		return nil
	}
	return t.svc.queue.Release(ctx, []int64{t.pendingID}, t.owner)
}

func (t *TelemetrySession) acknowledgeLocked(ctx context.Context, total, delta int64) (CheckpointResult, error) {
	t.lastAck = total
	res := CheckpointResult{Outcome: CheckpointAcknowledged, Delta: delta}

	if t.pendingID != 0 {
		// The submitted delta covered the queued entry.
		id := t.pendingID
		t.pendingID, t.pendingTotal = 0, 0
		if _, err := t.svc.queue.Remove(ctx, []int64{id}); err != nil {
			return res, err
		}
	}
	if _, err := t.svc.stats.Add(ctx, delta); err != nil {
		return res, err
	}
	return res, nil
}

func (t *TelemetrySession) enqueueLocked(ctx context.Context, total int64, remoteErr error) (CheckpointResult, error) {
	hadPending := t.pendingID != 0
	sup, err := t.svc.queue.Supersede(ctx, t.pendingID, t.svc.now(), func(oldPresent bool) (domain.FocusReport, bool) {
		base := t.lastAck
		if hadPending && !oldPresent {
			base = t.pendingTotal
		}
		if total-base <= 0 {
			return domain.FocusReport{}, false
		}
		return t.report(total - base), true
	})
	if err != nil {
		return CheckpointResult{RemoteErr: remoteErr}, err
	}

	if hadPending && !sup.OldPresent {
		t.lastAck = t.pendingTotal
	}
	t.pendingID, t.pendingTotal = 0, 0
	if sup.Appended {
		t.pendingID = sup.Entry.EnqueuedAt
		t.pendingTotal = total
	}
	return CheckpointResult{
		Outcome:   CheckpointQueued,
		Delta:     sup.Entry.Report.FocusSeconds,
		RemoteErr: remoteErr,
	}, nil
}

func (t *TelemetrySession) report(seconds int64) domain.FocusReport {
	return domain.FocusReport{UserID: t.userID, ProjectID: t.projectID, FocusSeconds: seconds}
}

// FlushRetryQueue resubmits every queued entry and removes the delivered
// ones. Entries are claimed first, so an entry a session is resubmitting is
// left to it and a session cannot cover an entry the flush is sending.
// Entries appended while the flush runs are kept.
func (s *telemetryService) FlushRetryQueue(ctx context.Context) (res FlushResult, err error) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	run := startUseCase(s.observer, "flush-retry-queue", nil)
	defer func() {
		run.set("succeeded", res.Succeeded)
		run.set("failed", res.Failed)
		run.degraded = res.Failed > 0
		run.finish(ctx, err)
	}()

	owner := "flush:" + uuid.NewString()
	entries, err := s.queue.Claim(ctx, nil, owner, s.now())
	if err != nil {
		return FlushResult{}, err
	}

	delivered := make([]int64, 0, len(entries))
	var kept []int64
	for _, e := range entries {
		result := s.client.Submit(ctx, remote.EndpointFocusSessions, e.Report)
		if !result.OK() {
			res.Failed++
			res.LastErr = result.Err
			kept = append(kept, e.EnqueuedAt)
			continue
		}
		delivered = append(delivered, e.EnqueuedAt)
		res.Succeeded++
		res.Seconds += e.Report.FocusSeconds
	}

	local := context.WithoutCancel(ctx)
	if _, err := s.queue.Remove(local, delivered); err != nil {
		return res, err
	}
	if err := s.queue.Release(local, kept, owner); err != nil {
		return res, err
	}
	if res.Seconds > 0 {
		if _, err := s.stats.Add(local, res.Seconds); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *telemetryService) Pending(ctx context.Context) ([]domain.RetryEntry, error) {
	return s.queue.List(ctx)
}

func (s *telemetryService) TotalFocusTime(ctx context.Context) (int64, error) {
	return s.stats.Total(ctx)
}
