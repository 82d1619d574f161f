package service

import (
	"testing"

	"github.com/alexanderramin/tandem/internal/repository"
	"github.com/alexanderramin/tandem/internal/testutil"
)

type testEnv struct {
	store    *testutil.FailingStore
	remote   *testutil.FakeRemote
	grids    *repository.StoreAvailabilityRepo
	queue    *repository.StoreRetryQueueRepo
	stats    *repository.StoreFocusStatsRepo
	projects *repository.StoreProjectRepo
	profiles *repository.StoreProfileRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := testutil.NewFailingStore(testutil.NewTestStore(t))
	return &testEnv{
		store:    st,
		remote:   testutil.NewFakeRemote(),
		grids:    repository.NewStoreAvailabilityRepo(st),
		queue:    repository.NewStoreRetryQueueRepo(st),
		stats:    repository.NewStoreFocusStatsRepo(st),
		projects: repository.NewStoreProjectRepo(st),
		profiles: repository.NewStoreProfileRepo(st),
	}
}

func (e *testEnv) telemetry() TelemetryService {
	return NewTelemetryService(e.remote, e.queue, e.stats)
}
