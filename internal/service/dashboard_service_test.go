package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type staticCounters struct {
	calls int
}

func (s *staticCounters) count() (int64, error) {
	s.calls++
	return 4, nil
}

func (s *staticCounters) CountStudents(context.Context) (int64, error)       { return s.count() }
func (s *staticCounters) CountRooms(context.Context) (int64, error)          { return 10, nil }
func (s *staticCounters) CountOccupiedRooms(context.Context) (int64, error)  { return 6, nil }
func (s *staticCounters) CountPendingFees(context.Context) (int64, error)    { return s.count() }
func (s *staticCounters) CountOpenComplaints(context.Context) (int64, error) { return s.count() }
func (s *staticCounters) CountPendingLeaves(context.Context) (int64, error)  { return s.count() }
func (s *staticCounters) CountPendingRequests(context.Context) (int64, error) {
	return s.count()
}
func (s *staticCounters) CountPresentToday(context.Context) (int64, error)  { return s.count() }
func (s *staticCounters) CountAnnouncements(context.Context) (int64, error) { return s.count() }

type memoryCache struct {
	values map[string][]byte
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	stats := dest.(*models.DashboardStats)
	*stats = models.DashboardStats{TotalStudents: int64(raw[0])}
	return nil
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	stats := value.(*models.DashboardStats)
	m.values[key] = []byte{byte(stats.TotalStudents)}
	m.sets++
	return nil
}

func TestStatsComputesDerivedAvailability(t *testing.T) {
	svc := NewDashboardService(&staticCounters{}, nil, time.Minute, nil)

	stats, cacheHit, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, int64(10), stats.TotalRooms)
	assert.Equal(t, int64(6), stats.OccupiedRooms)
	assert.Equal(t, int64(4), stats.AvailableRooms)
}

func TestStatsServedFromCache(t *testing.T) {
	counters := &staticCounters{}
	cache := newMemoryCache()
	svc := NewDashboardService(counters, cache, time.Minute, nil)

	_, cacheHit, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	firstCalls := counters.calls
	assert.Equal(t, 1, cache.sets)

	_, cacheHit, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, firstCalls, counters.calls, "second read must not hit the counters")
}
