package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:stats"

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type dashboardCounters interface {
	CountStudents(ctx context.Context) (int64, error)
	CountRooms(ctx context.Context) (int64, error)
	CountOccupiedRooms(ctx context.Context) (int64, error)
	CountPendingFees(ctx context.Context) (int64, error)
	CountOpenComplaints(ctx context.Context) (int64, error)
	CountPendingLeaves(ctx context.Context) (int64, error)
	CountPendingRequests(ctx context.Context) (int64, error)
	CountPresentToday(ctx context.Context) (int64, error)
	CountAnnouncements(ctx context.Context) (int64, error)
}

// DashboardService aggregates counts for the admin dashboard with a
// short-lived cache in front of the counting queries.
type DashboardService struct {
	counters dashboardCounters
	cache    dashboardCache
	ttl      time.Duration
	logger   *zap.SugaredLogger
}

// NewDashboardService builds a DashboardService.
func NewDashboardService(counters dashboardCounters, cache dashboardCache, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		counters: counters,
		cache:    cache,
		ttl:      ttl,
		logger:   logger.Sugar(),
	}
}

// Stats returns the dashboard aggregate, served from cache when fresh.
// The second return reports whether the snapshot came from cache.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, bool, error) {
	if s.cache != nil {
		var cached models.DashboardStats
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil {
			return &cached, true, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warnw("dashboard cache read failed", "error", err)
		}
	}

	stats, err := s.collect(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, stats, s.ttl); err != nil {
			s.logger.Warnw("dashboard cache write failed", "error", err)
		}
	}
	return stats, false, nil
}

func (s *DashboardService) collect(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	steps := []struct {
		dest  *int64
		count func(context.Context) (int64, error)
	}{
		{&stats.TotalStudents, s.counters.CountStudents},
		{&stats.TotalRooms, s.counters.CountRooms},
		{&stats.OccupiedRooms, s.counters.CountOccupiedRooms},
		{&stats.PendingFees, s.counters.CountPendingFees},
		{&stats.OpenComplaints, s.counters.CountOpenComplaints},
		{&stats.PendingLeaves, s.counters.CountPendingLeaves},
		{&stats.PendingRequests, s.counters.CountPendingRequests},
		{&stats.PresentToday, s.counters.CountPresentToday},
		{&stats.TotalAnnouncements, s.counters.CountAnnouncements},
	}
	for _, step := range steps {
		value, err := step.count(ctx)
		if err != nil {
			return nil, appErrors.Wrap(appErrors.ErrInternal, err)
		}
		*step.dest = value
	}

	stats.AvailableRooms = stats.TotalRooms - stats.OccupiedRooms
	return stats, nil
}
