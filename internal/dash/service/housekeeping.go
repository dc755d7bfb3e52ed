package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/store"
)

// HousekeepingService periodically prunes old activity entries and view
// states of sessions that can no longer be valid.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// ActivityRetention is how long activity entries are kept.
	ActivityRetention time.Duration

	// ViewStateTTL is how long an untouched view state is kept, normally
	// the session lifetime.
	ViewStateTTL time.Duration

	now func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(
	store store.Store,
	logger *slog.Logger,
	interval, activityRetention, viewStateTTL time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:             store,
		Logger:            logger,
		Interval:          interval,
		ActivityRetention: activityRetention,
		ViewStateTTL:      viewStateTTL,
		now:               time.Now,
		stopCh:            make(chan struct{}),
		doneCh:            make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one pass. Each deletion is independent, a failure in one
// does not stop the other. A zero retention disables that deletion.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := s.now()
	s.Logger.Debug("starting housekeeping cleanup")

	if s.ActivityRetention > 0 {
		n, err := s.Store.Activity().DeleteActivityBefore(ctx, now.Add(-s.ActivityRetention))
		if err != nil {
			s.Logger.Error("failed to delete old activity", "error", err)
		} else if n > 0 {
			s.Logger.Info("deleted old activity", "count", n)
		}
	}

	if s.ViewStateTTL > 0 {
		n, err := s.Store.ViewStates().DeleteViewStatesBefore(ctx, now.Add(-s.ViewStateTTL))
		if err != nil {
			s.Logger.Error("failed to delete stale view states", "error", err)
		} else if n > 0 {
			s.Logger.Info("deleted stale view states", "count", n)
		}
	}

	s.Logger.Debug("housekeeping cleanup completed")
}
