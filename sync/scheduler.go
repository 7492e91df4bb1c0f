package sync

import (
	"context"
	"time"

	"pos-sync-service/apperrors"

	"go.uber.org/zap"
)

// Scheduler triggers periodic sync cycles. The host wires it up and owns its
// lifetime; platform background-task registration stays outside the core.
type Scheduler struct {
	manager  *Manager
	interval time.Duration
	log      *zap.Logger
}

func NewScheduler(manager *Manager, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Scheduler{manager: manager, interval: interval, log: log}
}

// Run blocks until ctx is cancelled, firing a sync cycle every interval.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("background sync scheduler started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("background sync scheduler stopped")
			return
		case <-ticker.C:
			err := s.manager.SyncDataWithRetry(ctx)
			if err != nil && !apperrors.Is(err, apperrors.CodeSyncInProgress) {
				s.log.Warn("scheduled sync failed", zap.Error(err))
			}
		}
	}
}
