package history

import (
	"context"
	"time"

	"helpdesk-rag-be/internal/pkg/logger"
)

// DefaultSweepInterval matches the original hourly reclaim schedule.
const DefaultSweepInterval = time.Hour

// Sweeper runs the store's expiry sweep on a fixed period until the
// context is cancelled. Registered as a background task from main.
type Sweeper struct {
	store    *Store
	interval time.Duration
	logger   logger.ILogger
}

func NewSweeper(store *Store, interval time.Duration, log logger.ILogger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{store: store, interval: interval, logger: log}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			before := s.store.Len()
			s.store.SweepExpired()
			s.logger.Info("HISTORY", "Swept expired conversation turns", map[string]interface{}{
				"conversations_before": before,
				"conversations_after":  s.store.Len(),
			})
		}
	}
}
