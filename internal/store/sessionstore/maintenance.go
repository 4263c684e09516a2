package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// DefaultMaintenanceInterval is how often RunMaintenance sweeps sessions and collects garbage.
const DefaultMaintenanceInterval = 10 * time.Minute

// gcDiscardRatio is the fraction of a value log file that must be stale before it is rewritten.
const gcDiscardRatio = 0.5

// RunMaintenance deletes expired sessions and runs value log GC every interval until ctx is done.
func (s *Store) RunMaintenance(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.maintain(ctx)
		}
	}
}

func (s *Store) maintain(ctx context.Context) {
	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		s.logger.Warn("expired session sweep failed", "error", err)
	} else if n > 0 {
		s.logger.Info("expired sessions removed", "count", n)
	}

	// RunValueLogGC rewrites at most one file per call; loop until there is nothing left.
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if err == nil {
			continue
		}
		if !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrRejected) &&
			!errors.Is(err, badger.ErrGCInMemoryMode) {
			s.logger.Warn("value log gc failed", "error", err)
		}
		return
	}
}
