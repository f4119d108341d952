package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
)

// DefaultSweepInterval is used when NewSessionSweeper gets a zero interval.
const DefaultSweepInterval = 10 * time.Minute

// Purger drops expired sessions and reports how many were removed.
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

// SessionSweeper periodically purges expired sessions from stores that only
// expire entries lazily.
type SessionSweeper struct {
	store    Purger
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewSessionSweeper(store Purger, log logger.Logger, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &SessionSweeper{
		store:    store,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs one sweep, then sweeps every interval until Stop or ctx is done.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep(ctx)
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the loop and waits for it. Safe to call more than once, but only
// after Start.
func (s *SessionSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.done
}

// Sweep purges once and returns the number of sessions removed.
func (s *SessionSweeper) Sweep(ctx context.Context) int {
	n, err := s.store.Purge(ctx)
	if err != nil {
		s.logger.Warn("session sweep failed", logger.Error(err))
		return 0
	}
	if n > 0 {
		s.logger.Info("expired sessions purged", logger.Int("purged", n))
	} else {
		s.logger.Debug("no expired sessions to purge")
	}
	return n
}
