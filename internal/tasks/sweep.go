// package tasks implements background maintenance for the WatchCall backend.
//
// The only task today is the availability sweep, which prunes windows that
// have fully expired so stale rows never reach clients.
package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/watchcall/watchcall/internal/repositories"
)

// SweepResult summarizes one sweep pass.
type SweepResult struct {
	Pruned  int64     `json:"pruned"`
	Watched int       `json:"watched_movies"`
	RanAt   time.Time `json:"ran_at"`
}

// Sweeper prunes expired availability windows on an interval.
type Sweeper struct {
	avail    *repositories.AvailabilityRepository
	lists    *repositories.ListRepository
	logger   *log.Logger
	interval time.Duration
}

// NewSweeper creates a [Sweeper]. A zero interval disables [Sweeper.Start];
// [Sweeper.RunOnce] still works for one-shot invocations.
func NewSweeper(avail *repositories.AvailabilityRepository, lists *repositories.ListRepository, logger *log.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{avail: avail, lists: lists, logger: logger, interval: interval}
}

// RunOnce performs a single sweep pass.
func (s *Sweeper) RunOnce(ctx context.Context) (*SweepResult, error) {
	pruned, err := s.avail.PruneExpired(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	watched, err := s.lists.MovieIDs()
	if err != nil {
		return nil, err
	}

	result := &SweepResult{
		Pruned:  pruned,
		Watched: len(watched),
		RanAt:   time.Now().UTC(),
	}

	s.logger.Info("availability sweep complete", "pruned", result.Pruned, "watched_movies", result.Watched)
	return result, nil
}

// Start runs the sweep on the configured interval until ctx is cancelled.
// Returns immediately; the loop runs in a goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Debug("availability sweep disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.RunOnce(ctx); err != nil {
					s.logger.Error("availability sweep failed", "error", err)
				}
			}
		}
	}()
}
