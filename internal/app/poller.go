package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/crewdeck/internal/crew"
	"github.com/five82/crewdeck/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that reloads the dataset into
// the store. After a failed refresh the wait doubles per consecutive failure,
// up to maxBackoff. A value on trigger refreshes at once; trigger may be nil.
// It returns immediately; the returned channel is closed once the goroutine
// has exited after ctx is cancelled.
func StartPoller(ctx context.Context, store *state.Store, repo crew.Repository, interval time.Duration, trigger <-chan struct{}, logger *zap.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		failures := store.Snapshot().ConsecutiveFailures

		for {
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-trigger:
				timer.Stop()
			case <-timer.C:
			}

			if err := refresh(ctx, store, repo, logger); err != nil {
				failures++
			} else {
				failures = 0
			}
		}
	}()
	return done
}

// calculateBackoff returns the wait before the next refresh. Each failure
// doubles the base interval; the result never exceeds maxBackoff unless the
// base interval itself is longer.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, base)
	d := base
	for range failures {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	return d
}

func refresh(ctx context.Context, store *state.Store, repo crew.Repository, logger *zap.Logger) error {
	ds, err := crew.Load(ctx, repo)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		store.Update(nil, err)
		logger.Warn("refresh failed",
			zap.Error(err),
			zap.Int("consecutive_failures", store.Snapshot().ConsecutiveFailures),
		)
		return err
	}
	store.Update(&ds, nil)

	counts := ds.Counts()
	logger.Debug("refreshed",
		zap.Int("vessels", counts["vessels"]),
		zap.Int("seafarers", counts["seafarers"]),
		zap.Int("contracts", counts["contracts"]),
		zap.Int("crew_changes", counts["crew_changes"]),
		zap.Int("cases", counts["cases"]),
	)
	return nil
}
