package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger hard-deletes posts that were soft-deleted before cutoff.
type Purger interface {
	PurgeDeleted(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

// PurgeWorker periodically removes posts that have stayed soft-deleted for
// longer than Retention, BatchSize at a time.
type PurgeWorker struct {
	Purger    Purger
	Retention time.Duration
	Interval  time.Duration
	BatchSize int
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewPurgeWorker(purger Purger, retention, interval time.Duration, batchSize int, logger *zap.Logger) *PurgeWorker {
	return &PurgeWorker{
		Purger:    purger,
		Retention: retention,
		Interval:  interval,
		BatchSize: batchSize,
		Logger:    logger,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run blocks until ctx is cancelled.
func (w *PurgeWorker) Run(ctx context.Context) {
	w.Logger.Info("purge worker started",
		zap.Duration("retention", w.Retention),
		zap.Duration("interval", w.Interval),
		zap.Int("batchSize", w.BatchSize))

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("purge worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce drains every purgeable post in batches and returns the total removed.
func (w *PurgeWorker) RunOnce(ctx context.Context) int {
	cutoff := w.Now().Add(-w.Retention)
	total := 0
	for ctx.Err() == nil {
		n, err := w.Purger.PurgeDeleted(ctx, cutoff, w.BatchSize)
		total += n
		if err != nil {
			w.Logger.Error("purge batch failed", zap.Error(err), zap.Int("purged", total))
			return total
		}
		if n < w.BatchSize {
			break
		}
	}
	if total > 0 {
		w.Logger.Info("purged soft-deleted posts", zap.Int("count", total), zap.Time("cutoff", cutoff))
	}
	return total
}
