package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger is the part of the auth service the cleanup loop needs.
type Purger interface {
	PurgeExpiredRegistrations(ctx context.Context) (int, error)
}

// StartRegistrationCleanupScheduler purges expired, never verified
// registrations every interval until ctx is done.
func StartRegistrationCleanupScheduler(ctx context.Context, p Purger, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			RunCleanupOnce(ctx, p, log)
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func RunCleanupOnce(ctx context.Context, p Purger, log *zap.Logger) {
	n, err := p.PurgeExpiredRegistrations(ctx)
	if err != nil {
		log.Error("[CLEANUP] purge expired registrations failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("[CLEANUP] expired registrations removed", zap.Int("count", n))
	}
}
