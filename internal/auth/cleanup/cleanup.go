package cleanup

import (
	"context"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/common/clock"
	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/observability/metrics"
)

type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// RunOnce removes revocations whose sessions have expired and returns how
// many were deleted.
func RunOnce(ctx context.Context, repo ExpiredDeleter, clk clock.Clock, log *logger.Logger) (int64, error) {
	deleted, err := repo.DeleteExpired(ctx, clk.Now())
	if err != nil {
		log.WithFields(ctx, logger.Fields{
			"action": "revoked_session_cleanup_failed",
		}).Errorf("revoked session cleanup failed: %v", err)
		return 0, err
	}
	if deleted > 0 {
		metrics.RevokedSessionsCleanupDeleted.Add(float64(deleted))
		log.WithFields(ctx, logger.Fields{
			"deleted": deleted,
			"action":  "revoked_session_cleanup",
		}).Infof("revoked session cleanup: deleted %d expired sessions", deleted)
	}
	return deleted, nil
}

// StartRevokedSessionCleanup blocks, running RunOnce every interval until
// ctx is cancelled.
func StartRevokedSessionCleanup(ctx context.Context, repo ExpiredDeleter, clk clock.Clock, interval time.Duration, log *logger.Logger) {
	if interval <= 0 {
		interval = constants.RevokedSessionCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = RunOnce(ctx, repo, clk, log)
		}
	}
}
