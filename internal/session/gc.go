package session

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// StartValueLogGC reclaims value-log space left behind by expired sessions,
// every interval, until ctx is cancelled. The returned channel is closed
// once the loop has exited.
func StartValueLogGC(
	ctx context.Context,
	db *badger.DB,
	interval time.Duration,
	ratio float64,
	log *zap.Logger,
) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := db.RunValueLogGC(ratio)
				switch {
				case err == nil:
					log.Debug("session value log GC completed")
				case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
					// nothing to reclaim
				default:
					log.Warn("session value log GC failed", zap.Error(err))
				}
			}
		}
	}()
	return done
}
