package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/mnemosyne/pkg/service/ratelimit"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
)

// RateLimitSweepWorker periodically prunes idle clients from the rate
// limiter so the in-memory table stays bounded.
//
// Architecture assumptions:
// - Single server instance; limiter state is process-local and ephemeral
type RateLimitSweepWorker struct {
	limiter  *ratelimit.Limiter
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewRateLimitSweepWorker creates a new sweep worker
func NewRateLimitSweepWorker(limiter *ratelimit.Limiter, interval time.Duration) *RateLimitSweepWorker {
	return &RateLimitSweepWorker{
		limiter:  limiter,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop. Does not block server startup.
func (w *RateLimitSweepWorker) Start(ctx context.Context) error {
	logging.Default().Info("Rate limit sweep worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *RateLimitSweepWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Rate limit sweep worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *RateLimitSweepWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := w.limiter.Prune()
			if removed > 0 {
				logging.Default().Debug("Pruned idle rate limit clients",
					"removed", removed,
					"remaining", w.limiter.Clients(),
				)
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Rate limit sweep worker context cancelled")
			return
		}
	}
}
