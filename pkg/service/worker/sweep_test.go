package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/mnemosyne/pkg/service/ratelimit"
	"github.com/secmon-lab/mnemosyne/pkg/service/worker"
)

func TestSweepWorkerPrunesIdleClients(t *testing.T) {
	var mu sync.Mutex
	current := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	limiter := ratelimit.New(
		ratelimit.WithWindow(time.Minute),
		ratelimit.WithClock(clock),
	)
	limiter.Check("idle-client")

	mu.Lock()
	current = current.Add(2 * time.Minute)
	mu.Unlock()

	w := worker.NewRateLimitSweepWorker(limiter, 10*time.Millisecond)
	gt.NoError(t, w.Start(context.Background())).Required()

	deadline := time.After(time.Second)
	for limiter.Clients() > 0 {
		select {
		case <-deadline:
			t.Fatal("sweep worker did not prune idle client in time")
		case <-time.After(5 * time.Millisecond):
		}
	}

	w.Stop()
	gt.Value(t, limiter.Clients()).Equal(0)
}

func TestSweepWorkerStopIsClean(t *testing.T) {
	limiter := ratelimit.New()
	w := worker.NewRateLimitSweepWorker(limiter, time.Hour)

	gt.NoError(t, w.Start(context.Background())).Required()
	w.Stop()
}
