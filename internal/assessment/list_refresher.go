package assessment

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"claimsight/claims-portal/claims-portal-core/internal/api"
)

// DefaultQueueInterval is the dashboard list refresh period
const DefaultQueueInterval = 20 * time.Second

// ListFetcher loads the claim collection a dashboard view displays
type ListFetcher func(ctx context.Context) ([]api.Claim, error)

// ListRefresher re-fetches an entire claim collection on a fixed
// interval, regardless of per-item status. Dashboard queue views use it
// where the per-claim poller would be overkill: no state machine, just
// unconditional refresh until Stop.
type ListRefresher struct {
	fetch    ListFetcher
	onUpdate func([]api.Claim)
	logger   *zap.Logger
	interval time.Duration

	done     chan struct{}
	stopOnce sync.Once
	started  bool
	mu       sync.Mutex
}

// NewListRefresher creates a refresher pushing each successful fetch to
// onUpdate. A zero interval selects DefaultQueueInterval.
func NewListRefresher(fetch ListFetcher, onUpdate func([]api.Claim), logger *zap.Logger, interval time.Duration) *ListRefresher {
	if interval <= 0 {
		interval = DefaultQueueInterval
	}
	return &ListRefresher{
		fetch:    fetch,
		onUpdate: onUpdate,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing: one immediate fetch, then one per interval
// until Stop or context cancellation. Calling Start twice is a no-op.
func (r *ListRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()

	go r.loop(ctx)
}

// Stop cancels the refresh loop. Idempotent; a fetch in flight when
// Stop is called is discarded, not delivered.
func (r *ListRefresher) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

func (r *ListRefresher) loop(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.done:
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *ListRefresher) refresh(ctx context.Context) {
	claims, err := r.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("Queue refresh failed, keeping schedule", zap.Error(err))
		}
		return
	}

	// Drop results that settle after teardown began.
	select {
	case <-r.done:
		return
	default:
	}
	if ctx.Err() != nil {
		return
	}

	r.onUpdate(claims)
}
