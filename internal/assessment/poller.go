package assessment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimsight/claims-portal/claims-portal-core/internal/api"
)

// AssessmentAPI is the backend surface the poller consumes
type AssessmentAPI interface {
	GetAssessment(ctx context.Context, claimID uuid.UUID) (*api.Assessment, error)
	StartAnalysis(ctx context.Context, claimID uuid.UUID) (*api.Assessment, error)
}

// DefaultPollInterval is the detail-view refresh delay
const DefaultPollInterval = 15 * time.Second

// Poller keeps claim assessments fresh while backend work is
// outstanding. Each Observe call owns one goroutine which fetches
// strictly sequentially: the next fetch is armed only after the previous
// one settles, so a slow backend spaces out retries instead of stacking
// concurrent requests.
type Poller struct {
	backend  AssessmentAPI
	logger   *zap.Logger
	interval time.Duration
}

// NewPoller creates a poller with the given default interval. A zero
// interval selects DefaultPollInterval.
func NewPoller(backend AssessmentAPI, logger *zap.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		backend:  backend,
		logger:   logger,
		interval: interval,
	}
}

// ObserveOption customizes a single subscription
type ObserveOption func(*observeConfig)

type observeConfig struct {
	interval time.Duration
	onError  func(error)
}

// WithInterval overrides the re-fetch delay for one subscription
func WithInterval(d time.Duration) ObserveOption {
	return func(cfg *observeConfig) {
		if d > 0 {
			cfg.interval = d
		}
	}
}

// WithErrorHandler installs a non-blocking hook for transient fetch
// errors. Errors never stop the schedule; the hook exists so views can
// show a toast without owning the loop.
func WithErrorHandler(fn func(error)) ObserveOption {
	return func(cfg *observeConfig) {
		cfg.onError = fn
	}
}

// Subscription is a live assessment stream for one claim. Updates is
// closed once the status turns terminal or the subscription is
// cancelled; Cancel is idempotent and safe from any goroutine.
type Subscription struct {
	updates chan View
	cancel  context.CancelFunc
	once    sync.Once
}

// Updates returns the stream of derived views, one per settled fetch
func (s *Subscription) Updates() <-chan View {
	return s.updates
}

// Cancel tears the subscription down: the pending timer is dropped and
// any fetch that settles afterwards is discarded, never emitted.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Observe starts polling a claim's assessment. The first fetch happens
// immediately; while the status stays pending or processing, another
// fetch is armed a fixed delay after each one settles. A fetch error --
// including "no assessment yet" -- keeps the schedule and emits nothing.
func (p *Poller) Observe(ctx context.Context, claimID uuid.UUID, opts ...ObserveOption) *Subscription {
	cfg := observeConfig{interval: p.interval}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		updates: make(chan View),
		cancel:  cancel,
	}

	go p.run(ctx, claimID, cfg, sub)
	return sub
}

func (p *Poller) run(ctx context.Context, claimID uuid.UUID, cfg observeConfig, sub *Subscription) {
	defer close(sub.updates)

	for {
		record, err := p.backend.GetAssessment(ctx, claimID)
		if ctx.Err() != nil {
			// Cancelled while the fetch was in flight; the result
			// belongs to a dead subscription.
			return
		}

		if err != nil {
			if api.IsNotFound(err) {
				p.logger.Debug("No assessment yet, will retry",
					zap.String("claim_id", claimID.String()))
			} else {
				p.logger.Warn("Assessment fetch failed, keeping schedule",
					zap.String("claim_id", claimID.String()),
					zap.Error(err))
				if cfg.onError != nil {
					cfg.onError(err)
				}
			}
		} else {
			view := NewView(record)
			select {
			case sub.updates <- view:
			case <-ctx.Done():
				return
			}
			if view.Status.IsTerminal() {
				return
			}
		}

		timer := time.NewTimer(cfg.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// Reprocess asks the backend to re-run analysis and returns the
// immediate result as a view. Callers wanting live updates afterwards
// re-subscribe with Observe.
func (p *Poller) Reprocess(ctx context.Context, claimID uuid.UUID) (View, error) {
	record, err := p.backend.StartAnalysis(ctx, claimID)
	if err != nil {
		return View{}, err
	}
	p.logger.Info("Analysis restarted",
		zap.String("claim_id", claimID.String()),
		zap.String("status", record.Status))
	return NewView(record), nil
}
