package sandbox

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper advances sandbox assessments on a schedule so dashboards see
// the same pending -> processing -> completed progression the production
// AI pipeline produces.
type Sweeper struct {
	store    *Store
	logger   *zap.Logger
	interval time.Duration
	cron     *cron.Cron
}

// NewSweeper creates a sweeper; interval is how long each assessment
// dwells in a state.
func NewSweeper(store *Store, logger *zap.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Sweeper{
		store:    store,
		logger:   logger,
		interval: interval,
		cron:     cron.New(),
	}
}

// Start schedules the sweep job
func (s *Sweeper) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}
	s.cron.Start()
	s.logger.Info("Assessment sweeper started", zap.Duration("interval", s.interval))
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Assessment sweeper stopped")
}

func (s *Sweeper) sweep() {
	if advanced := s.store.Sweep(); advanced > 0 {
		s.logger.Debug("Assessments advanced", zap.Int("count", advanced))
	}
}
