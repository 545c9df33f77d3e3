package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"claimsight/claims-portal/claims-portal-core/pkg/storage"
)

// stateKey is the namespace under which tour state is persisted
const stateKey = "claimsight.onboarding.v1"

// SampleSeeder creates demo claims for the tour's seed step
type SampleSeeder interface {
	CreateSampleRecords(ctx context.Context, count int) (int, error)
}

// Navigator performs client-side route transitions
type Navigator interface {
	Navigate(path string) error
}

// Controller owns the guided tour: step traversal, completion
// bookkeeping, and persistence. Embedding views never touch storage
// directly. All methods are safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	steps     []Step
	store     storage.Store
	seeder    SampleSeeder
	navigator Navigator
	logger    *zap.Logger

	isOpen    bool
	completed map[string]struct{}
	current   int
	seenIntro bool
	disabled  bool
}

// NewController creates a tour controller and rehydrates persisted state.
// Missing or corrupt persisted state falls back to defaults; the tour is
// never opened automatically — callers consult ShouldAutoOpen.
func NewController(steps []Step, store storage.Store, seeder SampleSeeder, navigator Navigator, logger *zap.Logger) *Controller {
	c := &Controller{
		steps:     steps,
		store:     store,
		seeder:    seeder,
		navigator: navigator,
		logger:    logger,
		completed: make(map[string]struct{}),
	}
	c.rehydrate()
	return c
}

// Open opens the tour, optionally jumping to a step first. An
// out-of-range index is clamped, never rejected.
func (c *Controller) Open(stepIndex ...int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(stepIndex) > 0 {
		c.current = c.clamp(stepIndex[0])
	}
	c.isOpen = true
	c.persist()
}

// GoTo sets the current step without forcing the tour open
func (c *Controller) GoTo(stepIndex int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.clamp(stepIndex)
	c.persist()
}

// Close dismisses the tour and remembers that it has been seen
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isOpen = false
	c.seenIntro = true
	c.persist()
}

// Next advances one step, stopping at the last step
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.clamp(c.current + 1)
	c.persist()
}

// Prev moves back one step, stopping at the first step
func (c *Controller) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.clamp(c.current - 1)
	c.persist()
}

// MarkComplete records a step as done. Idempotent.
func (c *Controller) MarkComplete(stepID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.completed[stepID] = struct{}{}
	c.persist()
}

// Reset restores defaults, reopens the tour, and erases persisted state
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.completed = make(map[string]struct{})
	c.current = 0
	c.seenIntro = false
	c.disabled = false
	c.isOpen = true

	if err := c.store.Remove(stateKey); err != nil {
		c.logger.Debug("Failed to clear persisted tour state", zap.Error(err))
	}
}

// SetDisabled toggles the permanent opt-out. Enabling it also dismisses
// the tour; clearing it reopens the tour as if unseen.
func (c *Controller) SetDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.disabled = disabled
	if disabled {
		c.seenIntro = true
		c.isOpen = false
	} else {
		c.seenIntro = false
		c.isOpen = true
	}
	c.persist()
}

// PerformAction dispatches a step's call-to-action. Seed failures leave
// tour state untouched and are returned to the caller for display.
func (c *Controller) PerformAction(ctx context.Context, step Step) error {
	switch step.Action.Kind {
	case ActionSeed:
		count := step.Action.Count
		if count <= 0 {
			count = 5
		}
		created, err := c.seeder.CreateSampleRecords(ctx, count)
		if err != nil {
			return fmt.Errorf("failed to create sample claims: %w", err)
		}
		c.logger.Info("Sample claims created", zap.Int("count", created))
		c.MarkComplete(step.ID)
		return nil

	case ActionRoute:
		if step.Action.Path == "" {
			return errors.New("route step has no path")
		}
		c.MarkComplete(step.ID)
		c.Close()
		if err := c.navigator.Navigate(step.Action.Path); err != nil {
			return fmt.Errorf("failed to navigate to %s: %w", step.Action.Path, err)
		}
		return nil

	case ActionNone:
		return nil

	default:
		return fmt.Errorf("unknown step action %q", step.Action.Kind)
	}
}

// Snapshot returns the current observable tour state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		IsOpen:           c.isOpen,
		HasSeenIntro:     c.seenIntro,
		CurrentStepIndex: c.current,
		CompletedStepIDs: c.completedIDs(),
		Disabled:         c.disabled,
	}
}

// Progress reports how much of the tour is done. Only completions that
// match a cataloged step count toward the percentage.
func (c *Controller) Progress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()

	done := 0
	for _, step := range c.steps {
		if _, ok := c.completed[step.ID]; ok {
			done++
		}
	}
	progress := Progress{
		CompletedSteps: done,
		TotalSteps:     len(c.steps),
	}
	if progress.TotalSteps > 0 {
		progress.PercentComplete = float64(done) / float64(progress.TotalSteps) * 100
	}
	return progress
}

// IsComplete reports whether a step has been marked done
func (c *Controller) IsComplete(stepID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.completed[stepID]
	return ok
}

// ShouldAutoOpen reports whether a first-visit auto-open would be
// appropriate: the tour has never been dismissed and is not disabled.
// Whether to act on it is the embedding app's call.
func (c *Controller) ShouldAutoOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return !c.seenIntro && !c.disabled
}

// Steps returns the step catalog
func (c *Controller) Steps() []Step {
	return c.steps
}

// CurrentStep returns the active step
func (c *Controller) CurrentStep() Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.steps[c.clamp(c.current)]
}

func (c *Controller) clamp(index int) int {
	if index < 0 || len(c.steps) == 0 {
		return 0
	}
	if index > len(c.steps)-1 {
		return len(c.steps) - 1
	}
	return index
}

func (c *Controller) completedIDs() []string {
	ids := make([]string, 0, len(c.completed))
	for id := range c.completed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// persist writes the durable fields. Best effort: onboarding state is
// not safety-critical, so storage failures only log at debug.
// Callers must hold c.mu.
func (c *Controller) persist() {
	state := State{
		HasSeenIntro:     c.seenIntro,
		CompletedStepIDs: c.completedIDs(),
		CurrentStepIndex: c.current,
		Disabled:         c.disabled,
	}
	data, err := json.Marshal(state)
	if err != nil {
		c.logger.Debug("Failed to encode tour state", zap.Error(err))
		return
	}
	if err := c.store.Set(stateKey, data); err != nil {
		c.logger.Debug("Failed to persist tour state", zap.Error(err))
	}
}

func (c *Controller) rehydrate() {
	data, err := c.store.Get(stateKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Debug("Failed to read persisted tour state", zap.Error(err))
		}
		return
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		c.logger.Debug("Persisted tour state is corrupt, using defaults", zap.Error(err))
		return
	}

	c.seenIntro = state.HasSeenIntro
	c.disabled = state.Disabled
	c.current = c.clamp(state.CurrentStepIndex)
	for _, id := range state.CompletedStepIDs {
		c.completed[id] = struct{}{}
	}
}
