package onboarding

// ActionKind distinguishes what a step's call-to-action does
type ActionKind string

const (
	// ActionSeed asks the backend to create sample claims
	ActionSeed ActionKind = "seed"
	// ActionRoute navigates the dashboard to a page
	ActionRoute ActionKind = "route"
	// ActionNone has no side effect
	ActionNone ActionKind = "none"
)

// StepAction is the tagged action attached to a tour step. Count applies
// to seed actions, Path to route actions.
type StepAction struct {
	Kind  ActionKind `json:"kind"`
	Count int        `json:"count,omitempty"`
	Path  string     `json:"path,omitempty"`
}

// Step represents a step in the guided tour. IDs are stable across
// releases; completion is tracked by ID so the catalog can be reordered
// without invalidating persisted progress.
type Step struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Bullets     []string   `json:"bullets"`
	CTALabel    string     `json:"cta_label"`
	Action      StepAction `json:"action"`
}

// State is the persisted tour state
type State struct {
	HasSeenIntro     bool     `json:"has_seen_intro"`
	CompletedStepIDs []string `json:"completed_step_ids"`
	CurrentStepIndex int      `json:"current_step_index"`
	Disabled         bool     `json:"disabled"`
}

// Snapshot is the observable tour state handed to embedding views
type Snapshot struct {
	IsOpen           bool     `json:"is_open"`
	HasSeenIntro     bool     `json:"has_seen_intro"`
	CurrentStepIndex int      `json:"current_step_index"`
	CompletedStepIDs []string `json:"completed_step_ids"`
	Disabled         bool     `json:"disabled"`
}

// Progress represents the overall tour progress
type Progress struct {
	CompletedSteps  int     `json:"completed_steps"`
	TotalSteps      int     `json:"total_steps"`
	PercentComplete float64 `json:"percent_complete"`
}
