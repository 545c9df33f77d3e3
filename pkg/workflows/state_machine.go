package workflows

// StateMachine enforces assessment and claim status transitions
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewAssessmentStateMachine creates the state machine for AI assessment
// processing. Reprocessing a settled assessment re-enters "pending".
func NewAssessmentStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"pending":    {"processing"},
			"processing": {"completed", "failed"},
			"completed":  {"pending"}, // reprocess
			"failed":     {"pending"}, // reprocess
		},
	}
}

// NewClaimStateMachine creates the state machine for claim review. A claim
// waits for its assessment, then a human records a decision.
func NewClaimStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"submitted": {"in_review"},
			"in_review": {"approved", "denied", "escalated"},
			"escalated": {"approved", "denied"},
			"approved":  {},
			"denied":    {},
		},
	}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}

// IsTerminal reports whether a status has no outgoing transitions.
func (sm *StateMachine) IsTerminal(status string) bool {
	allowed, exists := sm.allowedTransitions[status]
	return exists && len(allowed) == 0
}
