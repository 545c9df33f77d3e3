package assessment

import (
	"time"

	"github.com/google/uuid"

	"claimsight/claims-portal/claims-portal-core/internal/api"
)

// Status is the display status derived from the backend assessment
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether polling should stop at this status
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ParseStatus classifies a backend status string. Unknown values are
// treated as pending so a backend rollout of a new intermediate status
// keeps views polling instead of freezing them.
func ParseStatus(raw string) Status {
	switch Status(raw) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return Status(raw)
	default:
		return StatusPending
	}
}

// View is the assessment state a claim detail view renders. IsPolling is
// derived: true while the backend is still working.
type View struct {
	ClaimID        uuid.UUID `json:"claim_id"`
	Status         Status    `json:"status"`
	IsPolling      bool      `json:"is_polling"`
	RiskScore      float64   `json:"risk_score"`
	Summary        string    `json:"summary"`
	Recommendation string    `json:"recommendation"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewView derives a View from a backend assessment record
func NewView(a *api.Assessment) View {
	status := ParseStatus(a.Status)
	return View{
		ClaimID:        a.ClaimID,
		Status:         status,
		IsPolling:      !status.IsTerminal(),
		RiskScore:      a.RiskScore,
		Summary:        a.Summary,
		Recommendation: a.Recommendation,
		UpdatedAt:      a.UpdatedAt,
	}
}
