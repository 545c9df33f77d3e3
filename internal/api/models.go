package api

import (
	"time"

	"github.com/google/uuid"
)

// Claim is the backend claim record as seen by the dashboard
type Claim struct {
	ID            uuid.UUID `json:"id"`
	ClaimantName  string    `json:"claimant_name"`
	PolicyNumber  string    `json:"policy_number"`
	LossType      string    `json:"loss_type"`
	Description   string    `json:"description"`
	AmountClaimed float64   `json:"amount_claimed"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Assessment is the AI analysis attached to a claim. Status moves through
// pending -> processing -> completed/failed on the backend's schedule.
type Assessment struct {
	ClaimID        uuid.UUID  `json:"claim_id"`
	Status         string     `json:"status"`
	RiskScore      float64    `json:"risk_score"`
	Summary        string     `json:"summary"`
	Recommendation string     `json:"recommendation"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ClaimIntake is the payload for submitting a new claim
type ClaimIntake struct {
	ClaimantName  string  `json:"claimant_name"`
	PolicyNumber  string  `json:"policy_number"`
	LossType      string  `json:"loss_type"`
	Description   string  `json:"description"`
	AmountClaimed float64 `json:"amount_claimed"`
}

// Decision is a human reviewer's ruling on a claim
type Decision struct {
	Outcome   string    `json:"outcome"` // approved, denied, escalated
	Note      string    `json:"note"`
	DecidedBy string    `json:"decided_by"`
	DecidedAt time.Time `json:"decided_at"`
}

// SeedResult reports how many sample claims the backend created
type SeedResult struct {
	CreatedCount int `json:"created_count"`
}

// ClaimFilter narrows queue listings
type ClaimFilter struct {
	Status string
}
