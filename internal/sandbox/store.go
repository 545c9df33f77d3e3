package sandbox

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"claimsight/claims-portal/claims-portal-core/internal/api"
	"claimsight/claims-portal/claims-portal-core/pkg/workflows"
)

// ErrClaimNotFound is returned for unknown claim IDs
var ErrClaimNotFound = errors.New("sandbox: claim not found")

// ErrNoAssessment is returned while a claim has no assessment yet
var ErrNoAssessment = errors.New("sandbox: no assessment for claim")

var sampleClaims = []api.ClaimIntake{
	{ClaimantName: "Priya Nandakumar", PolicyNumber: "POL-88213", LossType: "water_damage", Description: "Burst pipe flooded the basement", AmountClaimed: 12400},
	{ClaimantName: "Marcus Webb", PolicyNumber: "POL-11027", LossType: "collision", Description: "Rear-ended at a stop light", AmountClaimed: 8650},
	{ClaimantName: "Elena Vasquez", PolicyNumber: "POL-54990", LossType: "theft", Description: "Laptop and camera stolen from vehicle", AmountClaimed: 3100},
	{ClaimantName: "Tom Okafor", PolicyNumber: "POL-73345", LossType: "fire", Description: "Kitchen fire damaged cabinetry", AmountClaimed: 27800},
	{ClaimantName: "Grete Lindqvist", PolicyNumber: "POL-20984", LossType: "hail", Description: "Roof damage after storm", AmountClaimed: 15900},
	{ClaimantName: "Sam Delacroix", PolicyNumber: "POL-61042", LossType: "liability", Description: "Visitor slipped on icy walkway", AmountClaimed: 42000},
}

// Store is the sandbox's in-memory record of claims and assessments. It
// stands in for the production backend's database so demos and
// integration tests run without external services.
type Store struct {
	mu          sync.RWMutex
	claims      map[uuid.UUID]*api.Claim
	assessments map[uuid.UUID]*api.Assessment

	assessmentStates *workflows.StateMachine
	claimStates      *workflows.StateMachine
}

// NewStore creates an empty sandbox store
func NewStore() *Store {
	return &Store{
		claims:           make(map[uuid.UUID]*api.Claim),
		assessments:      make(map[uuid.UUID]*api.Assessment),
		assessmentStates: workflows.NewAssessmentStateMachine(),
		claimStates:      workflows.NewClaimStateMachine(),
	}
}

// CreateClaim creates a claim in "submitted" status
func (s *Store) CreateClaim(intake api.ClaimIntake) *api.Claim {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createClaimLocked(intake)
}

func (s *Store) createClaimLocked(intake api.ClaimIntake) *api.Claim {
	now := time.Now().UTC()
	claim := &api.Claim{
		ID:            uuid.New(),
		ClaimantName:  intake.ClaimantName,
		PolicyNumber:  intake.PolicyNumber,
		LossType:      intake.LossType,
		Description:   intake.Description,
		AmountClaimed: intake.AmountClaimed,
		Status:        "submitted",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.claims[claim.ID] = claim
	return claim
}

// Seed creates count sample claims and starts analysis for each, the way
// the onboarding tour promises.
func (s *Store) Seed(count int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := 0
	for i := 0; i < count; i++ {
		intake := sampleClaims[i%len(sampleClaims)]
		claim := s.createClaimLocked(intake)
		s.startAnalysisLocked(claim)
		created++
	}
	return created
}

// GetClaim returns a copy of the claim record
func (s *Store) GetClaim(claimID uuid.UUID) (*api.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[claimID]
	if !ok {
		return nil, ErrClaimNotFound
	}
	copied := *claim
	return &copied, nil
}

// ListClaims returns claims newest first, optionally filtered by status
func (s *Store) ListClaims(status string) []api.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claims := make([]api.Claim, 0, len(s.claims))
	for _, claim := range s.claims {
		if status != "" && claim.Status != status {
			continue
		}
		claims = append(claims, *claim)
	}
	sort.Slice(claims, func(i, j int) bool {
		return claims[i].CreatedAt.After(claims[j].CreatedAt)
	})
	return claims
}

// GetAssessment returns a copy of the claim's assessment, or
// ErrNoAssessment while analysis has not been started.
func (s *Store) GetAssessment(claimID uuid.UUID) (*api.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.claims[claimID]; !ok {
		return nil, ErrClaimNotFound
	}
	assessment, ok := s.assessments[claimID]
	if !ok {
		return nil, ErrNoAssessment
	}
	copied := *assessment
	return &copied, nil
}

// StartAnalysis creates (or resets) the claim's assessment in "pending"
// and moves a submitted claim into review.
func (s *Store) StartAnalysis(claimID uuid.UUID) (*api.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[claimID]
	if !ok {
		return nil, ErrClaimNotFound
	}
	assessment := s.startAnalysisLocked(claim)
	copied := *assessment
	return &copied, nil
}

func (s *Store) startAnalysisLocked(claim *api.Claim) *api.Assessment {
	assessment := &api.Assessment{
		ClaimID:   claim.ID,
		Status:    "pending",
		UpdatedAt: time.Now().UTC(),
	}
	s.assessments[claim.ID] = assessment

	if s.claimStates.CanTransition(claim.Status, "in_review") {
		claim.Status = "in_review"
		claim.UpdatedAt = time.Now().UTC()
	}
	return assessment
}

// Decide applies a reviewer decision if it is a legal transition
func (s *Store) Decide(claimID uuid.UUID, decision api.Decision) (*api.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[claimID]
	if !ok {
		return nil, ErrClaimNotFound
	}
	if !s.claimStates.CanTransition(claim.Status, decision.Outcome) {
		return nil, fmt.Errorf("illegal transition %q -> %q", claim.Status, decision.Outcome)
	}
	claim.Status = decision.Outcome
	claim.UpdatedAt = time.Now().UTC()
	copied := *claim
	return &copied, nil
}

// Sweep advances every assessment one state: pending -> processing and
// processing -> completed (or failed for claims the model cannot score).
// Returns how many assessments changed state.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	advanced := 0
	for claimID, assessment := range s.assessments {
		claim := s.claims[claimID]
		switch assessment.Status {
		case "pending":
			if s.assessmentStates.CanTransition("pending", "processing") {
				assessment.Status = "processing"
				assessment.UpdatedAt = time.Now().UTC()
				advanced++
			}
		case "processing":
			s.settleLocked(assessment, claim)
			advanced++
		}
	}
	return advanced
}

func (s *Store) settleLocked(assessment *api.Assessment, claim *api.Claim) {
	now := time.Now().UTC()
	assessment.UpdatedAt = now

	// Very large claims exceed the demo model's range and fail, which
	// gives the dashboard a failed state to render.
	if claim.AmountClaimed >= 250000 {
		assessment.Status = "failed"
		assessment.Summary = "Analysis failed: claimed amount exceeds model calibration range"
		return
	}

	assessment.Status = "completed"
	assessment.CompletedAt = &now
	assessment.RiskScore = riskScore(claim)
	assessment.Summary = fmt.Sprintf("%s claim for $%.0f assessed against policy %s",
		claim.LossType, claim.AmountClaimed, claim.PolicyNumber)
	switch {
	case assessment.RiskScore >= 0.75:
		assessment.Recommendation = "deny"
	case assessment.RiskScore >= 0.45:
		assessment.Recommendation = "escalate"
	default:
		assessment.Recommendation = "approve"
	}
}

// riskScore derives a stable pseudo-score from the claim identity so
// repeated demo runs behave consistently for a given claim.
func riskScore(claim *api.Claim) float64 {
	sum := 0
	for _, b := range claim.ID {
		sum += int(b)
	}
	base := float64(sum%100) / 100.0
	if claim.LossType == "theft" || claim.LossType == "liability" {
		base += 0.2
	}
	if base > 1 {
		base = 1
	}
	return base
}
