package claims

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimsight/claims-portal/claims-portal-core/internal/api"
	"claimsight/claims-portal/claims-portal-core/pkg/workflows"
)

// ErrInvalidIntake is returned when a claim submission fails validation
var ErrInvalidIntake = errors.New("claim intake is incomplete")

// ClaimsAPI is the backend surface the claims service consumes
type ClaimsAPI interface {
	CreateClaim(ctx context.Context, intake api.ClaimIntake) (*api.Claim, error)
	GetClaim(ctx context.Context, claimID uuid.UUID) (*api.Claim, error)
	ListClaims(ctx context.Context, filter api.ClaimFilter) ([]api.Claim, error)
	SubmitDecision(ctx context.Context, claimID uuid.UUID, decision api.Decision) (*api.Claim, error)
}

// Service handles claim intake, queue listing, and decision recording
// for the dashboard views.
type Service struct {
	backend ClaimsAPI
	states  *workflows.StateMachine
	logger  *zap.Logger
}

// NewService creates a claims service
func NewService(backend ClaimsAPI, logger *zap.Logger) *Service {
	return &Service{
		backend: backend,
		states:  workflows.NewClaimStateMachine(),
		logger:  logger,
	}
}

// Submit validates an intake form and creates the claim
func (s *Service) Submit(ctx context.Context, intake api.ClaimIntake) (*api.Claim, error) {
	if err := validateIntake(intake); err != nil {
		return nil, err
	}

	claim, err := s.backend.CreateClaim(ctx, intake)
	if err != nil {
		return nil, fmt.Errorf("failed to submit claim: %w", err)
	}

	s.logger.Info("Claim submitted",
		zap.String("claim_id", claim.ID.String()),
		zap.String("policy_number", claim.PolicyNumber))
	return claim, nil
}

// Queue lists claims for dashboard views, optionally filtered by status
func (s *Service) Queue(ctx context.Context, filter api.ClaimFilter) ([]api.Claim, error) {
	return s.backend.ListClaims(ctx, filter)
}

// Decide records a human reviewer's decision. The outcome must be a
// legal transition from the claim's current status; decided claims
// cannot be re-decided.
func (s *Service) Decide(ctx context.Context, claimID uuid.UUID, outcome, note, decidedBy string) (*api.Claim, error) {
	outcome = strings.ToLower(strings.TrimSpace(outcome))

	claim, err := s.backend.GetClaim(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to load claim: %w", err)
	}

	if !s.states.CanTransition(claim.Status, outcome) {
		return nil, fmt.Errorf("cannot move claim from %q to %q (allowed: %s)",
			claim.Status, outcome, strings.Join(s.states.GetAllowedTransitions(claim.Status), ", "))
	}

	decision := api.Decision{
		Outcome:   outcome,
		Note:      note,
		DecidedBy: decidedBy,
		DecidedAt: time.Now().UTC(),
	}
	updated, err := s.backend.SubmitDecision(ctx, claimID, decision)
	if err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	s.logger.Info("Decision recorded",
		zap.String("claim_id", claimID.String()),
		zap.String("outcome", outcome))
	return updated, nil
}

func validateIntake(intake api.ClaimIntake) error {
	var missing []string
	if strings.TrimSpace(intake.ClaimantName) == "" {
		missing = append(missing, "claimant_name")
	}
	if strings.TrimSpace(intake.PolicyNumber) == "" {
		missing = append(missing, "policy_number")
	}
	if strings.TrimSpace(intake.LossType) == "" {
		missing = append(missing, "loss_type")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidIntake, strings.Join(missing, ", "))
	}
	if intake.AmountClaimed < 0 {
		return fmt.Errorf("%w: amount_claimed cannot be negative", ErrInvalidIntake)
	}
	return nil
}
