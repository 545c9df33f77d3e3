package claims

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"claimsight/claims-portal/claims-portal-core/internal/api"
)

// MockBackend is a mock implementation of the ClaimsAPI interface
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) CreateClaim(ctx context.Context, intake api.ClaimIntake) (*api.Claim, error) {
	args := m.Called(ctx, intake)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Claim), args.Error(1)
}

func (m *MockBackend) GetClaim(ctx context.Context, claimID uuid.UUID) (*api.Claim, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Claim), args.Error(1)
}

func (m *MockBackend) ListClaims(ctx context.Context, filter api.ClaimFilter) ([]api.Claim, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]api.Claim), args.Error(1)
}

func (m *MockBackend) SubmitDecision(ctx context.Context, claimID uuid.UUID, decision api.Decision) (*api.Claim, error) {
	args := m.Called(ctx, claimID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Claim), args.Error(1)
}

func validIntake() api.ClaimIntake {
	return api.ClaimIntake{
		ClaimantName:  "Dana Whitfield",
		PolicyNumber:  "POL-20391",
		LossType:      "water_damage",
		Description:   "Burst pipe in kitchen",
		AmountClaimed: 4200,
	}
}

func TestSubmitValidClaim(t *testing.T) {
	backend := new(MockBackend)
	service := NewService(backend, zap.NewNop())
	ctx := context.Background()

	created := &api.Claim{ID: uuid.New(), PolicyNumber: "POL-20391", Status: "submitted"}
	backend.On("CreateClaim", ctx, validIntake()).Return(created, nil)

	claim, err := service.Submit(ctx, validIntake())
	require.NoError(t, err)
	assert.Equal(t, created.ID, claim.ID)
	backend.AssertExpectations(t)
}

func TestSubmitRejectsIncompleteIntake(t *testing.T) {
	backend := new(MockBackend)
	service := NewService(backend, zap.NewNop())

	intake := validIntake()
	intake.ClaimantName = "  "
	intake.PolicyNumber = ""

	_, err := service.Submit(context.Background(), intake)
	assert.ErrorIs(t, err, ErrInvalidIntake)
	assert.ErrorContains(t, err, "claimant_name")
	assert.ErrorContains(t, err, "policy_number")
	backend.AssertNotCalled(t, "CreateClaim")
}

func TestSubmitRejectsNegativeAmount(t *testing.T) {
	backend := new(MockBackend)
	service := NewService(backend, zap.NewNop())

	intake := validIntake()
	intake.AmountClaimed = -1

	_, err := service.Submit(context.Background(), intake)
	assert.ErrorIs(t, err, ErrInvalidIntake)
}

func TestDecideLegalTransition(t *testing.T) {
	backend := new(MockBackend)
	service := NewService(backend, zap.NewNop())
	ctx := context.Background()
	claimID := uuid.New()

	backend.On("GetClaim", ctx, claimID).Return(&api.Claim{ID: claimID, Status: "in_review"}, nil)
	backend.On("SubmitDecision", ctx, claimID, mock.MatchedBy(func(d api.Decision) bool {
		return d.Outcome == "approved" && d.DecidedBy == "reviewer-7"
	})).Return(&api.Claim{ID: claimID, Status: "approved"}, nil)

	updated, err := service.Decide(ctx, claimID, "Approved", "risk score acceptable", "reviewer-7")
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)
	backend.AssertExpectations(t)
}

func TestDecideRejectsIllegalTransition(t *testing.T) {
	backend := new(MockBackend)
	service := NewService(backend, zap.NewNop())
	ctx := context.Background()
	claimID := uuid.New()

	backend.On("GetClaim", ctx, claimID).Return(&api.Claim{ID: claimID, Status: "approved"}, nil)

	_, err := service.Decide(ctx, claimID, "denied", "", "reviewer-7")
	assert.Error(t, err)
	backend.AssertNotCalled(t, "SubmitDecision")
}

func TestDecideSubmittedClaimNotYetReviewable(t *testing.T) {
	backend := new(MockBackend)
	service := NewService(backend, zap.NewNop())
	ctx := context.Background()
	claimID := uuid.New()

	backend.On("GetClaim", ctx, claimID).Return(&api.Claim{ID: claimID, Status: "submitted"}, nil)

	_, err := service.Decide(ctx, claimID, "approved", "", "reviewer-7")
	assert.Error(t, err, "claims must enter review before a decision")
}

func TestQueuePassesFilterThrough(t *testing.T) {
	backend := new(MockBackend)
	service := NewService(backend, zap.NewNop())
	ctx := context.Background()

	filter := api.ClaimFilter{Status: "in_review"}
	backend.On("ListClaims", ctx, filter).Return([]api.Claim{{Status: "in_review"}}, nil)

	claims, err := service.Queue(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, claims, 1)
}

func TestDecideBackendFailure(t *testing.T) {
	backend := new(MockBackend)
	service := NewService(backend, zap.NewNop())
	ctx := context.Background()
	claimID := uuid.New()

	backend.On("GetClaim", ctx, claimID).Return(nil, errors.New("backend down"))

	_, err := service.Decide(ctx, claimID, "approved", "", "reviewer-7")
	assert.ErrorContains(t, err, "failed to load claim")
}
