package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the claims portal backend over REST. It implements the
// collaborator interfaces the onboarding, assessment, and claims packages
// consume.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a portal API client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// CreateSampleRecords asks the backend to generate sample claims for the
// onboarding tour's seed step.
func (c *Client) CreateSampleRecords(ctx context.Context, count int) (int, error) {
	var result SeedResult
	err := c.do(ctx, http.MethodPost, "/api/v1/claims/sample",
		map[string]int{"count": count}, &result)
	if err != nil {
		return 0, err
	}
	return result.CreatedCount, nil
}

// GetAssessment fetches the AI assessment for a claim. Returns a 404
// *Error while no assessment exists yet; use IsNotFound to detect it.
func (c *Client) GetAssessment(ctx context.Context, claimID uuid.UUID) (*Assessment, error) {
	var assessment Assessment
	path := fmt.Sprintf("/api/v1/claims/%s/assessment", claimID)
	if err := c.do(ctx, http.MethodGet, path, nil, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// StartAnalysis triggers (or re-runs) backend AI analysis for a claim and
// returns its immediate state.
func (c *Client) StartAnalysis(ctx context.Context, claimID uuid.UUID) (*Assessment, error) {
	var assessment Assessment
	path := fmt.Sprintf("/api/v1/claims/%s/analysis", claimID)
	if err := c.do(ctx, http.MethodPost, path, nil, &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// CreateClaim submits a new claim
func (c *Client) CreateClaim(ctx context.Context, intake ClaimIntake) (*Claim, error) {
	var claim Claim
	if err := c.do(ctx, http.MethodPost, "/api/v1/claims", intake, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// GetClaim fetches a single claim record
func (c *Client) GetClaim(ctx context.Context, claimID uuid.UUID) (*Claim, error) {
	var claim Claim
	path := fmt.Sprintf("/api/v1/claims/%s", claimID)
	if err := c.do(ctx, http.MethodGet, path, nil, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// ListClaims fetches the claim queue, optionally filtered by status
func (c *Client) ListClaims(ctx context.Context, filter ClaimFilter) ([]Claim, error) {
	path := "/api/v1/claims"
	if filter.Status != "" {
		path += "?status=" + url.QueryEscape(filter.Status)
	}
	var claims []Claim
	if err := c.do(ctx, http.MethodGet, path, nil, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// SubmitDecision records a human decision on a claim and returns the
// updated claim record.
func (c *Client) SubmitDecision(ctx context.Context, claimID uuid.UUID, decision Decision) (*Claim, error) {
	var claim Claim
	path := fmt.Sprintf("/api/v1/claims/%s/decision", claimID)
	if err := c.do(ctx, http.MethodPost, path, decision, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		if resp.StatusCode != http.StatusNotFound {
			c.logger.Warn("Backend request failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("error", apiErr.Message))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
