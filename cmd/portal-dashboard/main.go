package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"claimsight/claims-portal/claims-portal-core/internal/api"
	"claimsight/claims-portal/claims-portal-core/internal/assessment"
	"claimsight/claims-portal/claims-portal-core/internal/claims"
	"claimsight/claims-portal/claims-portal-core/internal/config"
	"claimsight/claims-portal/claims-portal-core/internal/onboarding"
	"claimsight/claims-portal/claims-portal-core/pkg/storage"
)

// portal-dashboard is a headless walkthrough of the dashboard core: it
// runs the onboarding tour against a live backend (the sandbox by
// default), then watches assessments stream in and records a decision.
func main() {
	cfg, err := config.LoadConfig(os.Getenv("CLAIMSIGHT_CONFIG"))
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	store, err := openStore(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to open client state store", zap.Error(err))
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	tour := onboarding.NewController(onboarding.DefaultCatalog(), store, client, consoleNavigator{logger}, logger)
	claimsService := claims.NewService(client, logger)
	poller := assessment.NewPoller(client, logger, cfg.Polling.AssessmentInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if tour.ShouldAutoOpen() {
		tour.Open()
		logger.Info("Onboarding tour opened for first visit")
	}

	// Walk the tour: the seed step populates the sandbox with claims.
	for _, step := range tour.Steps() {
		if tour.IsComplete(step.ID) {
			continue
		}
		logger.Info("Tour step", zap.String("id", step.ID), zap.String("title", step.Title))
		if err := tour.PerformAction(ctx, step); err != nil {
			logger.Warn("Tour step action failed", zap.String("id", step.ID), zap.Error(err))
		}
		tour.Next()
	}
	progress := tour.Progress()
	logger.Info("Tour progress",
		zap.Int("completed", progress.CompletedSteps),
		zap.Int("total", progress.TotalSteps))

	// Keep the queue fresh the way the dashboard's list views do.
	refresher := assessment.NewListRefresher(
		func(ctx context.Context) ([]api.Claim, error) {
			return claimsService.Queue(ctx, api.ClaimFilter{})
		},
		func(list []api.Claim) {
			logger.Info("Queue refreshed", zap.Int("claims", len(list)))
		},
		logger, cfg.Polling.QueueInterval)
	refresher.Start(ctx)
	defer refresher.Stop()

	queue, err := claimsService.Queue(ctx, api.ClaimFilter{Status: "in_review"})
	if err != nil {
		logger.Fatal("Failed to load claim queue", zap.Error(err))
	}
	if len(queue) == 0 {
		logger.Info("No claims in review; nothing to watch")
		return
	}

	claim := queue[0]
	logger.Info("Watching assessment",
		zap.String("claim_id", claim.ID.String()),
		zap.String("claimant", claim.ClaimantName))

	sub := poller.Observe(ctx, claim.ID)
	defer sub.Cancel()

	var final assessment.View
	for view := range sub.Updates() {
		fmt.Printf("assessment %s: %s (risk %.2f)\n", view.ClaimID, view.Status, view.RiskScore)
		final = view
	}

	if final.Status != assessment.StatusCompleted {
		logger.Info("Assessment did not complete", zap.String("status", string(final.Status)))
		return
	}

	outcome := final.Recommendation
	if outcome == "" {
		outcome = "escalated"
	}
	if outcome == "deny" {
		outcome = "denied"
	} else if outcome == "approve" {
		outcome = "approved"
	} else if outcome == "escalate" {
		outcome = "escalated"
	}

	decided, err := claimsService.Decide(ctx, claim.ID, outcome, "following AI recommendation", "demo-reviewer")
	if err != nil {
		logger.Warn("Decision not recorded", zap.Error(err))
		return
	}
	logger.Info("Decision recorded",
		zap.String("claim_id", decided.ID.String()),
		zap.String("status", decided.Status))

	// Give the queue refresher one more cycle to show the change.
	select {
	case <-ctx.Done():
	case <-time.After(cfg.Polling.QueueInterval + time.Second):
	}
}

// consoleNavigator stands in for the browser router in headless runs
type consoleNavigator struct {
	logger *zap.Logger
}

func (n consoleNavigator) Navigate(path string) error {
	n.logger.Info("Navigating", zap.String("path", path))
	return nil
}

func openStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return storage.OpenSQLiteStore(cfg.Path)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewFileStore(cfg.Path)
	}
}

func newLogger(level string) *zap.Logger {
	if level == "debug" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}
