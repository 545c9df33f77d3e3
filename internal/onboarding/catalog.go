package onboarding

// DefaultCatalog returns the demo tour shipped with the dashboard: seed
// sample data, then walk intake, queue, assessment, and decision views.
func DefaultCatalog() []Step {
	return []Step{
		{
			ID:          "seed-sample-claims",
			Title:       "Create sample claims",
			Description: "Generate a handful of example claims so every screen has data to show.",
			Bullets: []string{
				"Sample claims are marked as demo data",
				"AI analysis starts automatically for each one",
			},
			CTALabel: "Create sample claims",
			Action:   StepAction{Kind: ActionSeed, Count: 5},
		},
		{
			ID:          "visit-intake",
			Title:       "Submit a claim",
			Description: "The intake form captures claimant, policy, and loss details.",
			Bullets: []string{
				"Required fields are validated before submission",
				"Submitted claims enter the review queue immediately",
			},
			CTALabel: "Open intake",
			Action:   StepAction{Kind: ActionRoute, Path: "/claims/new"},
		},
		{
			ID:          "review-queue",
			Title:       "Work the queue",
			Description: "The queue lists claims awaiting review and refreshes itself while open.",
			Bullets: []string{
				"Filter by status to focus on what needs attention",
				"The list refreshes automatically every 20 seconds",
			},
			CTALabel: "Open queue",
			Action:   StepAction{Kind: ActionRoute, Path: "/claims"},
		},
		{
			ID:          "open-assessment",
			Title:       "Read an AI assessment",
			Description: "Each claim gets an AI risk assessment; the view polls until analysis finishes.",
			Bullets: []string{
				"Pending and processing assessments refresh on their own",
				"Reprocess re-runs analysis on demand",
			},
			CTALabel: "View an assessment",
			Action:   StepAction{Kind: ActionRoute, Path: "/claims/sample/assessment"},
		},
		{
			ID:          "decide-claim",
			Title:       "Record a decision",
			Description: "Approve, deny, or escalate — the AI recommends, a human decides.",
			Bullets: []string{
				"Decisions are final once recorded",
				"Escalated claims route to a senior reviewer",
			},
			CTALabel: "Decide a claim",
			Action:   StepAction{Kind: ActionNone},
		},
	}
}
