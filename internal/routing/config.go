package routing

import "github.com/socialpulse/engine/internal/socialmodel"

// ConfidenceOverride is one ordered rule: when Condition matches the
// routing facts, overall confidence is replaced with NewConfidence (spec
// §4.5 step 2).
type ConfidenceOverride struct {
	Name          string
	Condition     Condition
	NewConfidence float64
}

// AlwaysHumanReviewRule forces human-review regardless of confidence when
// its condition matches (spec §4.5 step 3).
type AlwaysHumanReviewRule struct {
	Name      string
	Condition Condition
	Reason    string
}

// NeverAutoRespondRule forces suggestion-or-human-review (never auto)
// when its condition matches (spec §4.5 step 4).
type NeverAutoRespondRule struct {
	Name      string
	Condition Condition
	Reason    string
}

// Thresholds mirrors internal/config.ConfidenceThresholds without importing
// that package, keeping routing a leaf package.
type Thresholds struct {
	AutoResponse float64
	Suggestion   float64
	HumanReview  float64
}

// Config bundles the override rules and thresholds the router needs.
type Config struct {
	Thresholds         Thresholds
	ConfidenceOverrides []ConfidenceOverride
	AlwaysHumanReview   []AlwaysHumanReviewRule
	NeverAutoRespond    []NeverAutoRespondRule
	QueueWaitBaseMinutes float64
}

// DefaultConfig returns a conservative baseline rule set: critical urgency
// and refund/complaint intents always go to human review; spam never
// auto-responds.
func DefaultConfig(thresholds Thresholds) Config {
	return Config{
		Thresholds: thresholds,
		AlwaysHumanReview: []AlwaysHumanReviewRule{
			{
				Name:      "critical-urgency",
				Condition: Eq{Field: "urgency", Value: string(socialmodel.UrgencyCritical)},
				Reason:    "critical urgency always reviewed by a human",
			},
			{
				Name:      "refund-request",
				Condition: Eq{Field: "intent", Value: string(socialmodel.IntentRefundRequest)},
				Reason:    "refund requests always reviewed by a human",
			},
			{
				Name:      "complaint",
				Condition: Eq{Field: "intent", Value: string(socialmodel.IntentComplaint)},
				Reason:    "complaints always reviewed by a human",
			},
		},
		NeverAutoRespond: []NeverAutoRespondRule{
			{
				Name:      "spam",
				Condition: Eq{Field: "intent", Value: string(socialmodel.IntentSpam)},
				Reason:    "spam is never auto-responded to",
			},
		},
		QueueWaitBaseMinutes: 30,
	}
}
