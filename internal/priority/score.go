package priority

import (
	"math"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// Weights is the operator-facing outer weighting over the five raw
// components; it mirrors internal/config.PriorityWeights without importing
// that package, so priority stays a leaf package.
type Weights struct {
	Urgency, Impact, Sentiment, Reach, BrandRisk float64
}

// Scorer computes the composite PriorityScore described in spec §4.4.
type Scorer struct {
	cfg     Config
	weights Weights
}

func NewScorer(cfg Config, weights Weights) *Scorer {
	return &Scorer{cfg: cfg, weights: weights}
}

// Score implements the C4 contract: a deterministic function of its four
// typed inputs and the injected now (so time decay is testable).
func (s *Scorer) Score(now time.Time, event socialmodel.SocialEvent, sentiment socialmodel.SentimentResult, intentResult socialmodel.IntentResult, brand socialmodel.BrandContext) socialmodel.PriorityScore {
	components := rawComponents(event, sentiment, intentResult, brand)

	factors := []socialmodel.PriorityFactor{
		{Name: "urgency", Component: "urgency", Weight: s.weights.Urgency, Value: components.Urgency, Contribution: s.weights.Urgency * components.Urgency},
		{Name: "impact", Component: "impact", Weight: s.weights.Impact, Value: components.Impact, Contribution: s.weights.Impact * components.Impact},
		{Name: "sentiment", Component: "sentiment", Weight: s.weights.Sentiment, Value: components.Sentiment, Contribution: s.weights.Sentiment * components.Sentiment},
		{Name: "reach", Component: "reach", Weight: s.weights.Reach, Value: components.Reach, Contribution: s.weights.Reach * components.Reach},
		{Name: "brand_risk", Component: "brandRisk", Weight: s.weights.BrandRisk, Value: components.BrandRisk, Contribution: s.weights.BrandRisk * components.BrandRisk},
	}

	var composite float64
	for _, f := range factors {
		composite += f.Contribution
	}
	composite *= 100 // overall is in [0,100]

	ageHours := event.AgeHours(now)
	decay := math.Pow(s.cfg.DecayBase, ageHours/s.cfg.DecayPeriodHours)
	decayed := composite * decay
	overall := clampRange(decayed, s.cfg.MinScore, s.cfg.MaxScore)

	autoEscalate := overall >= s.cfg.EscalationThreshold

	confidence := sentiment.Overall.Confidence * intentResult.Primary.Confidence
	var modifiers []string
	if len(event.Content.Text) < 10 {
		confidence *= 0.6
		modifiers = append(modifiers, "short-text-discount")
	}
	if event.Author.FollowerCount == 0 {
		confidence *= 0.8
		modifiers = append(modifiers, "zero-followers-discount")
	}

	return socialmodel.PriorityScore{
		Overall:    overall,
		Components: components,
		Factors:    factors,
		BusinessRules: socialmodel.BusinessRules{
			AutoEscalation:   autoEscalate,
			TimeDecay:        decay,
			AppliedModifiers: modifiers,
		},
		Metadata: socialmodel.PriorityMetadata{
			EventAgeHours: ageHours,
			Confidence:    clamp01(confidence),
			Version:       "v1",
		},
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
