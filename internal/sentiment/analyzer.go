package sentiment

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// Analyzer runs the ensemble sentiment pipeline described in spec §4.1:
// preprocess, fan out to enabled ModelBackends, weighted-average the
// survivors, apply the platform tilt, and decompose aspect sentiment.
type Analyzer struct {
	backends []ModelBackend
	cfg      Config
}

// New builds an Analyzer. backends should include the lexical backend plus
// any optional provider backend; order does not affect the result since
// weighting is keyed by Name().
func New(cfg Config, backends ...ModelBackend) *Analyzer {
	return &Analyzer{backends: backends, cfg: cfg}
}

// Analyze is a pure function of (event.Content, event.Platform, config):
// identical inputs yield identical output, aside from each backend's own
// error/latency, which only affects which backends contribute.
func (a *Analyzer) Analyze(ctx context.Context, event socialmodel.SocialEvent) socialmodel.SentimentResult {
	clean := preprocess(event.Content.Text)

	modelResults := a.runBackends(ctx, clean)

	overallScore := weightedAverage(modelResults, a.cfg.ModelWeights)

	adjusted, factor := applyPlatformTilt(overallScore, event.Platform, a.cfg.Tilts)

	label := labelFor(adjusted, a.cfg.LabelThreshold)
	overallConfidence := confidenceForScore(adjusted, a.cfg.ConfidenceTiers)

	return socialmodel.SentimentResult{
		Overall: socialmodel.OverallSentiment{
			Label:      label,
			Score:      adjusted,
			Confidence: overallConfidence,
		},
		Models:           modelResults,
		AspectSentiments: aspectSentiments(event.Content.Text, a.cfg),
		PlatformAdjusted: socialmodel.PlatformAdjustment{
			OriginalScore:    overallScore,
			AdjustedScore:    adjusted,
			AdjustmentFactor: factor,
		},
	}
}

// runBackends runs every backend concurrently with errgroup; a failing
// backend records its error and is dropped from the ensemble average
// rather than aborting the group (spec: "on any model failure, record an
// error and continue with remaining models").
func (a *Analyzer) runBackends(ctx context.Context, text string) []socialmodel.ModelSentiment {
	results := make([]socialmodel.ModelSentiment, len(a.backends))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for i, backend := range a.backends {
		i, backend := i, backend
		g.Go(func() error {
			score, err := backend.Score(gctx, text)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[i] = socialmodel.ModelSentiment{Model: backend.Name(), Err: err.Error()}
				return nil
			}
			results[i] = socialmodel.ModelSentiment{
				Model:      backend.Name(),
				Score:      score.Score,
				Confidence: score.Confidence,
			}
			return nil
		})
	}
	_ = g.Wait() // backends never return a group-aborting error; see above

	return results
}

// weightedAverage normalizes the configured weights over successful models
// only, so a single failing backend never zeroes out the ensemble. Overall
// confidence is derived separately from the final score's magnitude via
// confidenceForScore, not from these per-backend confidences.
func weightedAverage(results []socialmodel.ModelSentiment, weights map[string]float64) (score float64) {
	var weightedScore, totalWeight float64

	for _, r := range results {
		if r.Err != "" {
			continue
		}
		w := weights[r.Model]
		if w <= 0 {
			continue
		}
		weightedScore += r.Score * w
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0
	}
	return weightedScore / totalWeight
}

// applyPlatformTilt applies the sign-dependent boost and the platform's
// neutral dead-zone, then clamps to [-1,1].
func applyPlatformTilt(score float64, platform socialmodel.Platform, tilts map[socialmodel.Platform]PlatformTilt) (adjusted, factor float64) {
	tilt, ok := tilts[platform]
	if !ok {
		return score, 1.0
	}

	boost := tilt.PositiveBoost
	if score < 0 {
		boost = tilt.NegativeBoost
	}
	factor = 1 + boost
	adjusted = score * factor

	if adjusted > -tilt.DeadZone && adjusted < tilt.DeadZone {
		adjusted = 0
	}

	return clamp(adjusted, -1, 1), factor
}

func labelFor(score, threshold float64) socialmodel.SentimentLabel {
	switch {
	case score > threshold:
		return socialmodel.SentimentPositive
	case score < -threshold:
		return socialmodel.SentimentNegative
	default:
		return socialmodel.SentimentNeutral
	}
}
