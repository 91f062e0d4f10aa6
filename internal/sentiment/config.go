package sentiment

import "github.com/socialpulse/engine/internal/socialmodel"

// PlatformTilt is the per-platform boost/dead-zone applied after the
// ensemble average (spec §4.1 step 3).
type PlatformTilt struct {
	PositiveBoost float64 // applied when score > 0
	NegativeBoost float64 // applied when score < 0
	DeadZone      float64 // |score| within this band is zeroed
}

// Aspect is one configured aspect to decompose sentiment for.
type Aspect struct {
	Name       string
	Synonyms   []string
	WindowSize int // characters on each side of a mention
}

// ConfidenceTier maps a minimum |score| to the confidence reported for
// scores at or above it (spec §4.1 step 4: "confidence by configurable
// tiers against |score|"). Tiers must be checked highest MinAbsScore first;
// DefaultConfig returns them pre-sorted.
type ConfidenceTier struct {
	MinAbsScore float64
	Confidence  float64
}

// Config is the sentiment analyzer's own tuning knobs. Unlike the global
// engine config (thresholds, weights) these are domain-internal constants
// the spec describes algorithmically rather than exposing as operator
// knobs, so they ship with defaults here rather than in internal/config.
type Config struct {
	ModelWeights     map[string]float64
	Tilts            map[socialmodel.Platform]PlatformTilt
	Aspects          []Aspect
	LabelThreshold   float64          // spec: label boundary at +/-0.1
	ConfidenceTiers  []ConfidenceTier // sorted by MinAbsScore descending
}

// confidenceForScore returns the confidence of the first tier whose
// MinAbsScore the magnitude of score meets, falling back to 0 when no tier
// matches (e.g. an empty tier table).
func confidenceForScore(score float64, tiers []ConfidenceTier) float64 {
	abs := score
	if abs < 0 {
		abs = -abs
	}
	for _, tier := range tiers {
		if abs >= tier.MinAbsScore {
			return tier.Confidence
		}
	}
	return 0
}

// DefaultConfig returns the baseline tuning used when no overrides are
// supplied.
func DefaultConfig() Config {
	return Config{
		ModelWeights: map[string]float64{
			"lexical":  0.6,
			"provider": 0.4,
		},
		Tilts: map[socialmodel.Platform]PlatformTilt{
			socialmodel.PlatformTikTok:    {PositiveBoost: 0.10, NegativeBoost: 0.05, DeadZone: 0.05},
			socialmodel.PlatformInstagram: {PositiveBoost: 0.08, NegativeBoost: 0.04, DeadZone: 0.05},
			socialmodel.PlatformFacebook:  {PositiveBoost: 0.02, NegativeBoost: 0.08, DeadZone: 0.07},
			socialmodel.PlatformYouTube:   {PositiveBoost: 0.05, NegativeBoost: 0.10, DeadZone: 0.06},
			socialmodel.PlatformReddit:    {PositiveBoost: 0.00, NegativeBoost: 0.15, DeadZone: 0.08},
			socialmodel.PlatformRSS:       {PositiveBoost: 0.00, NegativeBoost: 0.00, DeadZone: 0.03},
		},
		Aspects: []Aspect{
			{Name: "shipping", Synonyms: []string{"shipping", "delivery", "shipped"}, WindowSize: 40},
			{Name: "price", Synonyms: []string{"price", "pricing", "cost", "expensive", "cheap"}, WindowSize: 40},
			{Name: "support", Synonyms: []string{"support", "service", "customer service"}, WindowSize: 40},
			{Name: "quality", Synonyms: []string{"quality", "build", "material"}, WindowSize: 40},
		},
		LabelThreshold: 0.1,
		ConfidenceTiers: []ConfidenceTier{
			{MinAbsScore: 0.6, Confidence: 0.9},
			{MinAbsScore: 0.3, Confidence: 0.7},
			{MinAbsScore: 0.1, Confidence: 0.5},
			{MinAbsScore: 0.0, Confidence: 0.3},
		},
	}
}
