package scheduling

import "github.com/socialpulse/engine/internal/socialmodel"

// PlatformLimit mirrors config.PlatformLimit. Leaf packages keep their own
// copy rather than importing internal/config, so the dependency graph stays
// one-directional; main wires the concrete values in at construction time.
type PlatformLimit struct {
	DailyLimit         int
	HourlyLimit        int
	MinIntervalMinutes int
}

// Config holds every knob the scheduling engine's conflict detectors and
// distribution strategies need (spec §4.8).
type Config struct {
	PlatformLimits map[socialmodel.Platform]PlatformLimit

	TimeOverlapMediumWindowMinutes int
	TimeOverlapHighWindowMinutes   int
	ContentSimilarityWindowDays    int
	ContentSimilarityTitleJaccard  float64
	ContentSimilarityHashtagJaccard float64
	CampaignWindowMinutes          int
}

func DefaultConfig() Config {
	limits := make(map[socialmodel.Platform]PlatformLimit, len(socialmodel.Platforms))
	for _, p := range socialmodel.Platforms {
		limits[p] = PlatformLimit{DailyLimit: 20, HourlyLimit: 5, MinIntervalMinutes: 10}
	}
	return Config{
		PlatformLimits:                  limits,
		TimeOverlapMediumWindowMinutes:  30,
		TimeOverlapHighWindowMinutes:    15,
		ContentSimilarityWindowDays:     7,
		ContentSimilarityTitleJaccard:   0.7,
		ContentSimilarityHashtagJaccard: 0.8,
		CampaignWindowMinutes:           120,
	}
}
