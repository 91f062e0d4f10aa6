package topics

import "time"

// Config holds the DBSCAN and trend/spike tuning knobs (spec §4.3). Like
// the sentiment package's Config, these are domain-internal algorithm
// constants rather than operator-facing knobs from §6.
type Config struct {
	Epsilon        float64
	MinPoints      int
	Metric         Metric
	MergeThreshold float64 // similarity above which a new cluster merges into an existing one

	TrendWindow        time.Duration
	TrendGrowthThreshold float64
	TrendMinEvents     int

	BaselineWindow    time.Duration
	SpikeIntensityThreshold float64
	SpikeMinEvents    int

	ClusterStaleAfter time.Duration // drop clusters unchanged longer than this
	SpikeStaleAfter   time.Duration
	TopKeywords       int
}

// DefaultConfig returns the baseline tuning used when no overrides are
// supplied.
func DefaultConfig() Config {
	return Config{
		Epsilon:        0.35,
		MinPoints:      3,
		Metric:         MetricCosine,
		MergeThreshold: 0.7,

		TrendWindow:          2 * time.Hour,
		TrendGrowthThreshold: 0.5,
		TrendMinEvents:       5,

		BaselineWindow:          24 * time.Hour,
		SpikeIntensityThreshold: 3.0,
		SpikeMinEvents:          5,

		ClusterStaleAfter: 24 * time.Hour,
		SpikeStaleAfter:   6 * time.Hour,
		TopKeywords:       5,
	}
}

// eventWindow is the retained history window: 2x the larger of trend/
// baseline windows, per the spec's eviction rule.
func (c Config) eventWindow() time.Duration {
	w := c.TrendWindow
	if c.BaselineWindow > w {
		w = c.BaselineWindow
	}
	return 2 * w
}
