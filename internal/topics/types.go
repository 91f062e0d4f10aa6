package topics

import (
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// Cluster is one group of related events discovered by DBSCAN, enriched
// with keywords, a label, coherence, and platform/time range stats.
type Cluster struct {
	ID         string
	EventIDs   []string
	Keywords   []string
	Label      string
	Coherence  float64
	Platforms  []socialmodel.Platform
	StartTime  time.Time
	EndTime    time.Time
	LastSeen   time.Time
	Centroid   []float64

	// AvgSentiment is the mean Overall.Score (range [-1,1]) across member
	// events whose sentiment the SentimentAggregator could resolve. Zero
	// when the engine has no aggregator or none of the member events
	// resolved, indistinguishable from a genuinely neutral cluster.
	AvgSentiment float64
	// SentimentSamples counts the member events that contributed to
	// AvgSentiment, so callers can tell a neutral cluster from an
	// unscored one.
	SentimentSamples int
}

// Trending is a detected upward-trending cluster/topic.
type Trending struct {
	ClusterID  string
	GrowthRate float64
	EventCount int
	Window     time.Duration
}

// Spike is a detected burst of events sharing a top-3-keyword topic.
type Spike struct {
	Topic     string
	Intensity float64
	Count     int
	DetectedAt time.Time
}

// Result is the full output of one Process call (spec §4.3 contract).
type Result struct {
	Clusters  []Cluster
	Trending  []Trending
	Spikes    []Spike
}

// SentimentAggregator supplies the already-computed SentimentResult for an
// event by ID, so a cluster's AvgSentiment is grounded in real C1 output
// rather than sampled (see DESIGN.md Open Question #2 decision). Cluster
// coherence does not use it.
type SentimentAggregator func(eventID string) (socialmodel.SentimentResult, bool)
