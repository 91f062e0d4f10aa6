package topics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// Engine is the stateful topic/trend engine (C3). It retains a rolling
// history of events and previously discovered clusters/spikes across calls
// to Process, guarded by its own lock (spec §5 lock ordering: cluster state
// is locked last, never while holding cache/metrics/active-set locks).
type Engine struct {
	mu         sync.Mutex
	cfg        Config
	vectorizer *Vectorizer
	sentiments SentimentAggregator

	history  []socialmodel.SocialEvent
	clusters []Cluster
	spikes   []Spike

	keywordBaseline map[string]float64 // topic -> baseline event count
}

// NewEngine builds a topic engine. sentiments may be nil; when absent,
// every cluster's AvgSentiment and SentimentSamples stay zero. Coherence is
// computed from text similarity only, with or without sentiments.
func NewEngine(cfg Config, vectorizer *Vectorizer, sentiments SentimentAggregator) *Engine {
	return &Engine{
		cfg:             cfg,
		vectorizer:      vectorizer,
		sentiments:      sentiments,
		keywordBaseline: map[string]float64{},
	}
}

// Process ingests a batch of new events, reclusters the retained history,
// merges with existing clusters, computes trending/spikes, and evicts stale
// state. now is supplied by the caller's injected clock.
func (e *Engine) Process(now time.Time, batch []socialmodel.SocialEvent) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history = append(e.history, batch...)
	e.evict(now)

	vectors := make([][]float64, len(e.history))
	for i, evt := range e.history {
		vectors[i] = e.vectorizer.Vectorize(evt)
	}

	labels, clusterCount := dbscan(vectors, e.cfg.Epsilon, e.cfg.MinPoints, e.cfg.Metric)

	freshClusters := e.buildClusters(now, labels, clusterCount, vectors)
	e.mergeClusters(freshClusters)

	trending := e.detectTrending(now)
	spikes := e.detectSpikes(now)
	e.spikes = spikes

	return Result{
		Clusters: append([]Cluster{}, e.clusters...),
		Trending: trending,
		Spikes:   append([]Spike{}, e.spikes...),
	}
}

func (e *Engine) evict(now time.Time) {
	window := e.cfg.eventWindow()
	kept := e.history[:0]
	for _, evt := range e.history {
		if now.Sub(evt.Timestamp) <= window {
			kept = append(kept, evt)
		}
	}
	e.history = kept

	var keptClusters []Cluster
	for _, c := range e.clusters {
		if now.Sub(c.LastSeen) <= e.cfg.ClusterStaleAfter {
			keptClusters = append(keptClusters, c)
		}
	}
	e.clusters = keptClusters

	var keptSpikes []Spike
	for _, s := range e.spikes {
		if now.Sub(s.DetectedAt) <= e.cfg.SpikeStaleAfter {
			keptSpikes = append(keptSpikes, s)
		}
	}
	e.spikes = keptSpikes
}

// buildClusters groups history events by DBSCAN label and computes each
// cluster's keywords/label/coherence/platforms/time range.
func (e *Engine) buildClusters(now time.Time, labels []int, clusterCount int, vectors [][]float64) []Cluster {
	groups := make(map[int][]int, clusterCount)
	for i, label := range labels {
		if label < 0 {
			continue
		}
		groups[label] = append(groups[label], i)
	}

	clusters := make([]Cluster, 0, len(groups))
	for label, idxs := range groups {
		clusters = append(clusters, e.summarize(now, label, idxs, vectors))
	}
	return clusters
}

func (e *Engine) summarize(now time.Time, label int, idxs []int, vectors [][]float64) Cluster {
	freq := map[string]int{}
	var platformSet = map[socialmodel.Platform]struct{}{}
	var eventIDs []string
	var texts []string
	start := now
	end := time.Time{}
	var sentimentSum float64
	var sentimentSamples int

	for _, i := range idxs {
		evt := e.history[i]
		eventIDs = append(eventIDs, evt.ID)
		texts = append(texts, evt.Content.Text)
		platformSet[evt.Platform] = struct{}{}
		for _, tok := range tokenize(evt.Content.Text) {
			freq[tok]++
		}
		if evt.Timestamp.Before(start) {
			start = evt.Timestamp
		}
		if evt.Timestamp.After(end) {
			end = evt.Timestamp
		}
		if e.sentiments != nil {
			if sr, ok := e.sentiments(evt.ID); ok {
				sentimentSum += sr.Overall.Score
				sentimentSamples++
			}
		}
	}

	var avgSentiment float64
	if sentimentSamples > 0 {
		avgSentiment = sentimentSum / float64(sentimentSamples)
	}

	keywords := topKeywords(freq, e.cfg.TopKeywords)
	labelStr := strings.Join(firstN(keywords, 3), ", ")

	platforms := make([]socialmodel.Platform, 0, len(platformSet))
	for p := range platformSet {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })

	centroid := centroidOf(idxs, vectors)

	return Cluster{
		ID:               clusterIDFor(eventIDs),
		EventIDs:         eventIDs,
		Keywords:         keywords,
		Label:            labelStr,
		Coherence:        meanPairwiseJaccard(texts),
		Platforms:        platforms,
		StartTime:        start,
		EndTime:          end,
		LastSeen:         now,
		Centroid:         centroid,
		AvgSentiment:     avgSentiment,
		SentimentSamples: sentimentSamples,
	}
}

func centroidOf(idxs []int, vectors [][]float64) []float64 {
	if len(idxs) == 0 {
		return nil
	}
	dim := len(vectors[idxs[0]])
	centroid := make([]float64, dim)
	for _, i := range idxs {
		for d := 0; d < dim; d++ {
			centroid[d] += vectors[i][d]
		}
	}
	for d := range centroid {
		centroid[d] /= float64(len(idxs))
	}
	return centroid
}

func topKeywords(freq map[string]int, k int) []string {
	type kv struct {
		term  string
		count int
	}
	list := make([]kv, 0, len(freq))
	for term, count := range freq {
		list = append(list, kv{term, count})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].term < list[j].term
	})
	if len(list) > k {
		list = list[:k]
	}
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.term
	}
	return out
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func meanPairwiseJaccard(texts []string) float64 {
	if len(texts) < 2 {
		return 1.0
	}
	var sum float64
	var pairs int
	for i := 0; i < len(texts); i++ {
		for j := i + 1; j < len(texts); j++ {
			sum += 1 - jaccardTokenDistance(texts[i], texts[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 1.0
	}
	return sum / float64(pairs)
}

func clusterIDFor(eventIDs []string) string {
	sorted := append([]string{}, eventIDs...)
	sort.Strings(sorted)
	return "cluster-" + strings.Join(firstN(sorted, 3), "-")
}

// mergeClusters merges each fresh cluster into an existing one when their
// similarity exceeds MergeThreshold (weighted mix of keyword Jaccard,
// centroid cosine similarity, and platform Jaccard); otherwise it is added
// as a new cluster.
func (e *Engine) mergeClusters(fresh []Cluster) {
	for _, fc := range fresh {
		merged := false
		for i, existing := range e.clusters {
			if clusterSimilarity(fc, existing) > e.cfg.MergeThreshold {
				e.clusters[i] = unionCluster(existing, fc)
				merged = true
				break
			}
		}
		if !merged {
			e.clusters = append(e.clusters, fc)
		}
	}
}

func clusterSimilarity(a, b Cluster) float64 {
	keywordSim := jaccardSliceSimilarity(a.Keywords, b.Keywords)
	centroidSim := 1 - cosineDistance(a.Centroid, b.Centroid)
	platformSim := jaccardSliceSimilarity(platformStrings(a.Platforms), platformStrings(b.Platforms))
	return 0.4*keywordSim + 0.4*centroidSim + 0.2*platformSim
}

func platformStrings(ps []socialmodel.Platform) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

func unionCluster(existing, fresh Cluster) Cluster {
	seen := map[string]struct{}{}
	var ids []string
	for _, id := range append(existing.EventIDs, fresh.EventIDs...) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	merged := existing
	merged.EventIDs = ids
	merged.LastSeen = fresh.LastSeen
	if fresh.EndTime.After(merged.EndTime) {
		merged.EndTime = fresh.EndTime
	}
	if fresh.StartTime.Before(merged.StartTime) {
		merged.StartTime = fresh.StartTime
	}

	totalSamples := existing.SentimentSamples + fresh.SentimentSamples
	if totalSamples > 0 {
		merged.AvgSentiment = (existing.AvgSentiment*float64(existing.SentimentSamples) +
			fresh.AvgSentiment*float64(fresh.SentimentSamples)) / float64(totalSamples)
	}
	merged.SentimentSamples = totalSamples

	return merged
}
