package topics

import (
	"strings"
	"time"
)

// detectSpikes groups recent events (within BaselineWindow's most recent
// slice, taken here as the trend window) by their top-3-keyword topic,
// compares against a rolling per-topic baseline, and flags a spike when
// intensity (current/baseline) crosses the threshold and the group is
// large enough.
func (e *Engine) detectSpikes(now time.Time) []Spike {
	recentCutoff := now.Add(-e.cfg.TrendWindow)
	baselineCutoff := now.Add(-e.cfg.BaselineWindow)

	topicCountsRecent := map[string]int{}
	topicCountsBaseline := map[string]int{}

	for _, evt := range e.history {
		topic := topTopicFor(evt.Content.Text)
		if topic == "" {
			continue
		}
		if evt.Timestamp.After(recentCutoff) {
			topicCountsRecent[topic]++
		}
		if evt.Timestamp.After(baselineCutoff) {
			topicCountsBaseline[topic]++
		}
	}

	var spikes []Spike
	for topic, current := range topicCountsRecent {
		if current < e.cfg.SpikeMinEvents {
			continue
		}

		baseline := e.keywordBaseline[topic]
		if baseline == 0 {
			baseline = float64(topicCountsBaseline[topic]) / 2
		}
		if baseline <= 0 {
			baseline = 1
		}

		intensity := float64(current) / baseline
		if intensity >= e.cfg.SpikeIntensityThreshold {
			spikes = append(spikes, Spike{
				Topic:      topic,
				Intensity:  intensity,
				Count:      current,
				DetectedAt: now,
			})
		}

		e.keywordBaseline[topic] = (baseline + float64(topicCountsBaseline[topic])) / 2
	}

	return spikes
}

// topTopicFor returns the top-3-keyword topic label for a single event's
// text, used to group events for spike detection (spec §4.3: "group
// recent events by top-3-keyword topic").
func topTopicFor(text string) string {
	freq := map[string]int{}
	for _, tok := range tokenize(text) {
		freq[tok]++
	}
	if len(freq) == 0 {
		return ""
	}
	top := topKeywords(freq, 3)
	return strings.Join(top, ",")
}
