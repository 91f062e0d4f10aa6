package topics

import (
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// detectTrending flags clusters whose event count grew faster than
// TrendGrowthThreshold within the rolling TrendWindow and which have at
// least TrendMinEvents total.
func (e *Engine) detectTrending(now time.Time) []Trending {
	var trending []Trending
	cutoff := now.Add(-e.cfg.TrendWindow)
	midpoint := now.Add(-e.cfg.TrendWindow / 2)

	for _, c := range e.clusters {
		total := len(c.EventIDs)
		if total < e.cfg.TrendMinEvents {
			continue
		}

		recentHalf := 0
		olderHalf := 0
		for _, id := range c.EventIDs {
			evt, ok := e.findEvent(id)
			if !ok {
				continue
			}
			if evt.Timestamp.Before(cutoff) {
				continue
			}
			if evt.Timestamp.After(midpoint) {
				recentHalf++
			} else {
				olderHalf++
			}
		}
		if olderHalf == 0 {
			if recentHalf >= e.cfg.TrendMinEvents {
				trending = append(trending, Trending{
					ClusterID:  c.ID,
					GrowthRate: float64(recentHalf),
					EventCount: total,
					Window:     e.cfg.TrendWindow,
				})
			}
			continue
		}

		growth := (float64(recentHalf) - float64(olderHalf)) / float64(olderHalf)
		if growth > e.cfg.TrendGrowthThreshold {
			trending = append(trending, Trending{
				ClusterID:  c.ID,
				GrowthRate: growth,
				EventCount: total,
				Window:     e.cfg.TrendWindow,
			})
		}
	}

	return trending
}

func (e *Engine) findEvent(id string) (socialmodel.SocialEvent, bool) {
	for _, evt := range e.history {
		if evt.ID == id {
			return evt, true
		}
	}
	return socialmodel.SocialEvent{}, false
}
