package main

import (
	"context"
	"sync"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/internal/topics"
	"github.com/socialpulse/engine/pkg/clock"
	"github.com/socialpulse/engine/pkg/logger"
)

// topicsBatcher feeds ingested events to the Topic/Trend Engine (C3) in
// batches: the engine's DBSCAN clustering and trend/spike detection (spec
// §4.3) operate over a window of events rather than one at a time, so the
// HTTP-facing decision path only submits events here instead of calling
// Process synchronously per request.
type topicsBatcher struct {
	engine *topics.Engine
	clk    clock.Clock
	log    *logger.Logger

	mu      sync.Mutex
	pending []socialmodel.SocialEvent
}

func newTopicsBatcher(engine *topics.Engine, clk clock.Clock, log *logger.Logger) *topicsBatcher {
	return &topicsBatcher{engine: engine, clk: clk, log: log}
}

// Submit queues an event for the next batch. Never blocks the request path.
func (b *topicsBatcher) Submit(event socialmodel.SocialEvent) {
	b.mu.Lock()
	b.pending = append(b.pending, event)
	b.mu.Unlock()
}

// Run drains the pending batch on a fixed interval until ctx is cancelled.
func (b *topicsBatcher) Run(ctx context.Context, interval time.Duration) {
	ticker := b.clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.flush()
		}
	}
}

func (b *topicsBatcher) flush() {
	b.mu.Lock()
	batch := b.pending
	b.pending = nil
	b.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	result := b.engine.Process(b.clk.Now(), batch)
	b.log.Infow("topic batch processed",
		"events", len(batch),
		"clusters", len(result.Clusters),
		"trending", len(result.Trending),
		"spikes", len(result.Spikes),
	)
}
