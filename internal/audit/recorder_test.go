package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/logger"
)

type memStorage struct {
	mu    sync.Mutex
	calls []trailBatch
}

func (s *memStorage) Store(ctx context.Context, eventID string, entries []socialmodel.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, trailBatch{eventID: eventID, entries: entries})
	return nil
}

func (s *memStorage) snapshot() []trailBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]trailBatch, len(s.calls))
	copy(out, s.calls)
	return out
}

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	m := <-ch
	var pb dto.Metric
	require.NoError(t, m.Write(&pb))
	if pb.Counter != nil {
		return pb.Counter.GetValue()
	}
	return pb.Gauge.GetValue()
}

func TestRecorderFlushesToStorage(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	storage := &memStorage{}
	r := NewRecorder(logger.New(), storage, metrics)

	r.Record(context.Background(), "event-1", []socialmodel.AuditEntry{
		{Stage: "ingested", Timestamp: time.Now()},
		{Stage: "routed", Timestamp: time.Now(), Details: map[string]string{"route": "auto-reply"}},
		{Stage: "closed", Timestamp: time.Now()},
	})

	require.Eventually(t, func() bool {
		return len(storage.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	batches := storage.snapshot()
	assert.Equal(t, "event-1", batches[0].eventID)
	assert.Len(t, batches[0].entries, 3)
}

func TestMetricsObserveTrailCountsRoutedStage(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	metrics.ObserveTrail([]socialmodel.AuditEntry{
		{Stage: "routed", Details: map[string]string{"route": "escalate"}},
	})
	metrics.ObserveTrail([]socialmodel.AuditEntry{
		{Stage: "timeout"},
	})

	assert.Equal(t, float64(1), counterValue(t, metrics.DecisionsTotal.WithLabelValues("escalate")))
	assert.Equal(t, float64(1), counterValue(t, metrics.DecisionTimeouts))
}

func TestMetricsObserveConflictAndPublishOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	metrics.ObserveConflict("time-overlap", "high")
	metrics.ObservePublishOutcome("instagram", "published")
	metrics.SetCircuitBreakerOpen("instagram", true)

	assert.Equal(t, float64(1), counterValue(t, metrics.SchedulingConflictsTotal.WithLabelValues("time-overlap", "high")))
	assert.Equal(t, float64(1), counterValue(t, metrics.PublishOutcomesTotal.WithLabelValues("instagram", "published")))
	assert.Equal(t, float64(1), counterValue(t, metrics.CircuitBreakerOpen.WithLabelValues("instagram")))
}

func TestRecorderBufferFullFallsBackToDirectWrite(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	storage := &memStorage{}
	r := &Recorder{log: logger.New(), storage: storage, metrics: metrics, buffer: make(chan trailBatch)}

	r.Record(context.Background(), "event-2", []socialmodel.AuditEntry{{Stage: "ingested"}})

	assert.Len(t, storage.snapshot(), 1)
}
