package audit

import (
	"context"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/logger"
)

// Storage persists a decision's audit trail for later querying. Production
// wiring backs it with the same Postgres pool as internal/repository;
// nil is a valid Storage-less configuration (structured log lines only).
type Storage interface {
	Store(ctx context.Context, eventID string, entries []socialmodel.AuditEntry) error
}

type trailBatch struct {
	eventID string
	entries []socialmodel.AuditEntry
}

// Recorder buffers decision audit trails and flushes them to storage in
// batches, falling back to a direct synchronous write (and a warning log)
// when the buffer is full rather than dropping the trail.
type Recorder struct {
	log     *logger.Logger
	storage Storage
	metrics *Metrics
	buffer  chan trailBatch
}

// NewRecorder builds a Recorder and starts its background flush loop.
// storage and metrics may be nil.
func NewRecorder(log *logger.Logger, storage Storage, metrics *Metrics) *Recorder {
	r := &Recorder{
		log:     log,
		storage: storage,
		metrics: metrics,
		buffer:  make(chan trailBatch, 10000),
	}
	go r.run()
	return r
}

// Record enqueues one decision's audit trail for persistence and updates
// metrics synchronously (metrics are cheap; storage writes are batched).
func (r *Recorder) Record(ctx context.Context, eventID string, entries []socialmodel.AuditEntry) {
	if r.metrics != nil {
		r.metrics.ObserveTrail(entries)
	}
	select {
	case r.buffer <- trailBatch{eventID: eventID, entries: entries}:
	default:
		r.log.Warnw("audit buffer full, writing directly", "event_id", eventID)
		if r.storage != nil {
			if err := r.storage.Store(ctx, eventID, entries); err != nil {
				r.log.Errorw("failed to store audit trail", "error", err, "event_id", eventID)
			}
		}
	}
}

func (r *Recorder) run() {
	batch := make([]trailBatch, 0, 100)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case b := <-r.buffer:
			batch = append(batch, b)
			if len(batch) >= 100 {
				r.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				r.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (r *Recorder) flush(batch []trailBatch) {
	ctx := context.Background()
	for _, b := range batch {
		if r.storage != nil {
			if err := r.storage.Store(ctx, b.eventID, b.entries); err != nil {
				r.log.Errorw("failed to store audit trail", "error", err, "event_id", b.eventID)
			}
		}
		r.log.Infow("decision audit trail", "event_id", b.eventID, "stages", len(b.entries))
	}
}
