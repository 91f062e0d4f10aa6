package httpapi

import (
	"context"
	"net/http"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/logger"
)

// DecisionEngine is the seam EventsHandler depends on.
type DecisionEngine interface {
	Process(ctx context.Context, event socialmodel.SocialEvent, brand socialmodel.BrandContext) (socialmodel.DecisionEngineResult, error)
}

// AuditRecorder receives a completed decision's audit trail. May be nil.
type AuditRecorder interface {
	Record(ctx context.Context, eventID string, entries []socialmodel.AuditEntry)
}

// TopicsSink receives every accepted event for batched trend/cluster
// detection (C3). May be nil.
type TopicsSink interface {
	Submit(event socialmodel.SocialEvent)
}

// EventsHandler implements POST /v1/events (spec §4.12).
type EventsHandler struct {
	engine   DecisionEngine
	recorder AuditRecorder
	topics   TopicsSink
	log      *logger.Logger
}

// NewEventsHandler builds an EventsHandler. recorder and topics may be nil.
func NewEventsHandler(engine DecisionEngine, recorder AuditRecorder, topicsSink TopicsSink, log *logger.Logger) *EventsHandler {
	return &EventsHandler{engine: engine, recorder: recorder, topics: topicsSink, log: log}
}

type ingestEventRequest struct {
	Event        socialmodel.SocialEvent   `json:"event"`
	BrandContext socialmodel.BrandContext  `json:"brandContext"`
}

// Ingest handles POST /v1/events: runs the event through the Decision
// Engine and returns the canonical DecisionOutput.
func (h *EventsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, socialmodel.Wrap(socialmodel.KindValidation, err, "invalid request body"))
		return
	}
	if req.Event.ID == "" {
		respondError(w, socialmodel.NewError(socialmodel.KindValidation, "event.id is required"))
		return
	}

	result, err := h.engine.Process(r.Context(), req.Event, req.BrandContext)
	if err != nil {
		h.log.WithEventID(req.Event.ID).WithBrandID(req.BrandContext.BrandID).WithError(err).Warn("decision processing failed")
		respondError(w, err)
		return
	}

	if h.recorder != nil && len(result.AuditTrail) > 0 {
		h.recorder.Record(r.Context(), req.Event.ID, result.AuditTrail)
	}
	if h.topics != nil {
		h.topics.Submit(req.Event)
	}

	respondJSON(w, http.StatusOK, result.Output)
}
