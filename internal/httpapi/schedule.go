package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/socialpulse/engine/internal/scheduling"
	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/logger"
)

// SchedulingEngine is the seam ScheduleHandler depends on.
type SchedulingEngine interface {
	ScheduleContent(ctx context.Context, req scheduling.SchedulingRequest) (socialmodel.ScheduledContent, []socialmodel.SchedulingConflict, error)
	BulkScheduleContent(ctx context.Context, req scheduling.BulkRequest) scheduling.BulkResult
	UpdateScheduledContent(ctx context.Context, id string, patch func(*socialmodel.ScheduledContent)) (socialmodel.ScheduledContent, []socialmodel.SchedulingConflict, error)
	CancelScheduledContent(ctx context.Context, id, reason string) error
	GetCalendarView(ctx context.Context, brandID string, granularity scheduling.ViewGranularity, start time.Time, tz string) (scheduling.CalendarView, error)
}

// ScheduleHandler implements the scheduling endpoints of spec §4.12.
type ScheduleHandler struct {
	engine SchedulingEngine
	log    *logger.Logger
}

// NewScheduleHandler builds a ScheduleHandler.
func NewScheduleHandler(engine SchedulingEngine, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{engine: engine, log: log}
}

type scheduleResponse struct {
	Schedule  socialmodel.ScheduledContent      `json:"schedule"`
	Conflicts []socialmodel.SchedulingConflict `json:"conflicts,omitempty"`
}

type createScheduleRequest struct {
	BrandID           string                 `json:"brandId"`
	Title             string                 `json:"title"`
	Content           string                 `json:"content"`
	Platforms         []socialmodel.Platform `json:"platforms"`
	ContentType       string                 `json:"contentType"`
	ScheduledTime     time.Time              `json:"scheduledTime"`
	Timezone          string                 `json:"timezone"`
	Priority          int                    `json:"priority"`
	CampaignID        string                 `json:"campaignId,omitempty"`
	Tags              []string               `json:"tags,omitempty"`
	CreatedBy         string                 `json:"createdBy"`
	MaxRetries        int                    `json:"maxRetries"`
	PrePublishMinutes *int                   `json:"prePublishMinutes,omitempty"`
	AllowConflicts    bool                   `json:"allowConflicts"`
}

// Create handles POST /v1/schedule.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, socialmodel.Wrap(socialmodel.KindValidation, err, "invalid request body"))
		return
	}

	scheduled, conflicts, err := h.engine.ScheduleContent(r.Context(), scheduling.SchedulingRequest{
		BrandID:           req.BrandID,
		Title:             req.Title,
		Content:           req.Content,
		Platforms:         req.Platforms,
		ContentType:       req.ContentType,
		ScheduledTime:     req.ScheduledTime,
		Timezone:          req.Timezone,
		Priority:          req.Priority,
		CampaignID:        req.CampaignID,
		Tags:              req.Tags,
		CreatedBy:         req.CreatedBy,
		MaxRetries:        req.MaxRetries,
		PrePublishMinutes: req.PrePublishMinutes,
		AllowConflicts:    req.AllowConflicts,
	})
	if err != nil {
		respondJSON(w, statusFor(err), scheduleResponse{Schedule: scheduled, Conflicts: conflicts})
		return
	}
	respondJSON(w, http.StatusCreated, scheduleResponse{Schedule: scheduled, Conflicts: conflicts})
}

type updateScheduleRequest struct {
	Title         *string                `json:"title,omitempty"`
	Content       *string                `json:"content,omitempty"`
	Platforms     []socialmodel.Platform `json:"platforms,omitempty"`
	ScheduledTime *time.Time             `json:"scheduledTime,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
}

// Update handles PATCH /v1/schedule/{id}.
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, socialmodel.Wrap(socialmodel.KindValidation, err, "invalid request body"))
		return
	}

	updated, conflicts, err := h.engine.UpdateScheduledContent(r.Context(), id, func(c *socialmodel.ScheduledContent) {
		if req.Title != nil {
			c.Title = *req.Title
		}
		if req.Content != nil {
			c.Content = *req.Content
		}
		if req.Platforms != nil {
			c.Platforms = req.Platforms
		}
		if req.ScheduledTime != nil {
			c.ScheduledTime = *req.ScheduledTime
		}
		if req.Tags != nil {
			c.Tags = req.Tags
		}
	})
	if err != nil {
		respondJSON(w, statusFor(err), scheduleResponse{Schedule: updated, Conflicts: conflicts})
		return
	}
	respondJSON(w, http.StatusOK, scheduleResponse{Schedule: updated, Conflicts: conflicts})
}

type cancelScheduleRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles DELETE /v1/schedule/{id}.
func (h *ScheduleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req cancelScheduleRequest
	_ = decodeJSON(r, &req)

	if err := h.engine.CancelScheduledContent(r.Context(), id, req.Reason); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

type bulkScheduleRequest struct {
	BrandID        string                          `json:"brandId"`
	Items          []scheduling.BulkItem           `json:"items"`
	Strategy       scheduling.DistributionStrategy `json:"strategy"`
	RangeStart     time.Time                       `json:"rangeStart"`
	RangeEnd       time.Time                       `json:"rangeEnd"`
	AllowConflicts bool                            `json:"allowConflicts"`
}

// Bulk handles POST /v1/schedule/bulk.
func (h *ScheduleHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, socialmodel.Wrap(socialmodel.KindValidation, err, "invalid request body"))
		return
	}

	result := h.engine.BulkScheduleContent(r.Context(), scheduling.BulkRequest{
		BrandID:        req.BrandID,
		Items:          req.Items,
		Strategy:       req.Strategy,
		RangeStart:     req.RangeStart,
		RangeEnd:       req.RangeEnd,
		AllowConflicts: req.AllowConflicts,
	})
	respondJSON(w, http.StatusOK, result)
}

// Calendar handles GET /v1/schedule/calendar.
func (h *ScheduleHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	brandID := q.Get("brandId")
	if brandID == "" {
		respondError(w, socialmodel.NewError(socialmodel.KindValidation, "brandId query parameter is required"))
		return
	}
	granularity := scheduling.ViewGranularity(q.Get("granularity"))
	tz := q.Get("tz")
	if tz == "" {
		tz = "UTC"
	}
	start, err := time.Parse(time.RFC3339, q.Get("start"))
	if err != nil {
		respondError(w, socialmodel.Wrap(socialmodel.KindValidation, err, "invalid start query parameter"))
		return
	}

	view, err := h.engine.GetCalendarView(r.Context(), brandID, granularity, start, tz)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
