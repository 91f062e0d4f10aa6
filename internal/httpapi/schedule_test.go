package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/engine/internal/scheduling"
	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/logger"
)

type stubSchedulingEngine struct {
	scheduled socialmodel.ScheduledContent
	conflicts []socialmodel.SchedulingConflict
	err       error

	calendar    scheduling.CalendarView
	calendarErr error

	bulkResult scheduling.BulkResult

	cancelErr error

	lastPatch func(*socialmodel.ScheduledContent)
}

func (s *stubSchedulingEngine) ScheduleContent(ctx context.Context, req scheduling.SchedulingRequest) (socialmodel.ScheduledContent, []socialmodel.SchedulingConflict, error) {
	return s.scheduled, s.conflicts, s.err
}

func (s *stubSchedulingEngine) BulkScheduleContent(ctx context.Context, req scheduling.BulkRequest) scheduling.BulkResult {
	return s.bulkResult
}

func (s *stubSchedulingEngine) UpdateScheduledContent(ctx context.Context, id string, patch func(*socialmodel.ScheduledContent)) (socialmodel.ScheduledContent, []socialmodel.SchedulingConflict, error) {
	s.lastPatch = patch
	updated := s.scheduled
	if patch != nil {
		patch(&updated)
	}
	return updated, s.conflicts, s.err
}

func (s *stubSchedulingEngine) CancelScheduledContent(ctx context.Context, id, reason string) error {
	return s.cancelErr
}

func (s *stubSchedulingEngine) GetCalendarView(ctx context.Context, brandID string, granularity scheduling.ViewGranularity, start time.Time, tz string) (scheduling.CalendarView, error) {
	return s.calendar, s.calendarErr
}

func TestScheduleHandlerCreateSuccess(t *testing.T) {
	engine := &stubSchedulingEngine{scheduled: socialmodel.ScheduledContent{ID: "sched-1", BrandID: "brand-1"}}
	h := NewScheduleHandler(engine, logger.New())

	body, _ := json.Marshal(createScheduleRequest{
		BrandID:       "brand-1",
		Title:         "launch",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformTikTok},
		ScheduledTime: time.Now().Add(time.Hour),
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/schedule", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sched-1", resp.Schedule.ID)
}

func TestScheduleHandlerCreateConflict(t *testing.T) {
	engine := &stubSchedulingEngine{
		err:       socialmodel.NewError(socialmodel.KindConflict, "high severity conflict"),
		conflicts: []socialmodel.SchedulingConflict{{Type: socialmodel.ConflictPlatformLimit}},
	}
	h := NewScheduleHandler(engine, logger.New())

	body, _ := json.Marshal(createScheduleRequest{BrandID: "brand-1"})
	req := httptest.NewRequest(http.MethodPost, "/v1/schedule", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestScheduleHandlerUpdateAppliesPatch(t *testing.T) {
	engine := &stubSchedulingEngine{scheduled: socialmodel.ScheduledContent{ID: "sched-1", Title: "old"}}
	h := NewScheduleHandler(engine, logger.New())

	newTitle := "new"
	body, _ := json.Marshal(updateScheduleRequest{Title: &newTitle})
	req := httptest.NewRequest(http.MethodPatch, "/v1/schedule/sched-1", bytes.NewReader(body))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "sched-1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	h.Update(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp scheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new", resp.Schedule.Title)
}

func TestScheduleHandlerCancel(t *testing.T) {
	engine := &stubSchedulingEngine{}
	h := NewScheduleHandler(engine, logger.New())

	body, _ := json.Marshal(cancelScheduleRequest{Reason: "duplicate"})
	req := httptest.NewRequest(http.MethodDelete, "/v1/schedule/sched-1", bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "sched-1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	h.Cancel(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleHandlerCalendarRequiresBrandID(t *testing.T) {
	h := NewScheduleHandler(&stubSchedulingEngine{}, logger.New())

	req := httptest.NewRequest(http.MethodGet, "/v1/schedule/calendar?start=2026-08-01T00:00:00Z", nil)
	w := httptest.NewRecorder()

	h.Calendar(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerCalendarSuccess(t *testing.T) {
	engine := &stubSchedulingEngine{calendar: scheduling.CalendarView{BrandID: "brand-1"}}
	h := NewScheduleHandler(engine, logger.New())

	req := httptest.NewRequest(http.MethodGet, "/v1/schedule/calendar?brandId=brand-1&granularity=week&start=2026-08-01T00:00:00Z&tz=UTC", nil)
	w := httptest.NewRecorder()

	h.Calendar(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp scheduling.CalendarView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "brand-1", resp.BrandID)
}

func TestScheduleHandlerBulk(t *testing.T) {
	engine := &stubSchedulingEngine{bulkResult: scheduling.BulkResult{
		Scheduled: []socialmodel.ScheduledContent{{ID: "sched-1"}, {ID: "sched-2"}},
	}}
	h := NewScheduleHandler(engine, logger.New())

	body, _ := json.Marshal(bulkScheduleRequest{
		BrandID:  "brand-1",
		Strategy: scheduling.DistributionEven,
		Items: []scheduling.BulkItem{
			{Title: "a"}, {Title: "b"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/schedule/bulk", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Bulk(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp scheduling.BulkResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Scheduled, 2)
}
