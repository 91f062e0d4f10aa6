// Package scheduling implements the Scheduling Engine (C8): creating,
// editing, cancelling, and conflict-checking scheduled content, plus bulk
// scheduling and calendar aggregation.
package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/clock"
)

// Engine implements the C8 contract.
type Engine struct {
	repo          Repository
	optimalTiming OptimalTimingService
	notifications NotificationRegistrar
	cfg           Config
	clk           clock.Clock
}

// New builds a Scheduling Engine. notifications may be nil, in which case
// pre-publish notification registration is a no-op.
func New(repo Repository, optimalTiming OptimalTimingService, notifications NotificationRegistrar, cfg Config, clk clock.Clock) *Engine {
	return &Engine{repo: repo, optimalTiming: optimalTiming, notifications: notifications, cfg: cfg, clk: clk}
}

// SchedulingRequest is the input to scheduleContent.
type SchedulingRequest struct {
	BrandID         string
	Title           string
	Content         string
	Platforms       []socialmodel.Platform
	ContentType     string
	ScheduledTime   time.Time
	Timezone        string
	Priority        int
	CampaignID      string
	Tags            []string
	CreatedBy       string
	MaxRetries      int
	PrePublishMinutes *int
	AllowConflicts  bool
}

// ScheduleContent implements spec §4.8 scheduleContent: brand known (left to
// the caller, which loads BrandContext before calling); scheduledTime in
// future; if allowConflicts=false, no high-severity conflict; all platforms
// within limits (covered by the platform-limit detector).
func (e *Engine) ScheduleContent(ctx context.Context, req SchedulingRequest) (socialmodel.ScheduledContent, []socialmodel.SchedulingConflict, error) {
	now := e.clk.Now()
	if !req.ScheduledTime.After(now) {
		return socialmodel.ScheduledContent{}, nil, socialmodel.NewError(socialmodel.KindValidation, "scheduledTime %s is not in the future (now=%s)", req.ScheduledTime, now)
	}
	if len(req.Platforms) == 0 {
		return socialmodel.ScheduledContent{}, nil, socialmodel.NewError(socialmodel.KindValidation, "at least one platform is required")
	}

	content := socialmodel.ScheduledContent{
		ID:                uuid.NewString(),
		BrandID:           req.BrandID,
		Title:             req.Title,
		Content:           req.Content,
		Platforms:         req.Platforms,
		ContentType:       req.ContentType,
		ScheduledTime:     req.ScheduledTime,
		Timezone:          req.Timezone,
		Status:            socialmodel.ScheduleScheduled,
		Priority:          req.Priority,
		CampaignID:        req.CampaignID,
		Tags:              req.Tags,
		CreatedBy:         req.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
		MaxRetries:        req.MaxRetries,
		PrePublishMinutes: req.PrePublishMinutes,
	}

	conflicts, err := e.detectConflicts(ctx, content)
	if err != nil {
		return socialmodel.ScheduledContent{}, nil, err
	}
	if !req.AllowConflicts && hasHighSeverity(conflicts) {
		return socialmodel.ScheduledContent{}, conflicts, socialmodel.NewError(socialmodel.KindConflict, "scheduling would create a high-severity conflict")
	}

	saved, err := e.repo.Create(ctx, content)
	if err != nil {
		return socialmodel.ScheduledContent{}, nil, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to create scheduled content")
	}

	if e.notifications != nil && req.PrePublishMinutes != nil {
		fireAt := saved.ScheduledTime.Add(-time.Duration(*req.PrePublishMinutes) * time.Minute)
		if fireAt.After(now) {
			_ = e.notifications.RegisterPrePublish(ctx, saved.ID, fireAt)
		}
	}

	return saved, conflicts, nil
}

// BulkResult partitions bulkScheduleContent's outcome per spec §4.8.
type BulkResult struct {
	Scheduled []socialmodel.ScheduledContent
	Conflicts []socialmodel.SchedulingConflict
	Failed    []BulkFailure
}

// BulkFailure records one bulk item's per-item error.
type BulkFailure struct {
	Index int
	Err   error
}

// BulkScheduleContent implements spec §4.8 bulkScheduleContent: per-item
// error partitioning, with time assignment by the chosen distribution
// strategy.
func (e *Engine) BulkScheduleContent(ctx context.Context, req BulkRequest) BulkResult {
	result := BulkResult{}

	times, err := e.assignTimes(ctx, req)
	if err != nil {
		for i := range req.Items {
			result.Failed = append(result.Failed, BulkFailure{Index: i, Err: err})
		}
		return result
	}

	for i, item := range req.Items {
		scheduled, conflicts, err := e.ScheduleContent(ctx, SchedulingRequest{
			BrandID:       req.BrandID,
			Title:         item.Title,
			Content:       item.Content,
			Platforms:     item.Platforms,
			ContentType:   item.ContentType,
			ScheduledTime: times[i],
			Timezone:      item.Timezone,
			CampaignID:    item.CampaignID,
			Tags:          item.Tags,
			CreatedBy:     item.CreatedBy,
			AllowConflicts: req.AllowConflicts,
		})
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{Index: i, Err: err})
			continue
		}
		result.Scheduled = append(result.Scheduled, scheduled)
		result.Conflicts = append(result.Conflicts, conflicts...)
	}

	return result
}

// UpdateScheduledContent implements spec §4.8 updateScheduledContent: not
// terminal; no new high-severity conflicts if time changed.
func (e *Engine) UpdateScheduledContent(ctx context.Context, id string, patch func(*socialmodel.ScheduledContent)) (socialmodel.ScheduledContent, []socialmodel.SchedulingConflict, error) {
	existing, ok, err := e.repo.Get(ctx, id)
	if err != nil {
		return socialmodel.ScheduledContent{}, nil, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to load schedule %s", id)
	}
	if !ok {
		return socialmodel.ScheduledContent{}, nil, socialmodel.NewError(socialmodel.KindNotFound, "schedule %s not found", id)
	}
	if existing.Status.Terminal() || existing.Status == socialmodel.SchedulePublishing {
		return socialmodel.ScheduledContent{}, nil, socialmodel.NewError(socialmodel.KindState, "schedule %s is in terminal or in-flight state %s", id, existing.Status)
	}
	if existing.ScheduledTime.Sub(e.clk.Now()) < 5*time.Minute {
		return socialmodel.ScheduledContent{}, nil, socialmodel.NewError(socialmodel.KindState, "schedule %s cannot be edited within 5 minutes of its scheduled time", id)
	}

	previousTime := existing.ScheduledTime
	updated := existing
	patch(&updated)
	updated.UpdatedAt = e.clk.Now()

	var conflicts []socialmodel.SchedulingConflict
	if !updated.ScheduledTime.Equal(previousTime) {
		conflicts, err = e.detectConflicts(ctx, updated)
		if err != nil {
			return socialmodel.ScheduledContent{}, nil, err
		}
		if hasHighSeverity(conflicts) {
			return socialmodel.ScheduledContent{}, conflicts, socialmodel.NewError(socialmodel.KindConflict, "update would create a high-severity conflict")
		}
	}

	saved, err := e.repo.Update(ctx, updated)
	if err != nil {
		return socialmodel.ScheduledContent{}, nil, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to update schedule %s", id)
	}
	return saved, conflicts, nil
}

// CancelScheduledContent implements spec §4.8 cancelScheduledContent:
// forbidden if status ∈ {published, cancelled, publishing}.
func (e *Engine) CancelScheduledContent(ctx context.Context, id, reason string) error {
	existing, ok, err := e.repo.Get(ctx, id)
	if err != nil {
		return socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to load schedule %s", id)
	}
	if !ok {
		return socialmodel.NewError(socialmodel.KindNotFound, "schedule %s not found", id)
	}
	if existing.Status == socialmodel.SchedulePublished || existing.Status == socialmodel.ScheduleCancelled || existing.Status == socialmodel.SchedulePublishing {
		return socialmodel.NewError(socialmodel.KindState, "schedule %s cannot be cancelled from state %s", id, existing.Status)
	}

	existing.Status = socialmodel.ScheduleCancelled
	existing.FailureReason = reason
	existing.UpdatedAt = e.clk.Now()
	if _, err := e.repo.Update(ctx, existing); err != nil {
		return socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to cancel schedule %s", id)
	}
	return nil
}

// CheckSchedulingConflicts implements spec §4.8 checkSchedulingConflicts: a
// deterministic set for fixed inputs.
func (e *Engine) CheckSchedulingConflicts(ctx context.Context, content socialmodel.ScheduledContent) ([]socialmodel.SchedulingConflict, error) {
	return e.detectConflicts(ctx, content)
}

// SuggestOptimalTimes implements spec §4.8 suggestOptimalTimes: top-k
// OptimalPostingTime[] per platform from the collaborator service.
func (e *Engine) SuggestOptimalTimes(ctx context.Context, brandID string, platforms []socialmodel.Platform, contentType string, start, end time.Time, k int) ([]socialmodel.OptimalPostingTime, error) {
	if e.optimalTiming == nil {
		return nil, socialmodel.NewError(socialmodel.KindState, "no optimal timing service configured")
	}
	var all []socialmodel.OptimalPostingTime
	for _, platform := range platforms {
		suggestions, err := e.optimalTiming.SuggestTimes(ctx, brandID, platform, contentType, start, end, k)
		if err != nil {
			return nil, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to suggest optimal times for platform %s", platform)
		}
		all = append(all, suggestions...)
	}
	return all, nil
}

// GetCalendarView implements spec §4.8 getCalendarView.
func (e *Engine) GetCalendarView(ctx context.Context, brandID string, granularity ViewGranularity, start time.Time, tz string) (CalendarView, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	start = start.In(loc)
	end := endDateFor(granularity, start)

	schedules, err := e.repo.ListByTimeRange(ctx, brandID, start, end)
	if err != nil {
		return CalendarView{}, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to list schedules for brand %s", brandID)
	}

	var conflicts []socialmodel.SchedulingConflict
	for _, s := range schedules {
		c, err := e.detectConflicts(ctx, s)
		if err != nil {
			return CalendarView{}, err
		}
		conflicts = append(conflicts, c...)
	}

	limitUsage := make(map[socialmodel.Platform]PlatformLimitUsage, len(e.cfg.PlatformLimits))
	for platform, limit := range e.cfg.PlatformLimits {
		limitUsage[platform] = PlatformLimitUsage{Used: countForPlatform(schedules, platform, ""), Limit: limit.DailyLimit}
	}

	var optimalTimes []socialmodel.OptimalPostingTime
	if e.optimalTiming != nil {
		seen := map[socialmodel.Platform]struct{}{}
		for _, s := range schedules {
			for _, platform := range s.Platforms {
				if _, ok := seen[platform]; ok {
					continue
				}
				seen[platform] = struct{}{}
				suggestions, err := e.optimalTiming.SuggestTimes(ctx, brandID, platform, "", start, end, 3)
				if err == nil {
					optimalTimes = append(optimalTimes, suggestions...)
				}
			}
		}
	}

	return CalendarView{
		BrandID:      brandID,
		Granularity:  granularity,
		Start:        start,
		End:          end,
		Schedules:    schedules,
		Conflicts:    conflicts,
		OptimalTimes: optimalTimes,
		LimitUsage:   limitUsage,
	}, nil
}
