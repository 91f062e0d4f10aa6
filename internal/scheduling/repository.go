package scheduling

import (
	"context"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// Filter narrows ListByFilter to a brand's schedules, optionally by status
// and/or platform.
type Filter struct {
	BrandID  string
	Status   *socialmodel.ScheduleStatus
	Platform *socialmodel.Platform
}

// Repository is the C10 SchedulingRepository contract: create/update/delete/
// get/list by filter/list by time range/list conflicting. The repository
// must return ListConflicting results ordered by ScheduledTime then ID (spec
// §4.8: "the repository must return a deterministic ordering").
type Repository interface {
	Create(ctx context.Context, content socialmodel.ScheduledContent) (socialmodel.ScheduledContent, error)
	Update(ctx context.Context, content socialmodel.ScheduledContent) (socialmodel.ScheduledContent, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (socialmodel.ScheduledContent, bool, error)
	ListByFilter(ctx context.Context, filter Filter) ([]socialmodel.ScheduledContent, error)
	ListByTimeRange(ctx context.Context, brandID string, start, end time.Time) ([]socialmodel.ScheduledContent, error)
	ListConflicting(ctx context.Context, brandID string, platforms []socialmodel.Platform, around time.Time, window time.Duration) ([]socialmodel.ScheduledContent, error)
}

// NotificationRegistrar lets the scheduling engine register a pre-publish
// notification at schedule-creation time (spec §4.9 "Pre-publish
// notifications": registered for scheduledTime - k*min, only if still in
// the future). Implemented by the publishing repository; optional.
type NotificationRegistrar interface {
	RegisterPrePublish(ctx context.Context, scheduleID string, fireAt time.Time) error
}

// OptimalTimingService is the collaborator that ranks posting times for a
// (brand, platform, contentType) combination. It is out of scope to
// implement (spec §1 lists ML-driven recommendation as a collaborator); the
// engine only consumes its ranked output.
type OptimalTimingService interface {
	SuggestTimes(ctx context.Context, brandID string, platform socialmodel.Platform, contentType string, start, end time.Time, k int) ([]socialmodel.OptimalPostingTime, error)
}
