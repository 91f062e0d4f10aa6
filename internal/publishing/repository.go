package publishing

import (
	"context"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// Repository is the C10 PublishingRepository contract: status updates,
// due-for-publishing, due-for-notification. The transition from scheduled to
// publishing must be a compare-and-swap so two workers racing on the same
// schedule cannot both pick it up (spec §4.9 step 1, §5 "CAS on status").
type Repository interface {
	DueForPublishing(ctx context.Context, now time.Time, limit int) ([]socialmodel.ScheduledContent, error)
	DueForNotification(ctx context.Context, now time.Time, limit int) ([]ScheduledNotification, error)

	TryClaim(ctx context.Context, id string, expectedStatus, newStatus socialmodel.ScheduleStatus) (bool, error)
	// UpdateOutcome persists the result of one dispatch attempt. nextAttempt
	// is non-nil only when the schedule is being reverted to "scheduled" for
	// a backoff retry (spec §4.9 step 4); it sets the new ScheduledTime.
	UpdateOutcome(ctx context.Context, id string, status socialmodel.ScheduleStatus, outcomes []socialmodel.PlatformOutcome, failureReason string, retryCount int, nextAttempt *time.Time) error
	MarkNotificationSent(ctx context.Context, id string, sent socialmodel.SentNotification) error
	RegisterPrePublish(ctx context.Context, scheduleID string, fireAt time.Time) error
}

// ScheduledNotification is one pre-publish (or other) notification due to
// fire, paired with the schedule it belongs to.
type ScheduledNotification struct {
	Schedule socialmodel.ScheduledContent
	Event    socialmodel.NotificationEvent
	FireAt   time.Time
}

// Publisher posts one piece of content to one platform and reports the
// resulting outcome. Transient failures must be returned with
// socialmodel.KindTransientUpstream so the dispatcher knows to retry;
// content-validation failures are terminal (spec §4.9 step 2).
type Publisher interface {
	Publish(ctx context.Context, content socialmodel.ScheduledContent, platform socialmodel.Platform) (socialmodel.PlatformOutcome, error)
	ValidateContent(ctx context.Context, content socialmodel.ScheduledContent, platform socialmodel.Platform) error
}

// Notifier emits a notification for one schedule event. It mirrors
// notifications.Service.Send without importing it directly, keeping
// internal/publishing a leaf package.
type Notifier interface {
	Notify(ctx context.Context, schedule socialmodel.ScheduledContent, event socialmodel.NotificationEvent) error
}
