package notifications

import (
	"context"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// ScheduleAdapter wraps Service to satisfy the publishing package's
// Notifier seam (internal/publishing/repository.go), translating a
// ScheduledContent + NotificationEvent pair into the envelope Send expects.
type ScheduleAdapter struct {
	svc      *Service
	channels []Channel
}

// NewScheduleAdapter builds a ScheduleAdapter dispatching to the given
// channels for every schedule event.
func NewScheduleAdapter(svc *Service, channels ...Channel) *ScheduleAdapter {
	return &ScheduleAdapter{svc: svc, channels: channels}
}

// Notify implements publishing.Notifier.
func (a *ScheduleAdapter) Notify(ctx context.Context, schedule socialmodel.ScheduledContent, event socialmodel.NotificationEvent) error {
	failed := a.svc.Send(ctx, ScheduleNotification{
		ScheduleID: schedule.ID,
		BrandID:    schedule.BrandID,
		Event:      event,
		Title:      schedule.Title,
		Message:    messageFor(event, schedule),
		Channels:   a.channels,
	})
	if len(failed) == len(a.channels) && len(a.channels) > 0 {
		return socialmodel.NewError(socialmodel.KindTransientUpstream, "all notification channels failed for schedule %s", schedule.ID)
	}
	return nil
}

func messageFor(event socialmodel.NotificationEvent, schedule socialmodel.ScheduledContent) string {
	switch event {
	case socialmodel.NotifyPrePublish:
		return "Scheduled post \"" + schedule.Title + "\" publishes soon."
	case socialmodel.NotifyPublished:
		return "Scheduled post \"" + schedule.Title + "\" has been published."
	case socialmodel.NotifyFailed:
		return "Scheduled post \"" + schedule.Title + "\" failed to publish: " + schedule.FailureReason
	case socialmodel.NotifyCancelled:
		return "Scheduled post \"" + schedule.Title + "\" was cancelled."
	case socialmodel.NotifyEdited:
		return "Scheduled post \"" + schedule.Title + "\" was edited."
	default:
		return "Scheduled post \"" + schedule.Title + "\" updated."
	}
}

// EscalationAdapter wraps Service to satisfy the action package's
// EscalationNotifier seam, routing escalations to Slack/Discord only (no
// recipient email is available at the action layer).
type EscalationAdapter struct {
	svc *Service
}

// NewEscalationAdapter builds an EscalationAdapter.
func NewEscalationAdapter(svc *Service) *EscalationAdapter {
	return &EscalationAdapter{svc: svc}
}

// Notify implements action.EscalationNotifier.
func (a *EscalationAdapter) Notify(ctx context.Context, event socialmodel.SocialEvent, routed socialmodel.RoutedAction) error {
	failed := a.svc.Send(ctx, ScheduleNotification{
		ScheduleID: event.ID,
		Event:      socialmodel.NotifyPrePublish,
		Title:      "Escalation: " + string(routed.Type),
		Message:    "Event " + event.ID + " on " + string(event.Platform) + " escalated for human review.",
		Channels:   []Channel{ChannelSlack, ChannelDiscord},
	})
	if len(failed) == 2 {
		return socialmodel.NewError(socialmodel.KindTransientUpstream, "escalation notification failed for event %s", event.ID)
	}
	return nil
}
