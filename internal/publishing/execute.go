package publishing

import (
	"context"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// executeSchedule implements spec §4.9's per-schedule execution. claimed is
// false when another worker had already claimed the schedule; status is
// only meaningful when claimed is true.
func (d *Dispatcher) executeSchedule(ctx context.Context, schedule socialmodel.ScheduledContent) (claimed bool, status socialmodel.ScheduleStatus, err error) {
	claimed, err = d.repo.TryClaim(ctx, schedule.ID, socialmodel.ScheduleScheduled, socialmodel.SchedulePublishing)
	if err != nil {
		return false, "", socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to claim schedule %s", schedule.ID)
	}
	if !claimed {
		return false, "", nil
	}

	outcomes := make([]socialmodel.PlatformOutcome, 0, len(schedule.Platforms))
	for _, platform := range schedule.Platforms {
		outcomes = append(outcomes, d.publishOne(ctx, schedule, platform))
	}

	aggStatus, failureReason := aggregateOutcomes(outcomes)
	now := d.clk.Now()

	if aggStatus == socialmodel.ScheduleFailed && anyRetryable(outcomes) && schedule.RetryCount < schedule.MaxRetries {
		retryCount := schedule.RetryCount + 1
		nextAttempt := now.Add(d.cfg.backoffFor(retryCount))
		if err := d.repo.UpdateOutcome(ctx, schedule.ID, socialmodel.ScheduleScheduled, outcomes, "", retryCount, &nextAttempt); err != nil {
			return true, socialmodel.ScheduleScheduled, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to persist retry for schedule %s", schedule.ID)
		}
		return true, socialmodel.ScheduleScheduled, nil
	}

	if aggStatus == socialmodel.ScheduleFailed && schedule.RetryCount >= schedule.MaxRetries {
		failureReason = "max retries exceeded"
	}

	if err := d.repo.UpdateOutcome(ctx, schedule.ID, aggStatus, outcomes, failureReason, schedule.RetryCount, nil); err != nil {
		return true, aggStatus, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to persist outcome for schedule %s", schedule.ID)
	}

	event := socialmodel.NotifyPublished
	if aggStatus == socialmodel.ScheduleFailed {
		event = socialmodel.NotifyFailed
	}
	if d.notifier != nil {
		_ = d.notifier.Notify(ctx, schedule, event)
	}

	return true, aggStatus, nil
}

func (d *Dispatcher) publishOne(ctx context.Context, schedule socialmodel.ScheduledContent, platform socialmodel.Platform) socialmodel.PlatformOutcome {
	if err := d.publisher.ValidateContent(ctx, schedule, platform); err != nil {
		return socialmodel.PlatformOutcome{
			Platform:     platform,
			Status:       socialmodel.ScheduleFailed,
			ErrorCode:    "VALIDATION_FAILED",
			ErrorMessage: err.Error(),
		}
	}

	outcome, err := d.publisher.Publish(ctx, schedule, platform)
	if err != nil {
		code := "PUBLISH_FAILED"
		if socialmodel.IsKind(err, socialmodel.KindTransientUpstream) {
			code = "TRANSIENT_FAILURE"
		}
		return socialmodel.PlatformOutcome{
			Platform:     platform,
			Status:       socialmodel.ScheduleFailed,
			ErrorCode:    code,
			ErrorMessage: err.Error(),
		}
	}

	outcome.Platform = platform
	outcome.Status = socialmodel.SchedulePublished
	return outcome
}

// aggregateOutcomes implements spec §4.9 step 3: all-success → published;
// all-failed → failed; mixed → published with a partial-success reason.
func aggregateOutcomes(outcomes []socialmodel.PlatformOutcome) (socialmodel.ScheduleStatus, string) {
	if len(outcomes) == 0 {
		return socialmodel.ScheduleFailed, "no platforms to publish to"
	}
	successCount := 0
	for _, o := range outcomes {
		if o.Status == socialmodel.SchedulePublished {
			successCount++
		}
	}
	switch {
	case successCount == len(outcomes):
		return socialmodel.SchedulePublished, ""
	case successCount == 0:
		return socialmodel.ScheduleFailed, "all platforms failed"
	default:
		return socialmodel.SchedulePublished, "Partial publishing success"
	}
}

// anyRetryable reports whether any failed outcome came from a non-content
// (transient) error; content-validation failures never retry (spec §4.9
// step 2: "content errors do not retry").
func anyRetryable(outcomes []socialmodel.PlatformOutcome) bool {
	for _, o := range outcomes {
		if o.Status == socialmodel.ScheduleFailed && o.ErrorCode != "VALIDATION_FAILED" {
			return true
		}
	}
	return false
}

// dispatchPrePublishNotifications sends every due pre-publish notification,
// respecting the §5 ordering guarantee that pre_publish precedes
// published/failed/cancelled for the same schedule (guaranteed here simply
// by running before the publish pass in RunOnce).
func (d *Dispatcher) dispatchPrePublishNotifications(ctx context.Context, due []ScheduledNotification) {
	for _, n := range due {
		if d.notifier == nil {
			continue
		}
		if err := d.notifier.Notify(ctx, n.Schedule, n.Event); err != nil {
			d.log.Warnw("failed to send pre-publish notification", "schedule_id", n.Schedule.ID, "error", err)
			continue
		}
		_ = d.repo.MarkNotificationSent(ctx, n.Schedule.ID, socialmodel.SentNotification{
			Type:   n.Event,
			SentAt: d.clk.Now(),
		})
	}
}
