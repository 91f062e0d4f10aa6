package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/socialpulse/engine/internal/publishing"
	"github.com/socialpulse/engine/internal/socialmodel"
)

// PublishingRepository is the Postgres-backed implementation of
// publishing.Repository. It shares the scheduled_content table with
// SchedulingRepository but only ever mutates the columns the Publishing
// Manager owns: status, retry_count, failure_reason, outcomes (spec §4.9's
// ownership split).
type PublishingRepository struct {
	db *PostgresDB
}

// NewPublishingRepository builds a PublishingRepository over db.
func NewPublishingRepository(db *PostgresDB) *PublishingRepository {
	return &PublishingRepository{db: db}
}

var _ publishing.Repository = (*PublishingRepository)(nil)

func (r *PublishingRepository) DueForPublishing(ctx context.Context, now time.Time, limit int) ([]socialmodel.ScheduledContent, error) {
	query := scheduledContentSelect + `
		WHERE status = $1 AND scheduled_time <= $2
		ORDER BY scheduled_time, id
		LIMIT $3
	`
	rows, err := r.db.pool.Query(ctx, query, socialmodel.ScheduleScheduled, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScheduledContentRows(rows)
}

func (r *PublishingRepository) DueForNotification(ctx context.Context, now time.Time, limit int) ([]publishing.ScheduledNotification, error) {
	query := `
		SELECT n.schedule_id, n.event, n.fire_at
		FROM schedule_notifications n
		WHERE n.sent = false AND n.fire_at <= $1
		ORDER BY n.fire_at
		LIMIT $2
	`
	rows, err := r.db.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []publishing.ScheduledNotification
	for rows.Next() {
		var scheduleID string
		var event socialmodel.NotificationEvent
		var fireAt time.Time
		if err := rows.Scan(&scheduleID, &event, &fireAt); err != nil {
			return nil, err
		}
		schedule, ok, err := r.getByID(ctx, scheduleID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, publishing.ScheduledNotification{Schedule: schedule, Event: event, FireAt: fireAt})
	}
	return out, rows.Err()
}

// TryClaim performs the scheduled->publishing compare-and-swap atomically in
// SQL, so two dispatcher workers racing the same row cannot both win (spec
// §4.9 step 1, §5 "CAS on status").
func (r *PublishingRepository) TryClaim(ctx context.Context, id string, expectedStatus, newStatus socialmodel.ScheduleStatus) (bool, error) {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE scheduled_content SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`, id, expectedStatus, newStatus)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PublishingRepository) UpdateOutcome(ctx context.Context, id string, status socialmodel.ScheduleStatus, outcomes []socialmodel.PlatformOutcome, failureReason string, retryCount int, nextAttempt *time.Time) error {
	outcomesRaw, err := json.Marshal(outcomes)
	if err != nil {
		return err
	}
	scheduledTime := nextAttempt

	query := `
		UPDATE scheduled_content SET
			status = $2, outcomes = $3, failure_reason = $4, retry_count = $5,
			scheduled_time = COALESCE($6, scheduled_time), updated_at = now()
		WHERE id = $1
	`
	_, err = r.db.pool.Exec(ctx, query, id, status, outcomesRaw, failureReason, retryCount, scheduledTime)
	return err
}

func (r *PublishingRepository) MarkNotificationSent(ctx context.Context, id string, sent socialmodel.SentNotification) error {
	_, err := r.db.pool.Exec(ctx, `
		UPDATE schedule_notifications SET sent = true, sent_at = $3
		WHERE schedule_id = $1 AND event = $2 AND sent = false
	`, id, sent.Type, sent.SentAt)
	return err
}

func (r *PublishingRepository) RegisterPrePublish(ctx context.Context, scheduleID string, fireAt time.Time) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO schedule_notifications (schedule_id, event, fire_at, sent)
		VALUES ($1, 'pre_publish', $2, false)
	`, scheduleID, fireAt)
	return err
}

func (r *PublishingRepository) getByID(ctx context.Context, id string) (socialmodel.ScheduledContent, bool, error) {
	row := r.db.pool.QueryRow(ctx, scheduledContentSelect+` WHERE id = $1`, id)
	content, err := scanScheduledContent(row)
	if err == pgx.ErrNoRows {
		return socialmodel.ScheduledContent{}, false, nil
	}
	if err != nil {
		return socialmodel.ScheduledContent{}, false, err
	}
	return content, true, nil
}
