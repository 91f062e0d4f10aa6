package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/socialpulse/engine/internal/scheduling"
	"github.com/socialpulse/engine/internal/socialmodel"
)

// SchedulingRepository is the Postgres-backed implementation of
// scheduling.Repository.
type SchedulingRepository struct {
	db *PostgresDB
}

// NewSchedulingRepository builds a SchedulingRepository over db.
func NewSchedulingRepository(db *PostgresDB) *SchedulingRepository {
	return &SchedulingRepository{db: db}
}

var _ scheduling.Repository = (*SchedulingRepository)(nil)

func (r *SchedulingRepository) Create(ctx context.Context, content socialmodel.ScheduledContent) (socialmodel.ScheduledContent, error) {
	platforms, err := json.Marshal(content.Platforms)
	if err != nil {
		return socialmodel.ScheduledContent{}, err
	}
	tags, err := json.Marshal(content.Tags)
	if err != nil {
		return socialmodel.ScheduledContent{}, err
	}

	query := `
		INSERT INTO scheduled_content (
			id, brand_id, content_id, title, content, platforms, content_type,
			scheduled_time, timezone, status, priority, campaign_id, tags,
			created_by, created_at, updated_at, retry_count, max_retries,
			pre_publish_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err = r.db.pool.Exec(ctx, query,
		content.ID, content.BrandID, content.ContentID, content.Title, content.Content,
		platforms, content.ContentType, content.ScheduledTime, content.Timezone,
		content.Status, content.Priority, content.CampaignID, tags,
		content.CreatedBy, content.CreatedAt, content.UpdatedAt, content.RetryCount,
		content.MaxRetries, content.PrePublishMinutes,
	)
	if err != nil {
		return socialmodel.ScheduledContent{}, err
	}
	return content, nil
}

func (r *SchedulingRepository) Update(ctx context.Context, content socialmodel.ScheduledContent) (socialmodel.ScheduledContent, error) {
	platforms, err := json.Marshal(content.Platforms)
	if err != nil {
		return socialmodel.ScheduledContent{}, err
	}
	tags, err := json.Marshal(content.Tags)
	if err != nil {
		return socialmodel.ScheduledContent{}, err
	}

	query := `
		UPDATE scheduled_content SET
			title = $2, content = $3, platforms = $4, content_type = $5,
			scheduled_time = $6, timezone = $7, status = $8, priority = $9,
			campaign_id = $10, tags = $11, updated_at = $12, retry_count = $13,
			max_retries = $14, pre_publish_minutes = $15
		WHERE id = $1
	`
	_, err = r.db.pool.Exec(ctx, query,
		content.ID, content.Title, content.Content, platforms, content.ContentType,
		content.ScheduledTime, content.Timezone, content.Status, content.Priority,
		content.CampaignID, tags, content.UpdatedAt, content.RetryCount,
		content.MaxRetries, content.PrePublishMinutes,
	)
	if err != nil {
		return socialmodel.ScheduledContent{}, err
	}
	return content, nil
}

func (r *SchedulingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.pool.Exec(ctx, `DELETE FROM scheduled_content WHERE id = $1`, id)
	return err
}

func (r *SchedulingRepository) Get(ctx context.Context, id string) (socialmodel.ScheduledContent, bool, error) {
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

func (r *SchedulingRepository) ListByFilter(ctx context.Context, filter scheduling.Filter) ([]socialmodel.ScheduledContent, error) {
	query := scheduledContentSelect + ` WHERE brand_id = $1`
	args := []interface{}{filter.BrandID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Platform != nil {
		args = append(args, string(*filter.Platform))
		query += ` AND platforms @> to_jsonb($` + strconv.Itoa(len(args)) + `::text)`
	}
	query += ` ORDER BY scheduled_time, id`

	rows, err := r.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScheduledContentRows(rows)
}

func (r *SchedulingRepository) ListByTimeRange(ctx context.Context, brandID string, start, end time.Time) ([]socialmodel.ScheduledContent, error) {
	query := scheduledContentSelect + ` WHERE brand_id = $1 AND scheduled_time >= $2 AND scheduled_time < $3 ORDER BY scheduled_time, id`
	rows, err := r.db.pool.Query(ctx, query, brandID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScheduledContentRows(rows)
}

// ListConflicting returns every schedule for brandID on one of platforms
// whose scheduled_time falls within window of around, ordered by
// ScheduledTime then ID (spec §4.8: deterministic conflict ordering).
func (r *SchedulingRepository) ListConflicting(ctx context.Context, brandID string, platforms []socialmodel.Platform, around time.Time, window time.Duration) ([]socialmodel.ScheduledContent, error) {
	platformNames := make([]string, len(platforms))
	for i, p := range platforms {
		platformNames[i] = string(p)
	}
	query := scheduledContentSelect + `
		WHERE brand_id = $1
		  AND scheduled_time BETWEEN $2 AND $3
		  AND platforms ?| $4
		ORDER BY scheduled_time, id
	`
	rows, err := r.db.pool.Query(ctx, query, brandID, around.Add(-window), around.Add(window), platformNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScheduledContentRows(rows)
}

// RegisterPrePublish satisfies scheduling.NotificationRegistrar by delegating
// to the publishing schema's schedule_notifications table; it is also
// exposed directly on PublishingRepository for the Publishing Manager side.
func (r *SchedulingRepository) RegisterPrePublish(ctx context.Context, scheduleID string, fireAt time.Time) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO schedule_notifications (schedule_id, event, fire_at, sent)
		VALUES ($1, 'pre_publish', $2, false)
	`, scheduleID, fireAt)
	return err
}

const scheduledContentSelect = `
	SELECT id, brand_id, content_id, title, content, platforms, content_type,
	       scheduled_time, timezone, status, priority, campaign_id, tags,
	       created_by, created_at, updated_at, retry_count, max_retries,
	       failure_reason, pre_publish_minutes, outcomes
	FROM scheduled_content
`

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanScheduledContent(row scannable) (socialmodel.ScheduledContent, error) {
	var c socialmodel.ScheduledContent
	var platformsRaw, tagsRaw, outcomesRaw []byte
	err := row.Scan(
		&c.ID, &c.BrandID, &c.ContentID, &c.Title, &c.Content, &platformsRaw,
		&c.ContentType, &c.ScheduledTime, &c.Timezone, &c.Status, &c.Priority,
		&c.CampaignID, &tagsRaw, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		&c.RetryCount, &c.MaxRetries, &c.FailureReason, &c.PrePublishMinutes, &outcomesRaw,
	)
	if err != nil {
		return socialmodel.ScheduledContent{}, err
	}
	if len(platformsRaw) > 0 {
		if err := json.Unmarshal(platformsRaw, &c.Platforms); err != nil {
			return socialmodel.ScheduledContent{}, err
		}
	}
	if len(tagsRaw) > 0 {
		if err := json.Unmarshal(tagsRaw, &c.Tags); err != nil {
			return socialmodel.ScheduledContent{}, err
		}
	}
	if len(outcomesRaw) > 0 {
		if err := json.Unmarshal(outcomesRaw, &c.Outcomes); err != nil {
			return socialmodel.ScheduledContent{}, err
		}
	}
	return c, nil
}

func scanScheduledContentRows(rows pgx.Rows) ([]socialmodel.ScheduledContent, error) {
	var out []socialmodel.ScheduledContent
	for rows.Next() {
		c, err := scanScheduledContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
