package socialmodel

import "time"

// ScheduleStatus is the lifecycle state of a ScheduledContent. Publishing
// moves scheduled→publishing→{published,failed}, and an attempt that will be
// retried moves publishing→scheduled. Cancellation is allowed from any status
// except publishing, published and cancelled. published and cancelled are
// absorbing.
type ScheduleStatus string

const (
	ScheduleDraft      ScheduleStatus = "draft"
	ScheduleScheduled  ScheduleStatus = "scheduled"
	SchedulePublishing ScheduleStatus = "publishing"
	SchedulePublished  ScheduleStatus = "published"
	ScheduleFailed     ScheduleStatus = "failed"
	ScheduleCancelled  ScheduleStatus = "cancelled"
)

// Terminal reports whether s is an absorbing status.
func (s ScheduleStatus) Terminal() bool {
	return s == SchedulePublished || s == ScheduleCancelled
}

// NotificationEvent is the type of a schedule notification (spec §6).
type NotificationEvent string

const (
	NotifyPrePublish NotificationEvent = "pre_publish"
	NotifyPublished  NotificationEvent = "published"
	NotifyFailed     NotificationEvent = "failed"
	NotifyCancelled  NotificationEvent = "cancelled"
	NotifyEdited     NotificationEvent = "edited"
)

// SentNotification records one notification already sent/scheduled for a
// ScheduledContent, so the §5 ordering invariant (pre_publish before
// published/failed/cancelled) is directly observable on the record.
type SentNotification struct {
	Type    NotificationEvent `json:"type"`
	SentAt  time.Time         `json:"sent_at"`
	Channel string            `json:"channel"`
}

// PlatformOutcome records the per-platform publish outcome for one
// ScheduledContent (spec §4.9 step 2-3).
type PlatformOutcome struct {
	Platform       Platform           `json:"platform"`
	Status         ScheduleStatus     `json:"status"` // published or failed
	PlatformPostID string             `json:"platform_post_id,omitempty"`
	ErrorCode      string             `json:"error_code,omitempty"`
	ErrorMessage   string             `json:"error_message,omitempty"`
	Metrics        EngagementSnapshot `json:"metrics,omitempty"`
}

// EngagementSnapshot is a point-in-time engagement reading collected right
// after a successful publish.
type EngagementSnapshot struct {
	Views       int `json:"views"`
	Likes       int `json:"likes"`
	Comments    int `json:"comments"`
	Shares      int `json:"shares"`
	Impressions int `json:"impressions"`
}

// ScheduledContent is exclusively owned by the Scheduling Engine; the
// Publishing Manager may only mutate Status, RetryCount, NotificationsSent,
// FailureReason, and Outcomes.
type ScheduledContent struct {
	ID                string             `json:"id"`
	BrandID           string             `json:"brand_id"`
	ContentID         string             `json:"content_id,omitempty"`
	Title             string             `json:"title"`
	Content           string             `json:"content"`
	Platforms         []Platform         `json:"platforms"`
	ContentType       string             `json:"content_type"`
	ScheduledTime     time.Time          `json:"scheduled_time"`
	Timezone          string             `json:"timezone"`
	Status            ScheduleStatus     `json:"status"`
	Priority          int                `json:"priority"`
	CampaignID        string             `json:"campaign_id,omitempty"`
	Tags              []string           `json:"tags,omitempty"`
	CreatedBy         string             `json:"created_by"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	RetryCount        int                `json:"retry_count"`
	MaxRetries        int                `json:"max_retries"`
	NotificationsSent []SentNotification `json:"notifications_sent,omitempty"`
	FailureReason     string             `json:"failure_reason,omitempty"`
	PrePublishMinutes *int               `json:"pre_publish_minutes,omitempty"`
	Outcomes          []PlatformOutcome  `json:"outcomes,omitempty"`
}

// ConflictType enumerates the four scheduling conflict detectors.
type ConflictType string

const (
	ConflictTimeOverlap       ConflictType = "time-overlap"
	ConflictPlatformLimit     ConflictType = "platform-limit"
	ConflictContentSimilarity ConflictType = "content-similarity"
	ConflictCampaign          ConflictType = "campaign-conflict"
)

// ConflictSeverity is the severity of a SchedulingConflict.
type ConflictSeverity string

const (
	SeverityLow    ConflictSeverity = "low"
	SeverityMedium ConflictSeverity = "medium"
	SeverityHigh   ConflictSeverity = "high"
)

// ResolutionAction is the recommended action to resolve a conflict.
type ResolutionAction string

const (
	ResolveReschedule ResolutionAction = "reschedule"
	ResolveMerge      ResolutionAction = "merge"
	ResolveCancel     ResolutionAction = "cancel"
	ResolveIgnore     ResolutionAction = "ignore"
)

// SuggestedResolution is the recommended fix for a SchedulingConflict.
type SuggestedResolution struct {
	Action  ResolutionAction `json:"action"`
	NewTime *time.Time       `json:"new_time,omitempty"`
	Reason  string           `json:"reason"`
}

// SchedulingConflict is one detected conflict between a proposed or existing
// ScheduledContent and others.
type SchedulingConflict struct {
	Type                   ConflictType         `json:"type"`
	Severity               ConflictSeverity     `json:"severity"`
	Description            string               `json:"description"`
	ConflictingScheduleIDs []string             `json:"conflicting_schedule_ids"`
	SuggestedResolution    SuggestedResolution  `json:"suggested_resolution"`
	AutoResolvable         bool                 `json:"auto_resolvable"`
}

// OptimalPostingTime is a ranked (platform, time, score) suggestion from the
// Optimal-Timing collaborator service.
type OptimalPostingTime struct {
	Platform Platform  `json:"platform"`
	Time     time.Time `json:"time"`
	Score    float64   `json:"score"`
}
