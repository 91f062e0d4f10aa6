package scheduling

import (
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// ViewGranularity is the calendar view span requested by getCalendarView.
type ViewGranularity string

const (
	ViewDay   ViewGranularity = "day"
	ViewWeek  ViewGranularity = "week"
	ViewMonth ViewGranularity = "month"
	ViewYear  ViewGranularity = "year"
)

// CalendarView aggregates schedules, conflicts, optimal times, and limit
// usage for a brand over a view window (spec §4.8 getCalendarView).
type CalendarView struct {
	BrandID     string                           `json:"brand_id"`
	Granularity ViewGranularity                  `json:"granularity"`
	Start       time.Time                        `json:"start"`
	End         time.Time                        `json:"end"`
	Schedules   []socialmodel.ScheduledContent   `json:"schedules"`
	Conflicts   []socialmodel.SchedulingConflict `json:"conflicts"`
	OptimalTimes []socialmodel.OptimalPostingTime `json:"optimal_times,omitempty"`
	LimitUsage  map[socialmodel.Platform]PlatformLimitUsage `json:"limit_usage"`
}

// PlatformLimitUsage reports how much of a platform's configured daily cap
// a brand has used within the view window.
type PlatformLimitUsage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// endDateFor computes the end of a calendar view given its granularity and
// start, respecting the requested timezone.
func endDateFor(granularity ViewGranularity, start time.Time) time.Time {
	switch granularity {
	case ViewDay:
		return start.AddDate(0, 0, 1)
	case ViewWeek:
		return start.AddDate(0, 0, 7)
	case ViewMonth:
		return start.AddDate(0, 1, 0)
	case ViewYear:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}
