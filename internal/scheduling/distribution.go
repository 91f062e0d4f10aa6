package scheduling

import (
	"context"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// DistributionStrategy is one of the three bulk-scheduling time assignment
// strategies (spec §4.8 "Distribution strategies").
type DistributionStrategy string

const (
	DistributionEven    DistributionStrategy = "even"
	DistributionOptimal DistributionStrategy = "optimal"
	DistributionCustom  DistributionStrategy = "custom"
)

// BulkItem is one piece of content within a BulkRequest. ScheduledTime is
// only consulted when Strategy is "custom".
type BulkItem struct {
	Title         string
	Content       string
	Platforms     []socialmodel.Platform
	ContentType   string
	ScheduledTime time.Time
	Timezone      string
	CampaignID    string
	Tags          []string
	CreatedBy     string
}

// BulkRequest is the input to bulkScheduleContent.
type BulkRequest struct {
	BrandID      string
	Items        []BulkItem
	Strategy     DistributionStrategy
	RangeStart   time.Time
	RangeEnd     time.Time
	AllowConflicts bool
}

// assignTimes resolves each item's scheduled time according to the
// request's distribution strategy, preserving input order.
func (e *Engine) assignTimes(ctx context.Context, req BulkRequest) ([]time.Time, error) {
	n := len(req.Items)
	times := make([]time.Time, n)

	switch req.Strategy {
	case DistributionCustom:
		for i, item := range req.Items {
			times[i] = item.ScheduledTime
		}

	case DistributionOptimal:
		for i, item := range req.Items {
			platform := socialmodel.Platform("")
			if len(item.Platforms) > 0 {
				platform = item.Platforms[0]
			}
			if e.optimalTiming == nil {
				times[i] = evenSlot(req.RangeStart, req.RangeEnd, n, i)
				continue
			}
			suggestions, err := e.optimalTiming.SuggestTimes(ctx, req.BrandID, platform, item.ContentType, req.RangeStart, req.RangeEnd, 1)
			if err != nil || len(suggestions) == 0 {
				times[i] = evenSlot(req.RangeStart, req.RangeEnd, n, i)
				continue
			}
			times[i] = suggestions[0].Time
		}

	default: // DistributionEven
		for i := range req.Items {
			times[i] = evenSlot(req.RangeStart, req.RangeEnd, n, i)
		}
	}

	return times, nil
}

// evenSlot implements t_i = start + (i * (end - start) / n).
func evenSlot(start, end time.Time, n, i int) time.Time {
	if n <= 1 {
		return start
	}
	step := end.Sub(start) / time.Duration(n)
	return start.Add(time.Duration(i) * step)
}
