package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// detectConflicts runs the four deterministic detectors against the
// repository's conflicting set (spec §4.8 "Conflict detection").
func (e *Engine) detectConflicts(ctx context.Context, content socialmodel.ScheduledContent) ([]socialmodel.SchedulingConflict, error) {
	window := e.widestWindow()
	others, err := e.repo.ListConflicting(ctx, content.BrandID, content.Platforms, content.ScheduledTime, window)
	if err != nil {
		return nil, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to list conflicting schedules for brand %s", content.BrandID)
	}

	var conflicts []socialmodel.SchedulingConflict
	for _, other := range others {
		if other.ID == content.ID {
			continue
		}
		if c, ok := e.timeOverlapConflict(content, other); ok {
			conflicts = append(conflicts, c)
		}
		if c, ok := contentSimilarityConflict(content, other, e.cfg); ok {
			conflicts = append(conflicts, c)
		}
		if c, ok := campaignConflict(content, other, e.cfg); ok {
			conflicts = append(conflicts, c)
		}
	}

	if c, ok, err := e.platformLimitConflict(ctx, content); err != nil {
		return nil, err
	} else if ok {
		conflicts = append(conflicts, c)
	}

	return conflicts, nil
}

func (e *Engine) widestWindow() time.Duration {
	minutes := e.cfg.TimeOverlapMediumWindowMinutes
	if e.cfg.CampaignWindowMinutes > minutes {
		minutes = e.cfg.CampaignWindowMinutes
	}
	days := e.cfg.ContentSimilarityWindowDays * 24 * 60
	if days > minutes {
		minutes = days
	}
	return time.Duration(minutes) * time.Minute
}

func sharedPlatform(a, b []socialmodel.Platform) bool {
	set := make(map[socialmodel.Platform]struct{}, len(a))
	for _, p := range a {
		set[p] = struct{}{}
	}
	for _, p := range b {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

// timeOverlapConflict implements spec §4.8: same brandId, any shared
// platform, |Δt| < 30 min → medium; < 15 min → high.
func (e *Engine) timeOverlapConflict(content, other socialmodel.ScheduledContent) (socialmodel.SchedulingConflict, bool) {
	if other.BrandID != content.BrandID || !sharedPlatform(content.Platforms, other.Platforms) {
		return socialmodel.SchedulingConflict{}, false
	}
	delta := content.ScheduledTime.Sub(other.ScheduledTime)
	if delta < 0 {
		delta = -delta
	}
	medium := time.Duration(e.cfg.TimeOverlapMediumWindowMinutes) * time.Minute
	high := time.Duration(e.cfg.TimeOverlapHighWindowMinutes) * time.Minute
	if delta >= medium {
		return socialmodel.SchedulingConflict{}, false
	}
	severity := socialmodel.SeverityMedium
	if delta < high {
		severity = socialmodel.SeverityHigh
	}
	return socialmodel.SchedulingConflict{
		Type:                   socialmodel.ConflictTimeOverlap,
		Severity:                severity,
		Description:             fmt.Sprintf("overlaps schedule %s by %s", other.ID, delta),
		ConflictingScheduleIDs:  []string{other.ID},
		SuggestedResolution:     socialmodel.SuggestedResolution{Action: socialmodel.ResolveReschedule, Reason: "shared platform within overlap window"},
		AutoResolvable:          severity != socialmodel.SeverityHigh,
	}, true
}

// platformLimitConflict implements spec §4.8: a configured per-platform
// daily and hourly cap; if exceeded at the proposed minute → high.
func (e *Engine) platformLimitConflict(ctx context.Context, content socialmodel.ScheduledContent) (socialmodel.SchedulingConflict, bool, error) {
	for _, platform := range content.Platforms {
		limit, ok := e.cfg.PlatformLimits[platform]
		if !ok {
			continue
		}
		dayStart := content.ScheduledTime.Truncate(24 * time.Hour)
		dayEnd := dayStart.Add(24 * time.Hour)
		daily, err := e.repo.ListByTimeRange(ctx, content.BrandID, dayStart, dayEnd)
		if err != nil {
			return socialmodel.SchedulingConflict{}, false, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to list daily schedules for brand %s", content.BrandID)
		}
		dailyCount := countForPlatform(daily, platform, content.ID)
		if dailyCount+1 > limit.DailyLimit {
			return e.limitExceededConflict(ctx, content, platform, "daily")
		}

		hourStart := content.ScheduledTime.Truncate(time.Hour)
		hourEnd := hourStart.Add(time.Hour)
		hourly, err := e.repo.ListByTimeRange(ctx, content.BrandID, hourStart, hourEnd)
		if err != nil {
			return socialmodel.SchedulingConflict{}, false, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to list hourly schedules for brand %s", content.BrandID)
		}
		hourlyCount := countForPlatform(hourly, platform, content.ID)
		if hourlyCount+1 > limit.HourlyLimit {
			return e.limitExceededConflict(ctx, content, platform, "hourly")
		}
	}
	return socialmodel.SchedulingConflict{}, false, nil
}

func (e *Engine) limitExceededConflict(ctx context.Context, content socialmodel.ScheduledContent, platform socialmodel.Platform, window string) (socialmodel.SchedulingConflict, bool, error) {
	var newTime *time.Time
	if e.optimalTiming != nil {
		suggestions, err := e.optimalTiming.SuggestTimes(ctx, content.BrandID, platform, content.ContentType, content.ScheduledTime, content.ScheduledTime.Add(7*24*time.Hour), 1)
		if err == nil && len(suggestions) > 0 {
			t := suggestions[0].Time
			newTime = &t
		}
	}
	return socialmodel.SchedulingConflict{
		Type:                   socialmodel.ConflictPlatformLimit,
		Severity:                socialmodel.SeverityHigh,
		Description:             fmt.Sprintf("%s limit exceeded for platform %s", window, platform),
		ConflictingScheduleIDs:  nil,
		SuggestedResolution:     socialmodel.SuggestedResolution{Action: socialmodel.ResolveReschedule, NewTime: newTime, Reason: window + " platform limit exceeded"},
		AutoResolvable:          newTime != nil,
	}, true, nil
}

func countForPlatform(schedules []socialmodel.ScheduledContent, platform socialmodel.Platform, excludeID string) int {
	count := 0
	for _, s := range schedules {
		if s.ID == excludeID {
			continue
		}
		for _, p := range s.Platforms {
			if p == platform {
				count++
				break
			}
		}
	}
	return count
}

// contentSimilarityConflict implements spec §4.8: titleJaccard > 0.7 or
// hashtagJaccard > 0.8, within 7 days → low.
func contentSimilarityConflict(content, other socialmodel.ScheduledContent, cfg Config) (socialmodel.SchedulingConflict, bool) {
	if other.BrandID != content.BrandID {
		return socialmodel.SchedulingConflict{}, false
	}
	delta := content.ScheduledTime.Sub(other.ScheduledTime)
	if delta < 0 {
		delta = -delta
	}
	if delta > time.Duration(cfg.ContentSimilarityWindowDays)*24*time.Hour {
		return socialmodel.SchedulingConflict{}, false
	}

	titleSim := jaccardSimilarity(tokenSet(content.Title), tokenSet(other.Title))
	hashtagSim := jaccardSliceSimilarity(tagSet(content), tagSet(other))
	if titleSim <= cfg.ContentSimilarityTitleJaccard && hashtagSim <= cfg.ContentSimilarityHashtagJaccard {
		return socialmodel.SchedulingConflict{}, false
	}

	return socialmodel.SchedulingConflict{
		Type:                   socialmodel.ConflictContentSimilarity,
		Severity:                socialmodel.SeverityLow,
		Description:             fmt.Sprintf("similar to schedule %s (title=%.2f hashtag=%.2f)", other.ID, titleSim, hashtagSim),
		ConflictingScheduleIDs:  []string{other.ID},
		SuggestedResolution:     socialmodel.SuggestedResolution{Action: socialmodel.ResolveIgnore, Reason: "low-severity content overlap"},
		AutoResolvable:          true,
	}, true
}

// campaignConflict implements spec §4.8: same campaignId, |Δt| < 120 min →
// medium.
func campaignConflict(content, other socialmodel.ScheduledContent, cfg Config) (socialmodel.SchedulingConflict, bool) {
	if content.CampaignID == "" || other.CampaignID != content.CampaignID {
		return socialmodel.SchedulingConflict{}, false
	}
	delta := content.ScheduledTime.Sub(other.ScheduledTime)
	if delta < 0 {
		delta = -delta
	}
	if delta >= time.Duration(cfg.CampaignWindowMinutes)*time.Minute {
		return socialmodel.SchedulingConflict{}, false
	}
	return socialmodel.SchedulingConflict{
		Type:                   socialmodel.ConflictCampaign,
		Severity:                socialmodel.SeverityMedium,
		Description:             fmt.Sprintf("campaign %s also scheduled at %s", content.CampaignID, other.ScheduledTime),
		ConflictingScheduleIDs:  []string{other.ID},
		SuggestedResolution:     socialmodel.SuggestedResolution{Action: socialmodel.ResolveReschedule, Reason: "same campaign within conflict window"},
		AutoResolvable:          true,
	}, true
}

func tagSet(c socialmodel.ScheduledContent) []string {
	return append([]string{}, c.Tags...)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		set[tok] = struct{}{}
	}
	return set
}

func jaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func jaccardSliceSimilarity(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[strings.ToLower(s)] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[strings.ToLower(s)] = struct{}{}
	}
	return jaccardSimilarity(setA, setB)
}

func hasHighSeverity(conflicts []socialmodel.SchedulingConflict) bool {
	for _, c := range conflicts {
		if c.Severity == socialmodel.SeverityHigh {
			return true
		}
	}
	return false
}
