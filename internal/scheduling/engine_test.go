package scheduling

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/clock"
)

type fakeRepo struct {
	items map[string]socialmodel.ScheduledContent
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]socialmodel.ScheduledContent{}}
}

func (f *fakeRepo) Create(ctx context.Context, content socialmodel.ScheduledContent) (socialmodel.ScheduledContent, error) {
	f.items[content.ID] = content
	return content, nil
}

func (f *fakeRepo) Update(ctx context.Context, content socialmodel.ScheduledContent) (socialmodel.ScheduledContent, error) {
	f.items[content.ID] = content
	return content, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (socialmodel.ScheduledContent, bool, error) {
	c, ok := f.items[id]
	return c, ok, nil
}

func (f *fakeRepo) ListByFilter(ctx context.Context, filter Filter) ([]socialmodel.ScheduledContent, error) {
	var out []socialmodel.ScheduledContent
	for _, c := range f.items {
		if c.BrandID == filter.BrandID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByTimeRange(ctx context.Context, brandID string, start, end time.Time) ([]socialmodel.ScheduledContent, error) {
	var out []socialmodel.ScheduledContent
	for _, c := range f.items {
		if c.BrandID == brandID && !c.ScheduledTime.Before(start) && c.ScheduledTime.Before(end) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledTime.Equal(out[j].ScheduledTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	return out, nil
}

func (f *fakeRepo) ListConflicting(ctx context.Context, brandID string, platforms []socialmodel.Platform, around time.Time, window time.Duration) ([]socialmodel.ScheduledContent, error) {
	var out []socialmodel.ScheduledContent
	for _, c := range f.items {
		if c.BrandID != brandID {
			continue
		}
		delta := c.ScheduledTime.Sub(around)
		if delta < 0 {
			delta = -delta
		}
		if delta <= window {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledTime.Equal(out[j].ScheduledTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	return out, nil
}

func testEngine() (*Engine, *fakeRepo, *clock.Fake) {
	repo := newFakeRepo()
	clk := clock.NewFake(time.Date(2026, 7, 29, 9, 0, 0, 0, time.UTC))
	return New(repo, nil, nil, DefaultConfig(), clk), repo, clk
}

func TestScheduleContentHappyPath(t *testing.T) {
	e, _, clk := testEngine()
	scheduled, conflicts, err := e.ScheduleContent(context.Background(), SchedulingRequest{
		BrandID:       "brand-1",
		Title:         "launch post",
		Content:       "we're launching!",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram},
		ScheduledTime: clk.Now().Add(2 * time.Hour),
		CreatedBy:     "alice",
	})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, socialmodel.ScheduleScheduled, scheduled.Status)
	assert.NotEmpty(t, scheduled.ID)
}

func TestScheduleContentRejectsPastTime(t *testing.T) {
	e, _, clk := testEngine()
	_, _, err := e.ScheduleContent(context.Background(), SchedulingRequest{
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram},
		ScheduledTime: clk.Now().Add(-time.Hour),
	})
	require.Error(t, err)
	assert.True(t, socialmodel.IsKind(err, socialmodel.KindValidation))
}

func TestScheduleContentHighSeverityConflictBlocked(t *testing.T) {
	e, repo, clk := testEngine()
	existing := socialmodel.ScheduledContent{
		ID:            "existing-1",
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram},
		ScheduledTime: clk.Now().Add(2 * time.Hour),
	}
	repo.items[existing.ID] = existing

	_, conflicts, err := e.ScheduleContent(context.Background(), SchedulingRequest{
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram},
		ScheduledTime: clk.Now().Add(2*time.Hour + 5*time.Minute),
	})
	require.Error(t, err)
	assert.True(t, socialmodel.IsKind(err, socialmodel.KindConflict))
	require.NotEmpty(t, conflicts)
	assert.Equal(t, socialmodel.SeverityHigh, conflicts[0].Severity)
}

func TestScheduleContentAllowConflictsOverride(t *testing.T) {
	e, repo, clk := testEngine()
	existing := socialmodel.ScheduledContent{
		ID:            "existing-1",
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram},
		ScheduledTime: clk.Now().Add(2 * time.Hour),
	}
	repo.items[existing.ID] = existing

	scheduled, conflicts, err := e.ScheduleContent(context.Background(), SchedulingRequest{
		BrandID:        "brand-1",
		Platforms:      []socialmodel.Platform{socialmodel.PlatformInstagram},
		ScheduledTime:  clk.Now().Add(2*time.Hour + 5*time.Minute),
		AllowConflicts: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, conflicts)
	assert.Equal(t, socialmodel.ScheduleScheduled, scheduled.Status)
}

func TestCancelScheduledContentGuardsTerminalStates(t *testing.T) {
	e, repo, clk := testEngine()
	repo.items["published-1"] = socialmodel.ScheduledContent{ID: "published-1", BrandID: "b", Status: socialmodel.SchedulePublished, ScheduledTime: clk.Now()}

	err := e.CancelScheduledContent(context.Background(), "published-1", "no longer relevant")
	require.Error(t, err)
	assert.True(t, socialmodel.IsKind(err, socialmodel.KindState))
}

func TestUpdateScheduledContentGuardsCloseToScheduledTime(t *testing.T) {
	e, repo, clk := testEngine()
	repo.items["soon-1"] = socialmodel.ScheduledContent{ID: "soon-1", BrandID: "b", Status: socialmodel.ScheduleScheduled, ScheduledTime: clk.Now().Add(2 * time.Minute)}

	_, _, err := e.UpdateScheduledContent(context.Background(), "soon-1", func(c *socialmodel.ScheduledContent) {
		c.Title = "edited"
	})
	require.Error(t, err)
	assert.True(t, socialmodel.IsKind(err, socialmodel.KindState))
}

func TestEvenDistributionStrategy(t *testing.T) {
	e, _, clk := testEngine()
	start := clk.Now().Add(time.Hour)
	end := start.Add(10 * time.Hour)
	result := e.BulkScheduleContent(context.Background(), BulkRequest{
		BrandID:  "brand-2",
		Strategy: DistributionEven,
		RangeStart: start,
		RangeEnd:   end,
		Items: []BulkItem{
			{Title: "a", Platforms: []socialmodel.Platform{socialmodel.PlatformReddit}},
			{Title: "b", Platforms: []socialmodel.Platform{socialmodel.PlatformReddit}},
			{Title: "c", Platforms: []socialmodel.Platform{socialmodel.PlatformReddit}},
		},
	})
	require.Empty(t, result.Failed)
	require.Len(t, result.Scheduled, 3)

	sort.Slice(result.Scheduled, func(i, j int) bool {
		return result.Scheduled[i].ScheduledTime.Before(result.Scheduled[j].ScheduledTime)
	})
	assert.True(t, result.Scheduled[0].ScheduledTime.Before(result.Scheduled[1].ScheduledTime))
	assert.True(t, result.Scheduled[1].ScheduledTime.Before(result.Scheduled[2].ScheduledTime))
}

func TestCheckSchedulingConflictsContentSimilarity(t *testing.T) {
	e, repo, clk := testEngine()
	repo.items["similar-1"] = socialmodel.ScheduledContent{
		ID:            "similar-1",
		BrandID:       "brand-3",
		Title:         "big spring sale starts today",
		ScheduledTime: clk.Now().Add(24 * time.Hour),
	}

	conflicts, err := e.CheckSchedulingConflicts(context.Background(), socialmodel.ScheduledContent{
		ID:            "new-1",
		BrandID:       "brand-3",
		Title:         "big spring sale starts today",
		ScheduledTime: clk.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, conflicts)
	assert.Equal(t, socialmodel.ConflictContentSimilarity, conflicts[0].Type)
}
