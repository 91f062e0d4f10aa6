package publishing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/clock"
	"github.com/socialpulse/engine/pkg/logger"
)

type fakeRepo struct {
	mu            sync.Mutex
	schedules     map[string]socialmodel.ScheduledContent
	notifications []ScheduledNotification
	sentNotifs    []socialmodel.SentNotification
	claimAttempts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{schedules: map[string]socialmodel.ScheduledContent{}}
}

func (f *fakeRepo) DueForPublishing(ctx context.Context, now time.Time, limit int) ([]socialmodel.ScheduledContent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var due []socialmodel.ScheduledContent
	for _, s := range f.schedules {
		if s.Status == socialmodel.ScheduleScheduled && !s.ScheduledTime.After(now) {
			due = append(due, s)
		}
	}
	return due, nil
}

func (f *fakeRepo) DueForNotification(ctx context.Context, now time.Time, limit int) ([]ScheduledNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var due []ScheduledNotification
	var remaining []ScheduledNotification
	for _, n := range f.notifications {
		if !n.FireAt.After(now) {
			due = append(due, n)
		} else {
			remaining = append(remaining, n)
		}
	}
	f.notifications = remaining
	return due, nil
}

func (f *fakeRepo) TryClaim(ctx context.Context, id string, expectedStatus, newStatus socialmodel.ScheduleStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claimAttempts++
	s, ok := f.schedules[id]
	if !ok || s.Status != expectedStatus {
		return false, nil
	}
	s.Status = newStatus
	f.schedules[id] = s
	return true, nil
}

func (f *fakeRepo) UpdateOutcome(ctx context.Context, id string, status socialmodel.ScheduleStatus, outcomes []socialmodel.PlatformOutcome, failureReason string, retryCount int, nextAttempt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.schedules[id]
	s.Status = status
	s.Outcomes = outcomes
	s.FailureReason = failureReason
	s.RetryCount = retryCount
	if nextAttempt != nil {
		s.ScheduledTime = *nextAttempt
	}
	f.schedules[id] = s
	return nil
}

func (f *fakeRepo) MarkNotificationSent(ctx context.Context, id string, sent socialmodel.SentNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentNotifs = append(f.sentNotifs, sent)
	return nil
}

func (f *fakeRepo) RegisterPrePublish(ctx context.Context, scheduleID string, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.schedules[scheduleID]
	f.notifications = append(f.notifications, ScheduledNotification{Schedule: s, Event: socialmodel.NotifyPrePublish, FireAt: fireAt})
	return nil
}

type scriptedPublisher struct {
	mu        sync.Mutex
	behavior  map[socialmodel.Platform]func() (socialmodel.PlatformOutcome, error)
	callCount map[socialmodel.Platform]int
}

func newScriptedPublisher() *scriptedPublisher {
	return &scriptedPublisher{behavior: map[socialmodel.Platform]func() (socialmodel.PlatformOutcome, error){}, callCount: map[socialmodel.Platform]int{}}
}

func (p *scriptedPublisher) ValidateContent(ctx context.Context, content socialmodel.ScheduledContent, platform socialmodel.Platform) error {
	if platform == "invalid-platform" {
		return socialmodel.NewError(socialmodel.KindValidation, "content invalid for %s", platform)
	}
	return nil
}

func (p *scriptedPublisher) Publish(ctx context.Context, content socialmodel.ScheduledContent, platform socialmodel.Platform) (socialmodel.PlatformOutcome, error) {
	p.mu.Lock()
	p.callCount[platform]++
	fn := p.behavior[platform]
	p.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return socialmodel.PlatformOutcome{PlatformPostID: "post-" + string(platform)}, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []socialmodel.NotificationEvent
}

func (n *fakeNotifier) Notify(ctx context.Context, schedule socialmodel.ScheduledContent, event socialmodel.NotificationEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func testDispatcher(repo Repository, publisher Publisher, notifier Notifier, clk clock.Clock) *Dispatcher {
	cfg := DefaultConfig()
	cfg.RatePerSecond = 1000
	cfg.Burst = 1000
	return New(repo, publisher, notifier, cfg, clk, logger.New(), 4)
}

func TestRunOnceAllSuccess(t *testing.T) {
	repo := newFakeRepo()
	clk := clock.NewFake(time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC))
	repo.schedules["s1"] = socialmodel.ScheduledContent{
		ID:            "s1",
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram, socialmodel.PlatformReddit},
		Status:        socialmodel.ScheduleScheduled,
		ScheduledTime: clk.Now().Add(-time.Minute),
		MaxRetries:    3,
	}
	notifier := &fakeNotifier{}
	d := testDispatcher(repo, newScriptedPublisher(), notifier, clk)

	err := d.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, socialmodel.SchedulePublished, repo.schedules["s1"].Status)
	assert.Equal(t, []socialmodel.NotificationEvent{socialmodel.NotifyPublished}, notifier.events)
	published, failed := d.Counts()
	assert.Equal(t, 1, published)
	assert.Equal(t, 0, failed)
}

func TestRunOnceValidationFailureIsTerminal(t *testing.T) {
	repo := newFakeRepo()
	clk := clock.NewFake(time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC))
	repo.schedules["s1"] = socialmodel.ScheduledContent{
		ID:            "s1",
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{"invalid-platform"},
		Status:        socialmodel.ScheduleScheduled,
		ScheduledTime: clk.Now().Add(-time.Minute),
		MaxRetries:    3,
	}
	d := testDispatcher(repo, newScriptedPublisher(), &fakeNotifier{}, clk)

	require.NoError(t, d.RunOnce(context.Background()))

	final := repo.schedules["s1"]
	assert.Equal(t, socialmodel.ScheduleFailed, final.Status)
	require.Len(t, final.Outcomes, 1)
	assert.Equal(t, "VALIDATION_FAILED", final.Outcomes[0].ErrorCode)
}

func TestRunOnceTransientFailureRetries(t *testing.T) {
	repo := newFakeRepo()
	clk := clock.NewFake(time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC))
	repo.schedules["s1"] = socialmodel.ScheduledContent{
		ID:            "s1",
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram},
		Status:        socialmodel.ScheduleScheduled,
		ScheduledTime: clk.Now().Add(-time.Minute),
		MaxRetries:    3,
	}
	publisher := newScriptedPublisher()
	publisher.behavior[socialmodel.PlatformInstagram] = func() (socialmodel.PlatformOutcome, error) {
		return socialmodel.PlatformOutcome{}, socialmodel.NewError(socialmodel.KindTransientUpstream, "platform timeout")
	}
	d := testDispatcher(repo, publisher, &fakeNotifier{}, clk)

	require.NoError(t, d.RunOnce(context.Background()))

	final := repo.schedules["s1"]
	assert.Equal(t, socialmodel.ScheduleScheduled, final.Status)
	assert.Equal(t, 1, final.RetryCount)
	assert.True(t, final.ScheduledTime.After(clk.Now()))
}

func TestRunOnceMaxRetriesExceededIsTerminal(t *testing.T) {
	repo := newFakeRepo()
	clk := clock.NewFake(time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC))
	repo.schedules["s1"] = socialmodel.ScheduledContent{
		ID:            "s1",
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram},
		Status:        socialmodel.ScheduleScheduled,
		ScheduledTime: clk.Now().Add(-time.Minute),
		RetryCount:    3,
		MaxRetries:    3,
	}
	publisher := newScriptedPublisher()
	publisher.behavior[socialmodel.PlatformInstagram] = func() (socialmodel.PlatformOutcome, error) {
		return socialmodel.PlatformOutcome{}, socialmodel.NewError(socialmodel.KindTransientUpstream, "platform timeout")
	}
	notifier := &fakeNotifier{}
	d := testDispatcher(repo, publisher, notifier, clk)

	require.NoError(t, d.RunOnce(context.Background()))

	final := repo.schedules["s1"]
	assert.Equal(t, socialmodel.ScheduleFailed, final.Status)
	assert.Equal(t, "max retries exceeded", final.FailureReason)
	assert.Equal(t, []socialmodel.NotificationEvent{socialmodel.NotifyFailed}, notifier.events)
}

func TestRunOnceSkipsAlreadyClaimedSchedule(t *testing.T) {
	repo := newFakeRepo()
	clk := clock.NewFake(time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC))
	repo.schedules["s1"] = socialmodel.ScheduledContent{
		ID:            "s1",
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram},
		Status:        socialmodel.SchedulePublishing,
		ScheduledTime: clk.Now().Add(-time.Minute),
	}
	d := testDispatcher(repo, newScriptedPublisher(), &fakeNotifier{}, clk)

	require.NoError(t, d.RunOnce(context.Background()))
	assert.Equal(t, socialmodel.SchedulePublishing, repo.schedules["s1"].Status)
}

func TestRunOnceDispatchesPrePublishBeforePublish(t *testing.T) {
	repo := newFakeRepo()
	clk := clock.NewFake(time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC))
	repo.schedules["s1"] = socialmodel.ScheduledContent{
		ID:            "s1",
		BrandID:       "brand-1",
		Platforms:     []socialmodel.Platform{socialmodel.PlatformInstagram},
		Status:        socialmodel.ScheduleScheduled,
		ScheduledTime: clk.Now().Add(-time.Minute),
		MaxRetries:    3,
	}
	require.NoError(t, repo.RegisterPrePublish(context.Background(), "s1", clk.Now().Add(-time.Hour)))

	notifier := &fakeNotifier{}
	d := testDispatcher(repo, newScriptedPublisher(), notifier, clk)

	require.NoError(t, d.RunOnce(context.Background()))
	require.Len(t, notifier.events, 2)
	assert.Equal(t, socialmodel.NotifyPrePublish, notifier.events[0])
	assert.Equal(t, socialmodel.NotifyPublished, notifier.events[1])
}
