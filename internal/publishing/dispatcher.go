// Package publishing implements the Publishing Manager (C9): a periodic
// dispatch loop that publishes due scheduled content across platforms, with
// per-(brand,platform) rate limiting, a circuit breaker per platform,
// exponential-backoff retries, and notification emission.
package publishing

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/clock"
	"github.com/socialpulse/engine/pkg/logger"
)

// Dispatcher owns the publishing pool: it polls the repository on a
// configurable tick and processes due schedules, one worker per schedule,
// bounded by maxConcurrent (spec §5 "publishing pool").
type Dispatcher struct {
	repo      Repository
	publisher Publisher
	notifier  Notifier
	cfg       Config
	clk       clock.Clock
	log       *logger.Logger

	maxConcurrent int
	cron          *cron.Cron
	entryID       cron.EntryID

	mu        sync.Mutex
	published int
	failed    int
}

// New builds a Dispatcher. publisher is wrapped with a rate limiter per
// (brand, platform) and a circuit breaker per platform before use.
func New(repo Repository, publisher Publisher, notifier Notifier, cfg Config, clk clock.Clock, log *logger.Logger, maxConcurrent int) *Dispatcher {
	return &Dispatcher{
		repo:          repo,
		publisher:     newGuardedPublisher(publisher, cfg),
		notifier:      notifier,
		cfg:           cfg,
		clk:           clk,
		log:           log,
		maxConcurrent: maxConcurrent,
		cron:          cron.New(),
	}
}

// Start registers the dispatch loop on the configured poll interval and
// starts the cron scheduler. It does not block.
func (d *Dispatcher) Start(ctx context.Context) error {
	spec := "@every " + d.cfg.PollInterval.String()
	id, err := d.cron.AddFunc(spec, func() {
		if err := d.RunOnce(ctx); err != nil {
			d.log.WithError(err).Error("publishing dispatch tick failed")
		}
	})
	if err != nil {
		return socialmodel.Wrap(socialmodel.KindValidation, err, "invalid publishing poll interval %s", d.cfg.PollInterval)
	}
	d.entryID = id
	d.cron.Start()
	return nil
}

// Stop halts the cron scheduler, letting in-flight ticks drain.
func (d *Dispatcher) Stop() {
	stopCtx := d.cron.Stop()
	<-stopCtx.Done()
}

// Counts reports how many schedules this dispatcher has moved to published
// or failed, for C11 metrics.
func (d *Dispatcher) Counts() (published, failed int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.published, d.failed
}

// RunOnce processes one tick: pre-publish notifications first (so they
// precede any publish/failed notification for the same schedule, per §5
// ordering), then due schedules, each on its own worker bounded by
// maxConcurrent.
func (d *Dispatcher) RunOnce(ctx context.Context) error {
	now := d.clk.Now()

	dueNotifications, err := d.repo.DueForNotification(ctx, now, d.cfg.PageSize)
	if err != nil {
		return socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to list due notifications")
	}
	d.dispatchPrePublishNotifications(ctx, dueNotifications)

	due, err := d.repo.DueForPublishing(ctx, now, d.cfg.PageSize)
	if err != nil {
		return socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "failed to list due schedules")
	}

	sem := make(chan struct{}, d.maxConcurrent)
	var wg sync.WaitGroup
	for _, schedule := range due {
		schedule := schedule
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			claimed, status, err := d.executeSchedule(ctx, schedule)
			if err != nil {
				d.log.WithScheduleID(schedule.ID).WithError(err).Warn("schedule dispatch failed")
				return
			}
			if !claimed {
				return
			}
			d.mu.Lock()
			switch status {
			case socialmodel.SchedulePublished:
				d.published++
			case socialmodel.ScheduleFailed:
				d.failed++
			}
			d.mu.Unlock()
		}()
	}
	wg.Wait()

	return nil
}
