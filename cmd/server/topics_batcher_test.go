package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/internal/topics"
	"github.com/socialpulse/engine/pkg/clock"
	"github.com/socialpulse/engine/pkg/logger"
)

func TestTopicsBatcherFlushDrainsPending(t *testing.T) {
	vectorizer := topics.NewVectorizer([]string{"shipping", "delayed", "refund"})
	engine := topics.NewEngine(topics.DefaultConfig(), vectorizer, nil)
	clk := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b := newTopicsBatcher(engine, clk, logger.New())

	b.Submit(socialmodel.SocialEvent{ID: "evt-1", Platform: socialmodel.PlatformReddit, Timestamp: clk.Now()})
	b.Submit(socialmodel.SocialEvent{ID: "evt-2", Platform: socialmodel.PlatformReddit, Timestamp: clk.Now()})
	assert.Len(t, b.pending, 2)

	b.flush()

	assert.Empty(t, b.pending)
}

func TestTopicsBatcherFlushNoopWhenEmpty(t *testing.T) {
	vectorizer := topics.NewVectorizer([]string{"shipping"})
	engine := topics.NewEngine(topics.DefaultConfig(), vectorizer, nil)
	clk := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b := newTopicsBatcher(engine, clk, logger.New())

	assert.NotPanics(t, func() { b.flush() })
}
