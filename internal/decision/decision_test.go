package decision

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/clock"
)

type stubSentiment struct {
	result socialmodel.SentimentResult
}

func (s stubSentiment) Analyze(ctx context.Context, event socialmodel.SocialEvent) socialmodel.SentimentResult {
	return s.result
}

type stubIntent struct {
	result socialmodel.IntentResult
}

func (s stubIntent) Detect(ctx context.Context, event socialmodel.SocialEvent) socialmodel.IntentResult {
	return s.result
}

type stubPriority struct {
	score socialmodel.PriorityScore
}

func (s stubPriority) Score(now time.Time, event socialmodel.SocialEvent, sentiment socialmodel.SentimentResult, intentResult socialmodel.IntentResult, brand socialmodel.BrandContext) socialmodel.PriorityScore {
	return s.score
}

type stubRouter struct {
	decision socialmodel.RoutingDecision
}

func (s stubRouter) Route(event socialmodel.SocialEvent, sentiment socialmodel.SentimentResult, intentResult socialmodel.IntentResult, priority socialmodel.PriorityScore, brand socialmodel.BrandContext) socialmodel.RoutingDecision {
	return s.decision
}

type stubExecutor struct {
	results []socialmodel.ExecutionResult
}

func (s stubExecutor) Execute(ctx context.Context, event socialmodel.SocialEvent, decision socialmodel.RoutingDecision, approved bool) []socialmodel.ExecutionResult {
	return s.results
}

type slowIntent struct {
	delay time.Duration
}

func (s slowIntent) Detect(ctx context.Context, event socialmodel.SocialEvent) socialmodel.IntentResult {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
	return socialmodel.IntentResult{}
}

func testEvent() socialmodel.SocialEvent {
	return socialmodel.SocialEvent{
		ID:        "evt-1",
		Platform:  socialmodel.PlatformInstagram,
		Timestamp: time.Date(2026, 7, 29, 10, 0, 0, 0, time.UTC),
		Content:   socialmodel.Content{Text: "this is terrible, fix it now"},
	}
}

func testBrand() socialmodel.BrandContext {
	return socialmodel.BrandContext{
		BrandID:  "brand-1",
		Playbook: socialmodel.Playbook{Version: "v1"},
		Personas: []socialmodel.Persona{{ID: "default"}},
	}
}

func happyPathEngine(t *testing.T, cache Cache) *Engine {
	t.Helper()
	cfg := Config{
		MaxConcurrentDecisions:   2,
		DecisionTimeout:          time.Second,
		EnableDecisionCaching:    cache != nil,
		CacheExpiration:          time.Minute,
		EnableValidation:         true,
		RequireMinimumConfidence: 0.1,
	}
	sentimentResult := socialmodel.SentimentResult{Overall: socialmodel.OverallSentiment{Label: socialmodel.SentimentNegative, Score: -0.6, Confidence: 0.9}}
	intentResult := socialmodel.IntentResult{Primary: socialmodel.IntentGuess{Intent: socialmodel.IntentComplaint, Confidence: 0.9}, Urgency: socialmodel.Urgency{Level: socialmodel.UrgencyHigh}}
	priorityScore := socialmodel.PriorityScore{Overall: 80, Components: socialmodel.PriorityComponents{BrandRisk: 0.7}, Metadata: socialmodel.PriorityMetadata{Confidence: 0.85}}
	routingDecision := socialmodel.RoutingDecision{
		Route:      socialmodel.RouteAutoResponse,
		Confidence: 0.9,
		Actions:    []socialmodel.RoutedAction{{Type: socialmodel.ActionRespond, Priority: 8, Confidence: 0.9}},
		Queue:      8,
		Monitoring: socialmodel.Monitoring{TrackingID: "trk-1"},
	}
	executions := []socialmodel.ExecutionResult{{ActionType: socialmodel.ActionRespond, Status: socialmodel.ExecutionSuccess}}

	return New(cfg, clock.NewFake(time.Date(2026, 7, 29, 11, 0, 0, 0, time.UTC)),
		stubSentiment{sentimentResult}, stubIntent{intentResult}, stubPriority{priorityScore},
		stubRouter{routingDecision}, stubExecutor{executions}, cache)
}

func TestProcessHappyPath(t *testing.T) {
	e := happyPathEngine(t, nil)
	result, err := e.Process(context.Background(), testEvent(), testBrand())
	require.NoError(t, err)
	assert.Equal(t, socialmodel.DecisionClosed, result.State)
	assert.True(t, result.ValidationPassed)
	assert.False(t, result.FromCache)
	assert.Equal(t, "evt-1", result.Output.EventID)
	assert.Equal(t, socialmodel.ActionRespond, result.Output.Decision.PrimaryAction.Type)
	assert.Len(t, result.Executions, 1)

	stages := make([]string, 0, len(result.AuditTrail))
	for _, a := range result.AuditTrail {
		stages = append(stages, a.Stage)
	}
	assert.Equal(t, []string{"ingested", "analyzed", "prioritized", "routed", "executed", "validated", "closed"}, stages)
}

func TestProcessCacheHit(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(client)
	e := happyPathEngine(t, cache)

	first, err := e.Process(context.Background(), testEvent(), testBrand())
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := e.Process(context.Background(), testEvent(), testBrand())
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Output.ID, second.Output.ID)
}

func TestProcessCapacityExceeded(t *testing.T) {
	cfg := Config{MaxConcurrentDecisions: 1, DecisionTimeout: time.Second, EnableValidation: true}
	clk := clock.NewFake(time.Now())
	sentimentResult := socialmodel.SentimentResult{}
	intentResult := socialmodel.IntentResult{}

	blocking := make(chan struct{})
	release := make(chan struct{})
	e := New(cfg, clk,
		blockingSentiment{blocking, release, sentimentResult},
		stubIntent{intentResult}, stubPriority{}, stubRouter{socialmodel.RoutingDecision{Route: socialmodel.RouteHumanReview}}, stubExecutor{}, nil)

	go func() {
		_, _ = e.Process(context.Background(), testEvent(), testBrand())
	}()
	<-blocking

	_, err := e.Process(context.Background(), testEvent(), testBrand())
	require.Error(t, err)
	var se *socialmodel.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, socialmodel.KindCapacityExceeded, se.Kind)

	close(release)
}

type blockingSentiment struct {
	blocking chan struct{}
	release  chan struct{}
	result   socialmodel.SentimentResult
}

func (b blockingSentiment) Analyze(ctx context.Context, event socialmodel.SocialEvent) socialmodel.SentimentResult {
	close(b.blocking)
	<-b.release
	return b.result
}

func TestProcessTimeout(t *testing.T) {
	cfg := Config{MaxConcurrentDecisions: 1, DecisionTimeout: 5 * time.Millisecond, EnableValidation: true}
	e := New(cfg, clock.NewFake(time.Now()),
		stubSentiment{}, slowIntent{delay: time.Second}, stubPriority{}, stubRouter{}, stubExecutor{}, nil)

	_, err := e.Process(context.Background(), testEvent(), testBrand())
	require.Error(t, err)
	var se *socialmodel.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, socialmodel.KindTimeout, se.Kind)
	assert.Equal(t, 1, e.TimeoutCount())
}

func TestProcessQualityGateFailStillReturned(t *testing.T) {
	cfg := Config{
		MaxConcurrentDecisions:   2,
		DecisionTimeout:          time.Second,
		EnableValidation:         true,
		RequireMinimumConfidence: 0.95,
	}
	sentimentResult := socialmodel.SentimentResult{Overall: socialmodel.OverallSentiment{Confidence: 0.5}}
	intentResult := socialmodel.IntentResult{Primary: socialmodel.IntentGuess{Confidence: 0.5}}
	priorityScore := socialmodel.PriorityScore{Metadata: socialmodel.PriorityMetadata{Confidence: 0.5}}
	routingDecision := socialmodel.RoutingDecision{Route: socialmodel.RouteSuggestion}

	e := New(cfg, clock.NewFake(time.Now()),
		stubSentiment{sentimentResult}, stubIntent{intentResult}, stubPriority{priorityScore},
		stubRouter{routingDecision}, stubExecutor{}, nil)

	result, err := e.Process(context.Background(), testEvent(), testBrand())
	require.NoError(t, err)
	assert.False(t, result.ValidationPassed)
	assert.Equal(t, socialmodel.DecisionQueued, result.State)
}
