package decision

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/socialpulse/engine/internal/action"
	"github.com/socialpulse/engine/internal/intent"
	"github.com/socialpulse/engine/internal/priority"
	"github.com/socialpulse/engine/internal/routing"
	"github.com/socialpulse/engine/internal/sentiment"
	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/clock"
)

// SentimentAnalyzer is the C1 seam the engine depends on.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, event socialmodel.SocialEvent) socialmodel.SentimentResult
}

// IntentClassifier is the C2 seam the engine depends on.
type IntentClassifier interface {
	Detect(ctx context.Context, event socialmodel.SocialEvent) socialmodel.IntentResult
}

// PriorityScorer is the C4 seam the engine depends on.
type PriorityScorer interface {
	Score(now time.Time, event socialmodel.SocialEvent, sentiment socialmodel.SentimentResult, intentResult socialmodel.IntentResult, brand socialmodel.BrandContext) socialmodel.PriorityScore
}

// DecisionRouter is the C5 seam the engine depends on.
type DecisionRouter interface {
	Route(event socialmodel.SocialEvent, sentiment socialmodel.SentimentResult, intentResult socialmodel.IntentResult, priority socialmodel.PriorityScore, brand socialmodel.BrandContext) socialmodel.RoutingDecision
}

// ActionExecutor is the C6 seam the engine depends on.
type ActionExecutor interface {
	Execute(ctx context.Context, event socialmodel.SocialEvent, decision socialmodel.RoutingDecision, approved bool) []socialmodel.ExecutionResult
}

var (
	_ SentimentAnalyzer = (*sentiment.Analyzer)(nil)
	_ IntentClassifier  = (*intent.Classifier)(nil)
	_ PriorityScorer    = (*priority.Scorer)(nil)
	_ DecisionRouter    = (*routing.Router)(nil)
	_ ActionExecutor    = (*action.Executor)(nil)
)

// Engine implements the C7 contract: orchestrates C1-C6 per event with
// caching, a bounded concurrency pool, a pipeline deadline, a quality gate,
// and an audit trail.
type Engine struct {
	cfg Config
	clk clock.Clock

	sentimentAnalyzer SentimentAnalyzer
	intentClassifier  IntentClassifier
	priorityScorer    PriorityScorer
	router            DecisionRouter
	executor          ActionExecutor
	cache             Cache

	sem chan struct{}

	mu           sync.Mutex
	inFlight     int
	timeoutCount int
}

// New builds a Decision Engine. cache may be nil, which disables caching
// regardless of cfg.EnableDecisionCaching.
func New(cfg Config, clk clock.Clock, sentimentAnalyzer SentimentAnalyzer, intentClassifier IntentClassifier, priorityScorer PriorityScorer, router DecisionRouter, executor ActionExecutor, cache Cache) *Engine {
	return &Engine{
		cfg:               cfg,
		clk:               clk,
		sentimentAnalyzer: sentimentAnalyzer,
		intentClassifier:  intentClassifier,
		priorityScorer:    priorityScorer,
		router:            router,
		executor:          executor,
		cache:             cache,
		sem:               make(chan struct{}, cfg.MaxConcurrentDecisions),
	}
}

// TimeoutCount reports how many decisions have failed with a pipeline
// timeout, for C11 to surface as a metric.
func (e *Engine) TimeoutCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeoutCount
}

// Process implements the C7 contract.
func (e *Engine) Process(ctx context.Context, event socialmodel.SocialEvent, brand socialmodel.BrandContext) (socialmodel.DecisionEngineResult, error) {
	if e.cfg.EnableDecisionCaching && e.cache != nil {
		if cached, ok, err := e.cache.Get(ctx, event.ID); err == nil && ok {
			return socialmodel.DecisionEngineResult{
				Output:           cached,
				State:            socialmodel.DecisionClosed,
				ValidationPassed: true,
				FromCache:        true,
			}, nil
		}
	}

	select {
	case e.sem <- struct{}{}:
		defer func() { <-e.sem }()
	default:
		return socialmodel.DecisionEngineResult{}, socialmodel.NewError(socialmodel.KindCapacityExceeded, "decision pool full: max %d concurrent decisions", e.cfg.MaxConcurrentDecisions)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.DecisionTimeout)
	defer cancel()

	audit := newAuditTrail(e.clk)
	audit.record("ingested", nil)

	var sentimentResult socialmodel.SentimentResult
	var intentResult socialmodel.IntentResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sentimentResult = e.sentimentAnalyzer.Analyze(gctx, event)
		return nil
	})
	g.Go(func() error {
		intentResult = e.intentClassifier.Detect(gctx, event)
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case <-done:
		audit.record("analyzed", map[string]string{
			"sentiment_label": string(sentimentResult.Overall.Label),
			"intent":           string(intentResult.Primary.Intent),
		})
	case <-ctx.Done():
		e.mu.Lock()
		e.timeoutCount++
		e.mu.Unlock()
		audit.record("timeout", map[string]string{"stage": "analyze"})
		return socialmodel.DecisionEngineResult{
			State:            socialmodel.DecisionNew,
			ValidationPassed: false,
			AuditTrail:       audit.entries,
		}, socialmodel.NewError(socialmodel.KindTimeout, "decision pipeline exceeded %s", e.cfg.DecisionTimeout)
	}

	priorityScore := e.priorityScorer.Score(e.clk.Now(), event, sentimentResult, intentResult, brand)
	audit.record("prioritized", map[string]string{"overall": fmt.Sprintf("%.2f", priorityScore.Overall)})

	routingDecision := e.router.Route(event, sentimentResult, intentResult, priorityScore, brand)
	audit.record("routed", map[string]string{"route": string(routingDecision.Route)})

	var executions []socialmodel.ExecutionResult
	state := socialmodel.DecisionRouted
	if routingDecision.Route == socialmodel.RouteAutoResponse {
		executions = e.executor.Execute(ctx, event, routingDecision, false)
		audit.record("executed", map[string]string{"count": fmt.Sprintf("%d", len(executions))})
		state = socialmodel.DecisionExecuted
	} else {
		state = socialmodel.DecisionQueued
	}

	validationPassed := e.qualityGate(sentimentResult, intentResult, priorityScore, routingDecision, executions)
	audit.record("validated", map[string]string{"passed": fmt.Sprintf("%t", validationPassed)})

	output := projectOutput(e.clk.Now(), event, brand, sentimentResult, intentResult, priorityScore, routingDecision)
	audit.record("closed", nil)

	if e.cfg.EnableDecisionCaching && e.cache != nil {
		_ = e.cache.Set(ctx, event.ID, output, e.cfg.CacheExpiration)
	}

	if state == socialmodel.DecisionExecuted {
		state = socialmodel.DecisionClosed
	}

	return socialmodel.DecisionEngineResult{
		Output:           output,
		State:            state,
		ValidationPassed: validationPassed,
		FromCache:        false,
		AuditTrail:       audit.entries,
		Executions:       executions,
	}, nil
}
