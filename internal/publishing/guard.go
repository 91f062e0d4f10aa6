package publishing

import (
	"context"
	"sync"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// guardedPublisher wraps a Publisher with a per-(brand,platform) rate
// limiter and a per-platform circuit breaker, so one failing platform
// cannot starve the dispatch loop's goroutines and one noisy brand cannot
// exceed its lane's throughput (spec §5 "logical serial lane" +
// §9 rate limiting knobs).
type guardedPublisher struct {
	inner Publisher
	cfg   Config

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	breakers map[socialmodel.Platform]*gobreaker.CircuitBreaker
}

func newGuardedPublisher(inner Publisher, cfg Config) *guardedPublisher {
	return &guardedPublisher{
		inner:    inner,
		cfg:      cfg,
		limiters: make(map[string]*rate.Limiter),
		breakers: make(map[socialmodel.Platform]*gobreaker.CircuitBreaker),
	}
}

func laneKey(brandID string, platform socialmodel.Platform) string {
	return brandID + ":" + string(platform)
}

func (g *guardedPublisher) limiterFor(brandID string, platform socialmodel.Platform) *rate.Limiter {
	key := laneKey(brandID, platform)
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(g.cfg.RatePerSecond), g.cfg.Burst)
		g.limiters[key] = l
	}
	return l
}

func (g *guardedPublisher) breakerFor(platform socialmodel.Platform) *gobreaker.CircuitBreaker {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.breakers[platform]
	if !ok {
		b = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: string(platform),
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= g.cfg.CircuitBreakerFailureThreshold
			},
			Timeout: g.cfg.CircuitBreakerOpenTimeout,
		})
		g.breakers[platform] = b
	}
	return b
}

func (g *guardedPublisher) ValidateContent(ctx context.Context, content socialmodel.ScheduledContent, platform socialmodel.Platform) error {
	return g.inner.ValidateContent(ctx, content, platform)
}

func (g *guardedPublisher) Publish(ctx context.Context, content socialmodel.ScheduledContent, platform socialmodel.Platform) (socialmodel.PlatformOutcome, error) {
	if err := g.limiterFor(content.BrandID, platform).Wait(ctx); err != nil {
		return socialmodel.PlatformOutcome{}, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "rate limiter wait aborted for %s/%s", content.BrandID, platform)
	}

	breaker := g.breakerFor(platform)
	result, err := breaker.Execute(func() (interface{}, error) {
		return g.inner.Publish(ctx, content, platform)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return socialmodel.PlatformOutcome{}, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "circuit open for platform %s", platform)
		}
		return socialmodel.PlatformOutcome{}, err
	}
	return result.(socialmodel.PlatformOutcome), nil
}
