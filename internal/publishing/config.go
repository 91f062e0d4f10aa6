package publishing

import "time"

// Config holds the publishing pool's dispatch cadence, retry backoff, and
// per-(brand,platform) throttle (spec §4.9, §5 "publishing pool").
type Config struct {
	PollInterval   time.Duration
	PageSize       int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// RatePerSecond/Burst bound the per-(brand,platform) publish rate
	// (golang.org/x/time/rate token bucket, one limiter per lane).
	RatePerSecond float64
	Burst         int

	// CircuitBreakerFailureThreshold/OpenTimeout configure the per-platform
	// gobreaker circuit guarding publisher calls.
	CircuitBreakerFailureThreshold uint32
	CircuitBreakerOpenTimeout      time.Duration
}

func DefaultConfig() Config {
	return Config{
		PollInterval:                   30 * time.Second,
		PageSize:                       100,
		RetryBaseDelay:                 time.Minute,
		RetryMaxDelay:                  time.Hour,
		RatePerSecond:                  1,
		Burst:                          3,
		CircuitBreakerFailureThreshold: 5,
		CircuitBreakerOpenTimeout:      30 * time.Second,
	}
}

// backoffFor implements the exponential backoff schedule: base 1 min, cap 1
// hour (spec §4.9 step 4).
func (c Config) backoffFor(retryCount int) time.Duration {
	delay := c.RetryBaseDelay
	for i := 0; i < retryCount; i++ {
		delay *= 2
		if delay >= c.RetryMaxDelay {
			return c.RetryMaxDelay
		}
	}
	return delay
}
