// Package decision implements the Decision Engine (C7): orchestrates C1-C6
// per event with caching, a bounded concurrency pool, a pipeline deadline,
// a quality gate, and an ordered audit trail.
package decision

import "time"

// Config mirrors the operator-facing engine.* and qualityAssurance.* knobs
// from internal/config without importing that package, keeping decision's
// dependency graph one-directional (internal/config may import decision's
// sibling packages, not vice versa).
type Config struct {
	MaxConcurrentDecisions int
	DecisionTimeout        time.Duration
	EnableDecisionCaching  bool
	CacheExpiration        time.Duration

	EnableValidation         bool
	RequireMinimumConfidence float64
	EnableAuditLogging       bool
}
