// Package priority implements the weighted composite priority scorer (C4):
// raw per-component scores, a single outer weighting (see DESIGN.md Open
// Question #1), multiplicative time decay, and auto-escalation.
package priority

// Config holds C4's own tuning knobs. The five component weights live in
// internal/config.PriorityWeights (an operator-facing §6 knob); everything
// here is the algorithmic detail the spec describes but does not expose.
type Config struct {
	DecayBase         float64
	DecayPeriodHours  float64
	MinScore          float64
	MaxScore          float64
	EscalationThreshold float64 // post-decay overall, in [0,100]
}

// DefaultConfig returns the baseline tuning used when no overrides are
// supplied.
func DefaultConfig() Config {
	return Config{
		DecayBase:           0.9,
		DecayPeriodHours:    6,
		MinScore:            0,
		MaxScore:            100,
		EscalationThreshold: 80,
	}
}
