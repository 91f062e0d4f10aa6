package socialmodel

// PriorityComponents are the five raw (un-weighted) [0,1] component scores
// that feed the composite priority score. See DESIGN.md Open Question #1:
// these are reported raw, with the outer weighting applied exactly once by
// the caller.
type PriorityComponents struct {
	Urgency    float64 `json:"urgency"`
	Impact     float64 `json:"impact"`
	Sentiment  float64 `json:"sentiment"`
	Reach      float64 `json:"reach"`
	BrandRisk  float64 `json:"brand_risk"`
}

// PriorityFactor records one named contribution to the composite score, for
// observability (the spec's "contributing factors[]").
type PriorityFactor struct {
	Name         string  `json:"name"`
	Component    string  `json:"component"`
	Weight       float64 `json:"weight"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
}

// BusinessRules records the modifiers applied on top of the raw composite:
// auto-escalation, time decay, and any other applied modifier.
type BusinessRules struct {
	AutoEscalation   bool     `json:"auto_escalation"`
	TimeDecay        float64  `json:"time_decay"`
	AppliedModifiers []string `json:"applied_modifiers,omitempty"`
}

// PriorityMetadata carries observability fields that do not affect scoring.
type PriorityMetadata struct {
	EventAgeHours float64 `json:"event_age_hours"`
	Confidence    float64 `json:"confidence"`
	Version       string  `json:"version"`
}

// PriorityScore is the full output of the Priority Scorer (C4).
type PriorityScore struct {
	Overall       float64            `json:"overall"` // in [0,100]
	Components    PriorityComponents `json:"components"`
	Factors       []PriorityFactor   `json:"factors"`
	BusinessRules BusinessRules      `json:"business_rules"`
	Metadata      PriorityMetadata   `json:"metadata"`
}
