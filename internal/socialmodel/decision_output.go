package socialmodel

import "time"

// BrandImpact is the coarse brand-risk bucket surfaced in the decision
// output schema.
type BrandImpact string

const (
	BrandImpactLow    BrandImpact = "low"
	BrandImpactMedium BrandImpact = "medium"
	BrandImpactHigh   BrandImpact = "high"
)

// DecisionBrandContext is the brand-context slice of the canonical decision
// output (spec §6).
type DecisionBrandContext struct {
	BrandID           string `json:"brand_id"`
	PlaybookVersion   string `json:"playbook_version"`
	MatchedPersona    string `json:"matched_persona"`
	ComplianceStatus  string `json:"compliance_status"`
}

// DecisionAnalysis is the analysis slice of the canonical decision output.
type DecisionAnalysis struct {
	Sentiment   SentimentResult `json:"sentiment"`
	Intent      IntentResult    `json:"intent"`
	Topics      []string        `json:"topics,omitempty"`
	Urgency     UrgencyLevel    `json:"urgency"`
	BrandImpact BrandImpact     `json:"brand_impact"`
}

// DecisionPart is the decision slice of the canonical decision output.
type DecisionPart struct {
	PrimaryAction         RoutedAction   `json:"primary_action"`
	SecondaryActions      []RoutedAction `json:"secondary_actions,omitempty"`
	Confidence            float64        `json:"confidence"`
	Reasoning             []string       `json:"reasoning,omitempty"`
	HumanReviewRequired   bool           `json:"human_review_required"`
	EscalationLevel       string         `json:"escalation_level,omitempty"`
}

// MonitoringOutput is the monitoring slice of the canonical decision output.
type MonitoringOutput struct {
	TrackingID       string     `json:"tracking_id"`
	KPIs             []string   `json:"kpis,omitempty"`
	FollowUpRequired bool       `json:"follow_up_required"`
	FollowUpDate     *time.Time `json:"follow_up_date,omitempty"`
}

// DecisionOutput is the stable schema consumed by downstream integrations
// (spec §6).
type DecisionOutput struct {
	ID                string                `json:"id"`
	EventID           string                `json:"event_id"`
	Timestamp         time.Time             `json:"timestamp"`
	BrandContext      DecisionBrandContext  `json:"brand_context"`
	Analysis          DecisionAnalysis      `json:"analysis"`
	Decision          DecisionPart          `json:"decision"`
	RecommendedActions []RoutedAction       `json:"recommended_actions,omitempty"`
	Webhooks          []string              `json:"webhooks,omitempty"`
	Monitoring        MonitoringOutput      `json:"monitoring"`
}

// AuditEntry is one ordered stage entry in a decision's audit trail (spec
// §4.7, §5 ordering guarantees).
type AuditEntry struct {
	Stage     string            `json:"stage"`
	Timestamp time.Time         `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

// DecisionEngineResult is the full internal result of running the pipeline
// for one event (spec §4.7), before projection to the stable DecisionOutput.
type DecisionEngineResult struct {
	Output           DecisionOutput
	State            DecisionState
	ValidationPassed bool
	FromCache        bool
	AuditTrail       []AuditEntry
	Executions       []ExecutionResult
}
