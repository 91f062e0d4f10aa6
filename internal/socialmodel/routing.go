package socialmodel

// Route is the routed decision for an event.
type Route string

const (
	RouteAutoResponse Route = "auto-response"
	RouteSuggestion   Route = "suggestion"
	RouteHumanReview  Route = "human-review"
)

// ActionType enumerates the kinds of action a routing decision can request.
type ActionType string

const (
	ActionRespond  ActionType = "RESPOND"
	ActionMonitor  ActionType = "MONITOR"
	ActionEscalate ActionType = "ESCALATE"
	ActionSuggest  ActionType = "SUGGEST"
)

// RoutedAction is one action produced by the router for the executor.
type RoutedAction struct {
	Type             ActionType             `json:"type"`
	Priority         int                    `json:"priority"` // 1-10
	Confidence       float64                `json:"confidence"`
	Automated        bool                   `json:"automated"`
	RequiresApproval bool                   `json:"requires_approval"`
	Parameters       map[string]string      `json:"parameters,omitempty"`
}

// Escalation describes an escalation attached to a routing decision.
type Escalation struct {
	Required bool   `json:"required"`
	Reason   string `json:"reason,omitempty"`
	Queue    string `json:"queue,omitempty"`
}

// Monitoring describes follow-up tracking attached to a routing decision.
type Monitoring struct {
	TrackingID      string `json:"tracking_id"`
	FollowUpMinutes int    `json:"follow_up_minutes,omitempty"`
}

// RoutingDecision is the full output of the Decision Router (C5).
type RoutingDecision struct {
	Route      Route          `json:"route"`
	Confidence float64        `json:"confidence"`
	Reasoning  []string       `json:"reasoning,omitempty"`
	Actions    []RoutedAction `json:"actions"`
	Queue      int            `json:"queue"` // 1-10
	Escalation Escalation     `json:"escalation"`
	Monitoring Monitoring     `json:"monitoring"`
}

// DecisionState is the per-decision state machine (spec §4.5).
type DecisionState string

const (
	DecisionNew      DecisionState = "new"
	DecisionAnalyzed DecisionState = "analyzed"
	DecisionRouted   DecisionState = "routed"
	DecisionExecuted DecisionState = "executed"
	DecisionQueued   DecisionState = "queued"
	DecisionClosed   DecisionState = "closed"
)

// ExecutionStatus is the outcome of one executed action (C6).
type ExecutionStatus string

const (
	ExecutionSuccess ExecutionStatus = "success"
	ExecutionFailed  ExecutionStatus = "failed"
	ExecutionSkipped ExecutionStatus = "skipped"
)

// ExecutionResult is the result of executing one RoutedAction.
type ExecutionResult struct {
	ActionType ActionType      `json:"action_type"`
	Status     ExecutionStatus `json:"status"`
	Detail     string          `json:"detail,omitempty"`
	Terminal   bool            `json:"terminal"`
}
