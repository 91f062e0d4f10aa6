package routing

import (
	"fmt"
	"math"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// Router implements the C5 contract.
type Router struct {
	cfg Config
}

func NewRouter(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// Route implements spec §4.5 steps 1-7.
func (r *Router) Route(event socialmodel.SocialEvent, sentiment socialmodel.SentimentResult, intentResult socialmodel.IntentResult, priorityScore socialmodel.PriorityScore, brand socialmodel.BrandContext) socialmodel.RoutingDecision {
	facts := Facts{
		Platform:       event.Platform,
		Intent:         intentResult.Primary.Intent,
		Urgency:        intentResult.Urgency.Level,
		Priority:       priorityScore.Overall,
		FollowerCount:  event.Author.FollowerCount,
		Verified:       event.Author.Verified,
		EngagementRate: event.Engagement.EngagementRate,
	}

	confidence := 0.3*sentiment.Overall.Confidence + 0.4*intentResult.Primary.Confidence + 0.3*priorityScore.Metadata.Confidence
	var reasoning []string

	for _, override := range r.cfg.ConfidenceOverrides {
		if override.Condition.Eval(facts) {
			confidence = override.NewConfidence
			reasoning = append(reasoning, fmt.Sprintf("confidence override: %s", override.Name))
		}
	}

	for _, rule := range r.cfg.AlwaysHumanReview {
		if rule.Condition.Eval(facts) {
			return r.humanReviewDecision(confidence, append(reasoning, rule.Reason), intentResult)
		}
	}

	forceNonAuto := false
	for _, rule := range r.cfg.NeverAutoRespond {
		if rule.Condition.Eval(facts) {
			forceNonAuto = true
			reasoning = append(reasoning, rule.Reason)
		}
	}

	var route socialmodel.Route
	switch {
	case !forceNonAuto && confidence >= r.cfg.Thresholds.AutoResponse:
		route = socialmodel.RouteAutoResponse
	case confidence >= r.cfg.Thresholds.Suggestion:
		route = socialmodel.RouteSuggestion
	default:
		route = socialmodel.RouteHumanReview
	}

	actions := r.actionsFor(route, intentResult)
	queue, wait := r.queuePriority(priorityScore.Overall, intentResult.Urgency.Level)

	return socialmodel.RoutingDecision{
		Route:      route,
		Confidence: confidence,
		Reasoning:  reasoning,
		Actions:    actions,
		Queue:      queue,
		Escalation: socialmodel.Escalation{Required: route == socialmodel.RouteHumanReview},
		Monitoring: socialmodel.Monitoring{
			TrackingID:      event.ID,
			FollowUpMinutes: int(wait),
		},
	}
}

func (r *Router) humanReviewDecision(confidence float64, reasoning []string, intentResult socialmodel.IntentResult) socialmodel.RoutingDecision {
	queue, wait := r.queuePriority(confidence*100, intentResult.Urgency.Level)
	return socialmodel.RoutingDecision{
		Route:      socialmodel.RouteHumanReview,
		Confidence: confidence,
		Reasoning:  reasoning,
		Actions:    r.actionsFor(socialmodel.RouteHumanReview, intentResult),
		Queue:      queue,
		Escalation: socialmodel.Escalation{Required: true, Reason: "always-human-review rule matched"},
		Monitoring: socialmodel.Monitoring{FollowUpMinutes: int(wait)},
	}
}

// responseTemplates maps a primary intent to the named response template the
// auto-response route should fill in (spec §4.5 step 6: "intent-specific
// templated responses"). Intents with no tailored copy fall back to
// "acknowledge".
var responseTemplates = map[socialmodel.Intent]string{
	socialmodel.IntentPraise:        "thank_you",
	socialmodel.IntentQuestion:      "faq_answer",
	socialmodel.IntentPurchase:      "purchase_info",
	socialmodel.IntentComplaint:     "apology_and_escalate",
	socialmodel.IntentRefundRequest: "refund_instructions",
	socialmodel.IntentSpam:          "ignore",
	socialmodel.IntentGeneral:       "acknowledge",
}

func templateFor(intentValue socialmodel.Intent) string {
	if tpl, ok := responseTemplates[intentValue]; ok {
		return tpl
	}
	return "acknowledge"
}

// actionsFor generates the action set for a route (spec §4.5 step 6).
func (r *Router) actionsFor(route socialmodel.Route, intentResult socialmodel.IntentResult) []socialmodel.RoutedAction {
	intentStr := string(intentResult.Primary.Intent)
	switch route {
	case socialmodel.RouteAutoResponse:
		return []socialmodel.RoutedAction{
			{Type: socialmodel.ActionRespond, Priority: 5, Confidence: intentResult.Primary.Confidence, Automated: true, Parameters: map[string]string{"intent": intentStr, "template": templateFor(intentResult.Primary.Intent)}},
			{Type: socialmodel.ActionMonitor, Priority: 2, Confidence: 1.0, Automated: true},
		}
	case socialmodel.RouteSuggestion:
		return []socialmodel.RoutedAction{
			{Type: socialmodel.ActionSuggest, Priority: 5, Confidence: intentResult.Primary.Confidence, Automated: false, RequiresApproval: true, Parameters: map[string]string{"intent": intentStr, "template": templateFor(intentResult.Primary.Intent)}},
		}
	default:
		return []socialmodel.RoutedAction{
			{Type: socialmodel.ActionEscalate, Priority: 8, Confidence: 1.0, Automated: false, RequiresApproval: true, Parameters: map[string]string{"intent": intentStr}},
		}
	}
}

// queuePriority implements spec §4.5 step 7.
func (r *Router) queuePriority(overall float64, urgencyLevel socialmodel.UrgencyLevel) (int, float64) {
	byOverall := int(math.Ceil(overall / 10))
	byUrgency := urgencyFloor(urgencyLevel)
	priority := byOverall
	if byUrgency > priority {
		priority = byUrgency
	}
	if priority < 1 {
		priority = 1
	}
	if priority > 10 {
		priority = 10
	}
	wait := r.cfg.QueueWaitBaseMinutes * float64(11-priority) / 10
	return priority, wait
}

func urgencyFloor(level socialmodel.UrgencyLevel) int {
	switch level {
	case socialmodel.UrgencyCritical:
		return 9
	case socialmodel.UrgencyHigh:
		return 7
	case socialmodel.UrgencyMedium:
		return 5
	case socialmodel.UrgencyLow:
		return 3
	default:
		return 1
	}
}
