package decision

import "github.com/socialpulse/engine/internal/socialmodel"

// qualityGate implements spec §4.7's quality gate: overall confidence >=
// configured minimum; no critical execution failure on escalate; if
// auto-response then routing confidence >= 0.8. Failing gates set
// validationPassed=false but never block the decision from being returned.
func (e *Engine) qualityGate(sentimentResult socialmodel.SentimentResult, intentResult socialmodel.IntentResult, priorityScore socialmodel.PriorityScore, routingDecision socialmodel.RoutingDecision, executions []socialmodel.ExecutionResult) bool {
	if !e.cfg.EnableValidation {
		return true
	}

	overallConfidence := 0.3*sentimentResult.Overall.Confidence + 0.4*intentResult.Primary.Confidence + 0.3*priorityScore.Metadata.Confidence
	if overallConfidence < e.cfg.RequireMinimumConfidence {
		return false
	}

	for _, a := range routingDecision.Actions {
		if a.Type != socialmodel.ActionEscalate {
			continue
		}
		for _, ex := range executions {
			if ex.ActionType == socialmodel.ActionEscalate && ex.Status == socialmodel.ExecutionFailed && ex.Terminal {
				return false
			}
		}
	}

	if routingDecision.Route == socialmodel.RouteAutoResponse && routingDecision.Confidence < 0.8 {
		return false
	}

	return true
}
