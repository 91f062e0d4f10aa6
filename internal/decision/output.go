package decision

import (
	"time"

	"github.com/google/uuid"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// projectOutput builds the stable DecisionOutput schema consumed by
// downstream integrations (spec §6).
func projectOutput(now time.Time, event socialmodel.SocialEvent, brand socialmodel.BrandContext, sentimentResult socialmodel.SentimentResult, intentResult socialmodel.IntentResult, priorityScore socialmodel.PriorityScore, routingDecision socialmodel.RoutingDecision) socialmodel.DecisionOutput {
	var primary socialmodel.RoutedAction
	var secondary []socialmodel.RoutedAction
	if len(routingDecision.Actions) > 0 {
		primary = routingDecision.Actions[0]
		secondary = routingDecision.Actions[1:]
	}

	return socialmodel.DecisionOutput{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		Timestamp: now,
		BrandContext: socialmodel.DecisionBrandContext{
			BrandID:          brand.BrandID,
			PlaybookVersion:  brand.Playbook.Version,
			MatchedPersona:   brand.DefaultPersona().ID,
			ComplianceStatus: "ok",
		},
		Analysis: socialmodel.DecisionAnalysis{
			Sentiment:   sentimentResult,
			Intent:      intentResult,
			Urgency:     intentResult.Urgency.Level,
			BrandImpact: brandImpactFor(priorityScore),
		},
		Decision: socialmodel.DecisionPart{
			PrimaryAction:       primary,
			SecondaryActions:    secondary,
			Confidence:          routingDecision.Confidence,
			Reasoning:           routingDecision.Reasoning,
			HumanReviewRequired: routingDecision.Route == socialmodel.RouteHumanReview,
			EscalationLevel:     escalationLevelFor(routingDecision),
		},
		RecommendedActions: routingDecision.Actions,
		Monitoring: socialmodel.MonitoringOutput{
			TrackingID:       routingDecision.Monitoring.TrackingID,
			FollowUpRequired: routingDecision.Escalation.Required,
			FollowUpDate:     followUpDate(now, routingDecision),
		},
	}
}

func brandImpactFor(p socialmodel.PriorityScore) socialmodel.BrandImpact {
	switch {
	case p.Components.BrandRisk >= 0.66:
		return socialmodel.BrandImpactHigh
	case p.Components.BrandRisk >= 0.33:
		return socialmodel.BrandImpactMedium
	default:
		return socialmodel.BrandImpactLow
	}
}

func escalationLevelFor(r socialmodel.RoutingDecision) string {
	if !r.Escalation.Required {
		return ""
	}
	if r.Queue >= 8 {
		return "critical"
	}
	return "standard"
}

func followUpDate(now time.Time, r socialmodel.RoutingDecision) *time.Time {
	if r.Monitoring.FollowUpMinutes <= 0 {
		return nil
	}
	t := now.Add(time.Duration(r.Monitoring.FollowUpMinutes) * time.Minute)
	return &t
}
