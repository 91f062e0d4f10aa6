package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/engine/internal/socialmodel"
)

func thresholds() Thresholds {
	return Thresholds{AutoResponse: 0.9, Suggestion: 0.7, HumanReview: 0.4}
}

func makeInputs(confidenceSentiment, confidenceIntent, confidencePriority float64, urgency socialmodel.UrgencyLevel, primaryIntent socialmodel.Intent) (socialmodel.SocialEvent, socialmodel.SentimentResult, socialmodel.IntentResult, socialmodel.PriorityScore, socialmodel.BrandContext) {
	event := socialmodel.SocialEvent{ID: "e1", Platform: socialmodel.PlatformInstagram}
	sentiment := socialmodel.SentimentResult{Overall: socialmodel.OverallSentiment{Confidence: confidenceSentiment}}
	intentResult := socialmodel.IntentResult{
		Primary: socialmodel.IntentGuess{Intent: primaryIntent, Confidence: confidenceIntent},
		Urgency: socialmodel.Urgency{Level: urgency},
	}
	priorityScore := socialmodel.PriorityScore{Overall: 50, Metadata: socialmodel.PriorityMetadata{Confidence: confidencePriority}}
	brand := socialmodel.BrandContext{BrandID: "b1"}
	return event, sentiment, intentResult, priorityScore, brand
}

func TestRouteHighConfidenceAutoResponse(t *testing.T) {
	router := NewRouter(DefaultConfig(thresholds()))
	event, sentiment, intentResult, priorityScore, brand := makeInputs(1, 1, 1, socialmodel.UrgencyLow, socialmodel.IntentPraise)

	decision := router.Route(event, sentiment, intentResult, priorityScore, brand)
	assert.Equal(t, socialmodel.RouteAutoResponse, decision.Route)
}

func TestRouteCriticalUrgencyAlwaysHumanReview(t *testing.T) {
	router := NewRouter(DefaultConfig(thresholds()))
	event, sentiment, intentResult, priorityScore, brand := makeInputs(1, 1, 1, socialmodel.UrgencyCritical, socialmodel.IntentPraise)

	decision := router.Route(event, sentiment, intentResult, priorityScore, brand)
	assert.Equal(t, socialmodel.RouteHumanReview, decision.Route)
	assert.True(t, decision.Escalation.Required)
}

func TestRouteAutoResponseUsesIntentTemplate(t *testing.T) {
	router := NewRouter(DefaultConfig(thresholds()))
	event, sentiment, intentResult, priorityScore, brand := makeInputs(1, 1, 1, socialmodel.UrgencyLow, socialmodel.IntentPraise)

	decision := router.Route(event, sentiment, intentResult, priorityScore, brand)
	require.Equal(t, socialmodel.RouteAutoResponse, decision.Route)

	var respond *socialmodel.RoutedAction
	for i := range decision.Actions {
		if decision.Actions[i].Type == socialmodel.ActionRespond {
			respond = &decision.Actions[i]
		}
	}
	require.NotNil(t, respond)
	assert.Equal(t, "thank_you", respond.Parameters["template"])
}

func TestRouteSpamNeverAutoResponds(t *testing.T) {
	router := NewRouter(DefaultConfig(thresholds()))
	event, sentiment, intentResult, priorityScore, brand := makeInputs(1, 1, 1, socialmodel.UrgencyLow, socialmodel.IntentSpam)

	decision := router.Route(event, sentiment, intentResult, priorityScore, brand)
	assert.NotEqual(t, socialmodel.RouteAutoResponse, decision.Route)
}

func TestRouteLowConfidenceHumanReview(t *testing.T) {
	router := NewRouter(DefaultConfig(thresholds()))
	event, sentiment, intentResult, priorityScore, brand := makeInputs(0.1, 0.1, 0.1, socialmodel.UrgencyLow, socialmodel.IntentQuestion)

	decision := router.Route(event, sentiment, intentResult, priorityScore, brand)
	assert.Equal(t, socialmodel.RouteHumanReview, decision.Route)
}

func TestQueuePriorityRange(t *testing.T) {
	router := NewRouter(DefaultConfig(thresholds()))
	q, wait := router.queuePriority(95, socialmodel.UrgencyMinimal)
	assert.GreaterOrEqual(t, q, 1)
	assert.LessOrEqual(t, q, 10)
	assert.GreaterOrEqual(t, wait, 0.0)
}
