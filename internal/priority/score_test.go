package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/socialpulse/engine/internal/socialmodel"
)

func baseInputs() (socialmodel.SocialEvent, socialmodel.SentimentResult, socialmodel.IntentResult, socialmodel.BrandContext) {
	event := socialmodel.SocialEvent{
		ID:        "e1",
		Platform:  socialmodel.PlatformInstagram,
		Timestamp: time.Now(),
		Content:   socialmodel.Content{Text: "a fairly long complaint about my order arriving broken"},
		Author:    socialmodel.Author{FollowerCount: 500},
		Engagement: socialmodel.Engagement{Likes: 10, Shares: 2, Comments: 3, EngagementRate: 0.2},
	}
	sentiment := socialmodel.SentimentResult{Overall: socialmodel.OverallSentiment{Score: -0.4, Confidence: 0.8}}
	intentResult := socialmodel.IntentResult{
		Primary: socialmodel.IntentGuess{Intent: socialmodel.IntentComplaint, Confidence: 0.7},
		Urgency: socialmodel.Urgency{Score: 0.5},
	}
	brand := socialmodel.BrandContext{BrandID: "b1"}
	return event, sentiment, intentResult, brand
}

func equalWeights() Weights {
	return Weights{Urgency: 0.2, Impact: 0.2, Sentiment: 0.2, Reach: 0.2, BrandRisk: 0.2}
}

func TestScoreMonotoneInUrgency(t *testing.T) {
	scorer := NewScorer(DefaultConfig(), equalWeights())
	now := time.Now()
	event, sentiment, intentResult, brand := baseInputs()

	low := intentResult
	low.Urgency.Score = 0.2
	high := intentResult
	high.Urgency.Score = 0.9

	lowScore := scorer.Score(now, event, sentiment, low, brand)
	highScore := scorer.Score(now, event, sentiment, high, brand)

	assert.GreaterOrEqual(t, highScore.Overall, lowScore.Overall)
}

func TestTimeDecayReducesScore(t *testing.T) {
	cfg := DefaultConfig()
	scorer := NewScorer(cfg, equalWeights())
	event, sentiment, intentResult, brand := baseInputs()

	fresh := scorer.Score(event.Timestamp, event, sentiment, intentResult, brand)
	later := scorer.Score(event.Timestamp.Add(24*time.Hour), event, sentiment, intentResult, brand)

	assert.Less(t, later.Overall, fresh.Overall)
	assert.Less(t, later.BusinessRules.TimeDecay, fresh.BusinessRules.TimeDecay)
}

func TestAutoEscalationFlag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EscalationThreshold = 0 // force escalation for this test
	scorer := NewScorer(cfg, equalWeights())
	event, sentiment, intentResult, brand := baseInputs()

	score := scorer.Score(event.Timestamp, event, sentiment, intentResult, brand)
	assert.True(t, score.BusinessRules.AutoEscalation)
}

func TestConfidenceDiscountedForShortTextAndZeroFollowers(t *testing.T) {
	scorer := NewScorer(DefaultConfig(), equalWeights())
	event, sentiment, intentResult, brand := baseInputs()
	event.Content.Text = "bad"
	event.Author.FollowerCount = 0

	score := scorer.Score(event.Timestamp, event, sentiment, intentResult, brand)
	assert.Contains(t, score.BusinessRules.AppliedModifiers, "short-text-discount")
	assert.Contains(t, score.BusinessRules.AppliedModifiers, "zero-followers-discount")
}
