package priority

import (
	"math"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// highRiskIntents are intents that, on their own, push brand risk up
// regardless of sentiment.
var highRiskIntents = map[socialmodel.Intent]float64{
	socialmodel.IntentComplaint:     0.6,
	socialmodel.IntentRefundRequest: 0.7,
	socialmodel.IntentSpam:          0.1,
}

// rawComponents computes each of the five [0,1] raw components from a fixed
// factor table over the event/sentiment/intent/brand inputs (spec §3/§4.4).
// These are intentionally unweighted: the caller applies the configured
// outer weights exactly once (see DESIGN.md Open Question #1).
func rawComponents(event socialmodel.SocialEvent, sentiment socialmodel.SentimentResult, intentResult socialmodel.IntentResult, brand socialmodel.BrandContext) socialmodel.PriorityComponents {
	return socialmodel.PriorityComponents{
		Urgency:   intentResult.Urgency.Score,
		Impact:    impactScore(event),
		Sentiment: sentimentRiskScore(sentiment),
		Reach:     reachScore(event),
		BrandRisk: brandRiskScore(sentiment, intentResult, brand),
	}
}

// impactScore blends engagement rate and raw engagement volume into a
// [0,1] score using a log-scaled volume term so virality doesn't saturate
// the score after a handful of interactions.
func impactScore(event socialmodel.SocialEvent) float64 {
	volume := float64(event.Engagement.Likes + event.Engagement.Shares*2 + event.Engagement.Comments*3)
	volumeScore := clamp01(math.Log1p(volume) / math.Log1p(10000))
	rateScore := clamp01(event.Engagement.EngagementRate)
	return clamp01(0.5*volumeScore + 0.5*rateScore)
}

// sentimentRiskScore turns a [-1,1] sentiment score into a [0,1] risk
// score: very negative sentiment is high risk, positive sentiment is low.
func sentimentRiskScore(s socialmodel.SentimentResult) float64 {
	return clamp01((1 - s.Overall.Score) / 2)
}

// reachScore combines author follower count (log-scaled) and verified
// status.
func reachScore(event socialmodel.SocialEvent) float64 {
	followerScore := clamp01(math.Log1p(float64(event.Author.FollowerCount)) / math.Log1p(1_000_000))
	if event.Author.Verified {
		followerScore = clamp01(followerScore + 0.15)
	}
	return followerScore
}

// brandRiskScore combines sentiment risk with intent-specific risk
// weights and the brand's configured sensitivity (playbook rule count acts
// as a crude proxy for how tightly the brand wants risk managed).
func brandRiskScore(s socialmodel.SentimentResult, intentResult socialmodel.IntentResult, brand socialmodel.BrandContext) float64 {
	base := sentimentRiskScore(s)
	if risk, ok := highRiskIntents[intentResult.Primary.Intent]; ok {
		base = clamp01(base*0.5 + risk*0.5)
	}
	if len(brand.Playbook.Rules) > 5 {
		base = clamp01(base * 1.1)
	}
	return base
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
