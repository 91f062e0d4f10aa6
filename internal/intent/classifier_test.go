package intent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/socialpulse/engine/internal/socialmodel"
)

func newEvent(text string, platform socialmodel.Platform) socialmodel.SocialEvent {
	return socialmodel.SocialEvent{
		ID:        "evt-1",
		Platform:  platform,
		Timestamp: time.Now(),
		Content:   socialmodel.Content{Text: text},
	}
}

func TestDetectComplaintWithRefund(t *testing.T) {
	c := New(nil)
	r := c.Detect(context.Background(), newEvent("This product is broken and I want a refund right now!", socialmodel.PlatformReddit))

	assert.Contains(t, []socialmodel.Intent{socialmodel.IntentComplaint, socialmodel.IntentRefundRequest}, r.Primary.Intent)
	assert.False(t, r.FallbackUsed)
	assert.GreaterOrEqual(t, r.Urgency.Score, 0.4)
}

func TestDetectQuestionExtractsEmail(t *testing.T) {
	c := New(nil)
	r := c.Detect(context.Background(), newEvent("How do I contact support? email me at help@example.com", socialmodel.PlatformYouTube))

	assert.Equal(t, socialmodel.IntentQuestion, r.Primary.Intent)
	found := false
	for _, e := range r.Entities {
		if e.Type == socialmodel.EntityEmail {
			found = true
			assert.Equal(t, "help@example.com", e.Value)
		}
	}
	assert.True(t, found)
}

func TestSecondaryOnlyAboveThreshold(t *testing.T) {
	c := New(nil)
	r := c.Detect(context.Background(), newEvent("just a neutral post with nothing special", socialmodel.PlatformRSS))

	if r.Secondary != nil {
		assert.Greater(t, r.Secondary.Confidence, 0.3)
	}
}

func TestProviderFallbackUsedOnError(t *testing.T) {
	c := New(failingProvider{})
	r := c.Detect(context.Background(), newEvent("I love this!", socialmodel.PlatformTikTok))

	assert.True(t, r.FallbackUsed)
	assert.Equal(t, socialmodel.IntentPraise, r.Primary.Intent)
}

func TestSuccessfulProviderNotOutvotedByRuleEngine(t *testing.T) {
	// The rule engine would score this text as a strong Complaint; a
	// successful provider result must still win.
	c := New(succeedingProvider{guess: socialmodel.IntentGuess{Intent: socialmodel.IntentGeneral, Confidence: 0.2}})
	r := c.Detect(context.Background(), newEvent("This product is broken and I want a refund right now!", socialmodel.PlatformReddit))

	assert.False(t, r.FallbackUsed)
	assert.Equal(t, socialmodel.IntentGeneral, r.Primary.Intent)
	assert.Nil(t, r.Secondary)
}

type failingProvider struct{}

func (failingProvider) Classify(_ context.Context, _ string) (socialmodel.IntentGuess, error) {
	return socialmodel.IntentGuess{}, assertErr
}

type succeedingProvider struct {
	guess socialmodel.IntentGuess
}

func (p succeedingProvider) Classify(_ context.Context, _ string) (socialmodel.IntentGuess, error) {
	return p.guess, nil
}

var assertErr = errDummy("provider unavailable")

type errDummy string

func (e errDummy) Error() string { return string(e) }

func TestUrgencyReachesCriticalForCanonicalComplaintScenario(t *testing.T) {
	c := New(nil)
	r := c.Detect(context.Background(), newEvent(
		"This is completely broken, I need a refund immediately!",
		socialmodel.PlatformFacebook,
	))

	assert.Equal(t, socialmodel.IntentComplaint, r.Primary.Intent)
	assert.Equal(t, socialmodel.UrgencyCritical, r.Urgency.Level)
	assert.GreaterOrEqual(t, r.Urgency.Score, 0.8)
}

func TestUrgencyLevelBuckets(t *testing.T) {
	tests := []struct {
		score float64
		want  socialmodel.UrgencyLevel
	}{
		{0.0, socialmodel.UrgencyMinimal},
		{0.25, socialmodel.UrgencyLow},
		{0.45, socialmodel.UrgencyMedium},
		{0.65, socialmodel.UrgencyHigh},
		{0.85, socialmodel.UrgencyCritical},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, levelFor(tc.score))
	}
}
