// Package intent implements the rule/ML hybrid intent classifier (C2):
// keyword/regex/context-clue scoring per category, entity extraction,
// urgency scoring, and next-action hints.
package intent

import (
	"regexp"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// categoryRule is the fixed scoring table for one intent category.
type categoryRule struct {
	Intent       socialmodel.Intent
	Keywords     []string
	Patterns     []*regexp.Regexp
	ContextClues []string
	Weight       float64
	UrgencyBase  float64
}

var categoryRules = []categoryRule{
	{
		Intent:       socialmodel.IntentComplaint,
		Keywords:     []string{"broken", "terrible", "awful", "disappointed", "worst", "refund", "not working", "issue", "problem"},
		Patterns:     []*regexp.Regexp{regexp.MustCompile(`(?i)doesn'?t work`), regexp.MustCompile(`(?i)stopped working`)},
		ContextClues: []string{"since i bought", "after updating", "every time i"},
		Weight:       1.0,
		UrgencyBase:  0.5,
	},
	{
		Intent:       socialmodel.IntentRefundRequest,
		Keywords:     []string{"refund", "money back", "return", "cancel my order", "chargeback"},
		Patterns:     []*regexp.Regexp{regexp.MustCompile(`(?i)want (a |my )?refund`), regexp.MustCompile(`(?i)give me (my )?money back`)},
		ContextClues: []string{"never arrived", "wrong item", "damaged on arrival"},
		Weight:       1.1,
		UrgencyBase:  0.6,
	},
	{
		Intent:       socialmodel.IntentPraise,
		Keywords:     []string{"love", "amazing", "great", "awesome", "fantastic", "best", "excellent"},
		Patterns:     []*regexp.Regexp{regexp.MustCompile(`(?i)highly recommend`), regexp.MustCompile(`(?i)exceeded.*expectations`)},
		ContextClues: []string{"will buy again", "five stars", "10/10"},
		Weight:       1.0,
		UrgencyBase:  0.05,
	},
	{
		Intent:       socialmodel.IntentQuestion,
		Keywords:     []string{"how do i", "can you", "does this", "is there", "what is", "where"},
		Patterns:     []*regexp.Regexp{regexp.MustCompile(`\?\s*$`), regexp.MustCompile(`(?i)^(how|what|when|where|why|can|does|is)\b`)},
		ContextClues: []string{"trying to", "not sure how", "need help"},
		Weight:       0.9,
		UrgencyBase:  0.2,
	},
	{
		Intent:       socialmodel.IntentPurchase,
		Keywords:     []string{"want to buy", "where can i purchase", "price", "in stock", "available"},
		Patterns:     []*regexp.Regexp{regexp.MustCompile(`(?i)how much (is|does)`), regexp.MustCompile(`(?i)link to (buy|purchase)`)},
		ContextClues: []string{"ready to order", "taking my money"},
		Weight:       0.95,
		UrgencyBase:  0.15,
	},
	{
		Intent:       socialmodel.IntentSpam,
		Keywords:     []string{"click here", "free money", "check my profile", "follow for follow", "dm me"},
		Patterns:     []*regexp.Regexp{regexp.MustCompile(`(?i)https?://\S+\s+https?://\S+`)},
		ContextClues: []string{"limited time offer", "work from home"},
		Weight:       0.8,
		UrgencyBase:  0.0,
	},
}

// platformIntentModifiers scales a category's accumulated score by
// (platform, intent); platforms not listed use 1.0.
var platformIntentModifiers = map[socialmodel.Platform]map[socialmodel.Intent]float64{
	socialmodel.PlatformReddit: {
		socialmodel.IntentComplaint: 1.1,
		socialmodel.IntentSpam:      0.7,
	},
	socialmodel.PlatformTikTok: {
		socialmodel.IntentPraise: 1.1,
		socialmodel.IntentSpam:   1.2,
	},
	socialmodel.PlatformYouTube: {
		socialmodel.IntentQuestion: 1.1,
	},
}

func platformModifier(platform socialmodel.Platform, intentValue socialmodel.Intent) float64 {
	byIntent, ok := platformIntentModifiers[platform]
	if !ok {
		return 1.0
	}
	if m, ok := byIntent[intentValue]; ok {
		return m
	}
	return 1.0
}
