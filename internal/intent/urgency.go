package intent

import (
	"strings"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// timeKeywordImpacts are urgency contributions from phrases implying a
// deadline or already-elapsed wait.
var timeKeywordImpacts = map[string]float64{
	"right now":     0.3,
	"asap":          0.3,
	"immediately":   0.3,
	"urgent":        0.3,
	"today":         0.15,
	"still waiting": 0.2,
	"for days":      0.2,
	"for weeks":     0.25,
	"deadline":      0.2,
}

// emotionImpacts are urgency contributions from emotionally charged words
// independent of category.
var emotionImpacts = map[string]float64{
	"furious":     0.3,
	"livid":       0.3,
	"desperate":   0.25,
	"devastated":  0.2,
	"frustrated":  0.15,
	"disgusted":   0.2,
	"unacceptable": 0.2,
}

// urgencyPlatformModifiers scales the final urgency score by platform;
// platforms not listed use 1.0.
var urgencyPlatformModifiers = map[socialmodel.Platform]float64{
	socialmodel.PlatformReddit: 1.1,
	socialmodel.PlatformRSS:    0.8,
}

// computeUrgency implements spec §4.2's urgency formula: base-by-intent +
// keyword/emotion impacts + a time-entity bonus, platform-scaled and
// clamped to [0,1], then bucketed into one of five levels.
func computeUrgency(text string, primaryIntent socialmodel.Intent, entities []socialmodel.Entity, platform socialmodel.Platform) socialmodel.Urgency {
	lower := strings.ToLower(text)
	var factors []string

	base := baseUrgencyFor(primaryIntent)
	score := base
	if base > 0 {
		factors = append(factors, "intent-base")
	}

	for phrase, impact := range timeKeywordImpacts {
		if strings.Contains(lower, phrase) {
			score += impact
			factors = append(factors, "time-keyword:"+phrase)
		}
	}
	for word, impact := range emotionImpacts {
		if strings.Contains(lower, word) {
			score += impact
			factors = append(factors, "emotion:"+word)
		}
	}
	if hasTimeEntity(entities) {
		score += 0.2
		factors = append(factors, "time-entity-present")
	}

	if mod, ok := urgencyPlatformModifiers[platform]; ok {
		score *= mod
	}
	score = clamp01(score)

	return socialmodel.Urgency{
		Level:   levelFor(score),
		Score:   score,
		Factors: factors,
	}
}

func baseUrgencyFor(intentValue socialmodel.Intent) float64 {
	for _, rule := range categoryRules {
		if rule.Intent == intentValue {
			return rule.UrgencyBase
		}
	}
	return 0.1
}

func levelFor(score float64) socialmodel.UrgencyLevel {
	switch {
	case score >= 0.8:
		return socialmodel.UrgencyCritical
	case score >= 0.6:
		return socialmodel.UrgencyHigh
	case score >= 0.4:
		return socialmodel.UrgencyMedium
	case score >= 0.2:
		return socialmodel.UrgencyLow
	default:
		return socialmodel.UrgencyMinimal
	}
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
