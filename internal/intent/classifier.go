package intent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// ModelBackend is the optional provider-backed classifier seam (spec
// SPEC_FULL §4.2). When configured it is attempted first; the rule engine
// below is always available and is the only path exercised without one.
type ModelBackend interface {
	Classify(ctx context.Context, text string) (socialmodel.IntentGuess, error)
}

// Classifier runs the rule-engine scoring described in spec §4.2, with an
// optional provider-backed ModelBackend attempted first.
type Classifier struct {
	provider ModelBackend
}

// New builds a Classifier. provider may be nil, in which case the rule
// engine is the only path ever exercised.
func New(provider ModelBackend) *Classifier {
	return &Classifier{provider: provider}
}

// Detect implements the C2 contract: deterministic given (text, platform)
// for the rule-engine path; the provider path is attempted first when
// configured and its failure sets FallbackUsed.
func (c *Classifier) Detect(ctx context.Context, event socialmodel.SocialEvent) socialmodel.IntentResult {
	text := event.Content.Text
	fallbackUsed := false

	var guesses []socialmodel.IntentGuess

	if c.provider != nil {
		guess, err := c.provider.Classify(ctx, text)
		if err == nil {
			guesses = []socialmodel.IntentGuess{guess}
		} else {
			fallbackUsed = true
		}
	}

	// The rule engine only runs when there is no successful provider
	// result: a configured provider that succeeds is authoritative, it is
	// never outvoted by rule-engine confidence.
	if guesses == nil {
		guesses = scoreAllCategories(text, event.Platform)
	}

	sort.SliceStable(guesses, func(i, j int) bool { return guesses[i].Confidence > guesses[j].Confidence })

	result := socialmodel.IntentResult{FallbackUsed: fallbackUsed}
	if len(guesses) > 0 {
		result.Primary = guesses[0]
	} else {
		result.Primary = socialmodel.IntentGuess{Intent: socialmodel.IntentGeneral, Confidence: 0}
	}
	if len(guesses) > 1 && guesses[1].Confidence > 0.3 {
		second := guesses[1]
		result.Secondary = &second
	}

	entities := extractEntities(text)
	result.Entities = entities
	result.Urgency = computeUrgency(text, result.Primary.Intent, entities, event.Platform)
	result.NextActions = nextActionsFor(result.Primary.Intent, result.Urgency)

	return result
}

// scoreAllCategories runs the keyword/regex/context-clue formula for every
// fixed category and returns a guess per category, including the implicit
// "general" catch-all when nothing scores above zero.
func scoreAllCategories(text string, platform socialmodel.Platform) []socialmodel.IntentGuess {
	lower := strings.ToLower(text)
	guesses := make([]socialmodel.IntentGuess, 0, len(categoryRules)+1)
	anyPositive := false

	for _, rule := range categoryRules {
		var reasoning []string
		var score float64

		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				score += 0.3
				reasoning = append(reasoning, fmt.Sprintf("keyword:%s", kw))
			}
		}
		for _, pat := range rule.Patterns {
			if pat.MatchString(text) {
				score += 0.4
				reasoning = append(reasoning, fmt.Sprintf("pattern:%s", pat.String()))
			}
		}
		for _, clue := range rule.ContextClues {
			if strings.Contains(lower, clue) {
				score += 0.2
				reasoning = append(reasoning, fmt.Sprintf("context:%s", clue))
			}
		}

		score *= rule.Weight
		score *= platformModifier(platform, rule.Intent)
		score = clamp01(score)

		if score > 0 {
			anyPositive = true
		}

		guesses = append(guesses, socialmodel.IntentGuess{
			Intent:     rule.Intent,
			Confidence: score,
			Reasoning:  reasoning,
		})
	}

	if !anyPositive {
		guesses = append(guesses, socialmodel.IntentGuess{Intent: socialmodel.IntentGeneral, Confidence: 0.5})
	}

	return guesses
}
