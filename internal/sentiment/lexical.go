package sentiment

import (
	"context"
	"strings"
)

// LexicalBackend is the always-available deterministic fallback: a scored
// lexicon with intensifier multipliers, a 3-word negation window, and
// punctuation emphasis, normalized by token count. It never returns an
// error, so it is the backend the ensemble weight can never drop to zero.
type LexicalBackend struct{}

func NewLexicalBackend() *LexicalBackend { return &LexicalBackend{} }

func (b *LexicalBackend) Name() string { return "lexical" }

func (b *LexicalBackend) Score(_ context.Context, text string) (ModelScore, error) {
	return ModelScore{Score: scoreText(text), Confidence: confidenceFor(text)}, nil
}

// scoreText runs the lexicon scan described in spec §4.1's fallback: walk
// tokens, apply an intensifier multiplier to the following scored word,
// negate+dampen a scored word within negationWindow tokens of a negation,
// and apply punctuation emphasis at the end.
func scoreText(text string) float64 {
	tokens := strings.Fields(preprocess(text))
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	var scoredCount int
	pendingIntensifier := 1.0
	negationDistance := negationWindow + 1

	for _, tok := range tokens {
		tok = strings.Trim(tok, ".,!?;:\"'")
		if tok == "" {
			continue
		}
		if mult, ok := intensifiers[tok]; ok {
			pendingIntensifier = mult
			continue
		}
		if negations[tok] {
			negationDistance = 0
			continue
		}
		if score, ok := lexicon[tok]; ok {
			adjusted := score * pendingIntensifier
			if negationDistance < negationWindow {
				adjusted = -adjusted * 0.7
			}
			sum += adjusted
			scoredCount++
		}
		pendingIntensifier = 1.0
		negationDistance++
	}

	if scoredCount == 0 {
		return 0
	}
	avg := sum / float64(scoredCount)

	emphasis := 1.0
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "!") || strings.Contains(trimmed, "!!") {
		emphasis = 1.2
	} else if strings.HasSuffix(trimmed, "?") {
		emphasis = 0.9
	}
	avg *= emphasis

	return clamp(avg, -1, 1)
}

// confidenceFor is low when few lexicon hits back the score, matching the
// priority scorer's separate "short text" discount — here it only reflects
// lexical coverage, not text length.
func confidenceFor(text string) float64 {
	tokens := strings.Fields(preprocess(text))
	if len(tokens) == 0 {
		return 0
	}
	hits := 0
	for _, tok := range tokens {
		tok = strings.Trim(tok, ".,!?;:\"'")
		if _, ok := lexicon[tok]; ok {
			hits++
		}
	}
	coverage := float64(hits) / float64(len(tokens))
	conf := 0.4 + coverage*0.6
	return clamp(conf, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
