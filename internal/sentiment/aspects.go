package sentiment

import (
	"strings"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// aspectSentiments finds textual mentions of each configured aspect (aspect
// name or one of its synonyms), extracts a +/-WindowSize character window
// around each mention, scores the window with the lexical analyzer, and
// emits a result only for aspects with at least one mention.
func aspectSentiments(originalText string, cfg Config) []socialmodel.AspectSentiment {
	lower := strings.ToLower(originalText)
	var results []socialmodel.AspectSentiment

	for _, aspect := range cfg.Aspects {
		terms := append([]string{aspect.Name}, aspect.Synonyms...)
		var windows []string
		mentions := 0

		for _, term := range terms {
			term = strings.ToLower(term)
			start := 0
			for {
				idx := strings.Index(lower[start:], term)
				if idx < 0 {
					break
				}
				pos := start + idx
				lo := pos - aspect.WindowSize
				if lo < 0 {
					lo = 0
				}
				hi := pos + len(term) + aspect.WindowSize
				if hi > len(originalText) {
					hi = len(originalText)
				}
				windows = append(windows, originalText[lo:hi])
				mentions++
				start = pos + len(term)
				if start >= len(lower) {
					break
				}
			}
		}

		if mentions == 0 {
			continue
		}

		combined := strings.Join(windows, " ")
		results = append(results, socialmodel.AspectSentiment{
			Aspect:   aspect.Name,
			Score:    scoreText(combined),
			Mentions: mentions,
			Window:   combined,
		})
	}

	return results
}
