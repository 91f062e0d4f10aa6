// Package sentiment implements the ensemble sentiment analyzer (C1): a
// deterministic, pure function of (event content, platform, configuration)
// that blends one or more ModelBackend scores, applies a platform-specific
// tilt, and decomposes aspect-level sentiment.
package sentiment

import "context"

// ModelScore is one backend's opinion of a piece of text.
type ModelScore struct {
	Score      float64 // in [-1,1]
	Confidence float64 // in [0,1]
}

// ModelBackend is the pluggable seam for one sentiment model in the
// ensemble. The lexical backend is always present; a ProviderModelBackend
// may be layered on top of it for a second, independent opinion.
type ModelBackend interface {
	Name() string
	Score(ctx context.Context, text string) (ModelScore, error)
}
