package sentiment

// lexicon is a fixed scored vocabulary for the lexical fallback analyzer.
// Scores are in [-1,1]; the set is intentionally small and hand-curated
// rather than loaded from a model artifact, matching the "fixed-size scored
// lexicon" the spec calls for.
var lexicon = map[string]float64{
	"great": 0.8, "good": 0.5, "love": 0.9, "amazing": 0.9, "excellent": 0.9,
	"awesome": 0.85, "fantastic": 0.85, "wonderful": 0.8, "best": 0.8,
	"perfect": 0.85, "happy": 0.6, "thanks": 0.4, "thank": 0.4, "nice": 0.4,
	"helpful": 0.5, "recommend": 0.6, "satisfied": 0.6, "impressive": 0.6,

	"bad": -0.5, "terrible": -0.9, "awful": -0.9, "hate": -0.9, "worst": -0.85,
	"horrible": -0.85, "disappointing": -0.6, "disappointed": -0.6,
	"broken": -0.6, "useless": -0.7, "scam": -0.9, "refund": -0.3,
	"angry": -0.7, "frustrated": -0.6, "annoyed": -0.5, "slow": -0.3,
	"problem": -0.4, "issue": -0.3, "fail": -0.6, "failed": -0.6,
	"complaint": -0.5, "rude": -0.7, "unacceptable": -0.7,
}

// intensifiers scale the score of the word that immediately follows.
var intensifiers = map[string]float64{
	"very": 1.5, "extremely": 1.8, "really": 1.3, "so": 1.2,
	"super": 1.4, "incredibly": 1.6, "totally": 1.3, "absolutely": 1.7,
}

// negations flip and dampen the score of words within the negation window.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "n't": true,
	"cannot": true, "can't": true, "won't": true, "don't": true,
}

const negationWindow = 3
