// Package topics implements the DBSCAN-based topic/trend engine (C3):
// event clustering, trending/spike detection, and windowed eviction.
package topics

import (
	"math"
	"regexp"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/socialpulse/engine/internal/socialmodel"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// tokenize lowercases and splits text into alphanumeric tokens.
func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Vectorizer builds the feature vector for one event: TF-IDF weights of
// single-word tokens over a configured vocabulary, one-hot platform, cyclic
// hour/day encodings, and log-scaled engagement (spec §4.3). A multi-word
// vocabulary entry never matches a token, so its weight is always zero.
type Vectorizer struct {
	Vocabulary []string
	IDF        map[string]float64
}

// NewVectorizer builds a vectorizer with uniform IDF weights over the given
// vocabulary; callers that maintain a corpus can supply real IDF weights via
// SetIDF.
func NewVectorizer(vocabulary []string) *Vectorizer {
	idf := make(map[string]float64, len(vocabulary))
	for _, term := range vocabulary {
		idf[term] = 1.0
	}
	return &Vectorizer{Vocabulary: vocabulary, IDF: idf}
}

// SetIDF replaces the vectorizer's per-term IDF weights, typically
// recomputed as log(totalEvents / docFrequency(term)) over a rolling
// corpus.
func (v *Vectorizer) SetIDF(idf map[string]float64) {
	v.IDF = idf
}

// Dimension returns the length of vectors this vectorizer produces.
func (v *Vectorizer) Dimension() int {
	return len(v.Vocabulary) + len(socialmodel.Platforms) + 5 // hourSin, hourCos, daySin, dayCos, engagement
}

// Vectorize builds the full feature vector for one event.
func (v *Vectorizer) Vectorize(event socialmodel.SocialEvent) []float64 {
	tokens := tokenize(event.Content.Text)
	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	total := float64(len(tokens))

	vec := make([]float64, 0, v.Dimension()+1)

	for _, term := range v.Vocabulary {
		var weight float64
		if total > 0 {
			freq := tf[term] / total
			weight = freq * v.IDF[term]
		}
		vec = append(vec, weight)
	}

	for _, p := range socialmodel.Platforms {
		if event.Platform == p {
			vec = append(vec, 1.0)
		} else {
			vec = append(vec, 0.0)
		}
	}

	hour := float64(event.Timestamp.Hour())
	day := float64(event.Timestamp.Weekday())
	vec = append(vec,
		math.Sin(2*math.Pi*hour/24),
		math.Cos(2*math.Pi*hour/24),
		math.Sin(2*math.Pi*day/7),
		math.Cos(2*math.Pi*day/7),
	)

	engagementTotal := float64(event.Engagement.Likes + event.Engagement.Shares + event.Engagement.Comments + event.Engagement.Views)
	vec = append(vec, math.Log1p(engagementTotal))

	return vec
}

// cosineDistance returns 1 - cosine similarity between a and b.
func cosineDistance(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1
	}
	dot := floats.Dot(a, b)
	sim := dot / (na * nb)
	if sim > 1 {
		sim = 1
	}
	if sim < -1 {
		sim = -1
	}
	return 1 - sim
}

// euclideanDistance returns the L2 distance between a and b.
func euclideanDistance(a, b []float64) float64 {
	diff := make([]float64, len(a))
	copy(diff, a)
	floats.Sub(diff, b)
	return floats.Norm(diff, 2)
}

// jaccardTokenDistance returns the Jaccard distance (1 - similarity) between the
// token sets of two texts.
func jaccardTokenDistance(aText, bText string) float64 {
	return 1 - jaccardSimilarity(tokenSet(aText), tokenSet(bText))
}

func tokenSet(text string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, t := range tokenize(text) {
		set[t] = struct{}{}
	}
	return set
}

func jaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func jaccardSliceSimilarity(a, b []string) float64 {
	setA := map[string]struct{}{}
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := map[string]struct{}{}
	for _, v := range b {
		setB[v] = struct{}{}
	}
	return jaccardSimilarity(setA, setB)
}

// eventAge returns how long ago (relative to now) the event occurred.
func eventAge(now time.Time, e socialmodel.SocialEvent) time.Duration {
	return now.Sub(e.Timestamp)
}
