package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/socialpulse/engine/internal/socialmodel"
)

var entityPatterns = []struct {
	Type    socialmodel.EntityType
	Pattern *regexp.Regexp
}{
	{socialmodel.EntityEmail, regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)},
	{socialmodel.EntityPrice, regexp.MustCompile(`\$\s?\d+(\.\d{2})?|\d+(\.\d{2})?\s?(usd|dollars)`)},
	{socialmodel.EntityTime, regexp.MustCompile(`(?i)\b(\d{1,2}(:\d{2})?\s?(am|pm)|today|tomorrow|yesterday|tonight|this (morning|afternoon|evening|week|weekend)|\d+\s?(days?|hours?|weeks?)\s+ago)\b`)},
	{socialmodel.EntityProduct, regexp.MustCompile(`(?i)\b(model\s?[a-z0-9]+|version\s?\d+(\.\d+)?|pro|plus|max|mini)\b`)},
}

// extractEntities scans text against a fixed pattern set per entity type and
// returns every match with its byte offset. Matches are grouped by type in
// the order email, price, time, product, and are left-to-right within each
// type.
func extractEntities(text string) []socialmodel.Entity {
	var entities []socialmodel.Entity
	for _, ep := range entityPatterns {
		for _, loc := range ep.Pattern.FindAllStringIndex(text, -1) {
			value := text[loc[0]:loc[1]]
			entities = append(entities, socialmodel.Entity{
				Type:       ep.Type,
				Value:      value,
				Confidence: entityConfidence(ep.Type, value),
				Position:   loc[0],
			})
		}
	}
	return entities
}

func entityConfidence(t socialmodel.EntityType, value string) float64 {
	switch t {
	case socialmodel.EntityEmail:
		return 0.95
	case socialmodel.EntityPrice:
		if _, err := strconv.ParseFloat(strings.Trim(value, "$ "), 64); err == nil {
			return 0.9
		}
		return 0.7
	case socialmodel.EntityTime:
		return 0.75
	default:
		return 0.6
	}
}

func hasTimeEntity(entities []socialmodel.Entity) bool {
	for _, e := range entities {
		if e.Type == socialmodel.EntityTime {
			return true
		}
	}
	return false
}
