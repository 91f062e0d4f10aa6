// Package routing implements the confidence-thresholded decision router
// (C5): overall confidence composition, structured override rules, and
// threshold-based route/action/queue generation.
package routing

import (
	"github.com/socialpulse/engine/internal/socialmodel"
)

// Facts is the set of fields a Condition can evaluate against (spec
// DESIGN.md Open Question #3: structured expression tree, not an
// eval-string).
type Facts struct {
	Platform       socialmodel.Platform
	Intent         socialmodel.Intent
	Urgency        socialmodel.UrgencyLevel
	Priority       float64
	FollowerCount  int
	Verified       bool
	EngagementRate float64
}

// Condition is a node in the structured routing-override expression tree.
// Every operator is its own concrete type implementing Eval, so an invalid
// expression cannot be constructed once past config loading — there is no
// string parser and nothing is ever eval'd.
type Condition interface {
	Eval(f Facts) bool
}

type Eq struct{ Field, Value string }
type Neq struct{ Field, Value string }
type Lt struct {
	Field string
	Value float64
}
type Lte struct {
	Field string
	Value float64
}
type Gt struct {
	Field string
	Value float64
}
type Gte struct {
	Field string
	Value float64
}
type In struct {
	Field  string
	Values []string
}
type And struct{ Of []Condition }
type Or struct{ Of []Condition }
type Not struct{ Cond Condition }

func (c Eq) Eval(f Facts) bool  { return fieldString(f, c.Field) == c.Value }
func (c Neq) Eval(f Facts) bool { return fieldString(f, c.Field) != c.Value }
func (c Lt) Eval(f Facts) bool  { return fieldFloat(f, c.Field) < c.Value }
func (c Lte) Eval(f Facts) bool { return fieldFloat(f, c.Field) <= c.Value }
func (c Gt) Eval(f Facts) bool  { return fieldFloat(f, c.Field) > c.Value }
func (c Gte) Eval(f Facts) bool { return fieldFloat(f, c.Field) >= c.Value }

func (c In) Eval(f Facts) bool {
	v := fieldString(f, c.Field)
	for _, candidate := range c.Values {
		if v == candidate {
			return true
		}
	}
	return false
}

func (c And) Eval(f Facts) bool {
	for _, cond := range c.Of {
		if !cond.Eval(f) {
			return false
		}
	}
	return true
}

func (c Or) Eval(f Facts) bool {
	for _, cond := range c.Of {
		if cond.Eval(f) {
			return true
		}
	}
	return false
}

func (c Not) Eval(f Facts) bool { return !c.Cond.Eval(f) }

func fieldString(f Facts, field string) string {
	switch field {
	case "platform":
		return string(f.Platform)
	case "intent":
		return string(f.Intent)
	case "urgency":
		return string(f.Urgency)
	case "verified":
		if f.Verified {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func fieldFloat(f Facts, field string) float64 {
	switch field {
	case "priority":
		return f.Priority
	case "followerCount":
		return float64(f.FollowerCount)
	case "engagementRate":
		return f.EngagementRate
	default:
		return 0
	}
}
