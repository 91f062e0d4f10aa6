package decision

import (
	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/clock"
)

// auditTrail accumulates strictly stage-ordered audit entries for one
// decision (spec §5 ordering guarantee: "within a single decision, audit
// entries are strictly ordered by pipeline stage").
type auditTrail struct {
	clk     clock.Clock
	entries []socialmodel.AuditEntry
}

func newAuditTrail(clk clock.Clock) *auditTrail {
	return &auditTrail{clk: clk}
}

func (a *auditTrail) record(stage string, details map[string]string) {
	a.entries = append(a.entries, socialmodel.AuditEntry{
		Stage:     stage,
		Timestamp: a.clk.Now(),
		Details:   details,
	})
}
