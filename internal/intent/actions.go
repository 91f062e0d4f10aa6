package intent

import "github.com/socialpulse/engine/internal/socialmodel"

// nextActionTable is the fixed intent-dispatched table of follow-up hints
// (spec §4.2). Priority is adjusted +/-1 by urgency level afterward.
var nextActionTable = map[socialmodel.Intent][]socialmodel.NextAction{
	socialmodel.IntentComplaint:      {{Action: "acknowledge_and_escalate", Priority: 6}, {Action: "offer_resolution", Priority: 5}},
	socialmodel.IntentRefundRequest:  {{Action: "route_to_refund_queue", Priority: 7}},
	socialmodel.IntentPraise:         {{Action: "thank_and_amplify", Priority: 2}},
	socialmodel.IntentQuestion:       {{Action: "answer_with_faq", Priority: 4}, {Action: "route_to_support", Priority: 3}},
	socialmodel.IntentPurchase:       {{Action: "send_purchase_link", Priority: 5}},
	socialmodel.IntentSpam:           {{Action: "flag_for_moderation", Priority: 1}},
	socialmodel.IntentGeneral:        {{Action: "monitor", Priority: 2}},
}

// nextActionsFor clones the fixed table for primary and applies the +/-1
// urgency adjustment, clamped to [1,10].
func nextActionsFor(primary socialmodel.Intent, urgency socialmodel.Urgency) []socialmodel.NextAction {
	template, ok := nextActionTable[primary]
	if !ok {
		template = nextActionTable[socialmodel.IntentGeneral]
	}

	delta := 0
	switch urgency.Level {
	case socialmodel.UrgencyHigh, socialmodel.UrgencyCritical:
		delta = 1
	case socialmodel.UrgencyMinimal:
		delta = -1
	}

	actions := make([]socialmodel.NextAction, len(template))
	for i, a := range template {
		p := a.Priority + delta
		if p < 1 {
			p = 1
		}
		if p > 10 {
			p = 10
		}
		actions[i] = socialmodel.NextAction{Action: a.Action, Priority: p}
	}
	return actions
}
