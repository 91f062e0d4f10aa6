// Package action implements the action executor (C6): dispatches routed
// actions produced by the router and records their outcome.
package action

import (
	"context"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// PlatformResponder posts an automated or approved-suggestion reply to the
// platform the originating event came from.
type PlatformResponder interface {
	Respond(ctx context.Context, event socialmodel.SocialEvent, action socialmodel.RoutedAction) error
}

// EscalationNotifier notifies a human reviewer queue of an escalation.
type EscalationNotifier interface {
	Notify(ctx context.Context, event socialmodel.SocialEvent, action socialmodel.RoutedAction) error
}

// Executor implements the C6 contract.
type Executor struct {
	responder PlatformResponder
	notifier  EscalationNotifier
}

func NewExecutor(responder PlatformResponder, notifier EscalationNotifier) *Executor {
	return &Executor{responder: responder, notifier: notifier}
}

// Execute dispatches every action in decision.Actions for auto-response
// routes, and for suggestion routes when approved is true; an unapproved
// suggestion comes back with every action skipped. For human-review routes
// only the escalate actions are dispatched, through the escalation notifier,
// and every other action comes back skipped.
func (e *Executor) Execute(ctx context.Context, event socialmodel.SocialEvent, decision socialmodel.RoutingDecision, approved bool) []socialmodel.ExecutionResult {
	if decision.Route == socialmodel.RouteSuggestion && !approved {
		return skippedResults(decision.Actions, "suggestion not yet approved")
	}
	if decision.Route == socialmodel.RouteHumanReview {
		return e.executeEscalation(ctx, event, decision.Actions)
	}

	results := make([]socialmodel.ExecutionResult, 0, len(decision.Actions))
	for _, a := range decision.Actions {
		results = append(results, e.executeOne(ctx, event, a))
	}
	return results
}

func (e *Executor) executeEscalation(ctx context.Context, event socialmodel.SocialEvent, actions []socialmodel.RoutedAction) []socialmodel.ExecutionResult {
	results := make([]socialmodel.ExecutionResult, 0, len(actions))
	for _, a := range actions {
		if a.Type != socialmodel.ActionEscalate {
			results = append(results, socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionSkipped, Terminal: true})
			continue
		}
		if e.notifier == nil {
			results = append(results, socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionFailed, Detail: "no escalation notifier configured", Terminal: true})
			continue
		}
		if err := e.notifier.Notify(ctx, event, a); err != nil {
			results = append(results, classifyFailure(a.Type, err))
			continue
		}
		results = append(results, socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionSuccess, Terminal: true})
	}
	return results
}

func (e *Executor) executeOne(ctx context.Context, event socialmodel.SocialEvent, a socialmodel.RoutedAction) socialmodel.ExecutionResult {
	if err := validate(a); err != nil {
		return socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionFailed, Detail: err.Error(), Terminal: true}
	}

	switch a.Type {
	case socialmodel.ActionRespond, socialmodel.ActionSuggest:
		if e.responder == nil {
			return socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionFailed, Detail: "no platform responder configured", Terminal: true}
		}
		if err := e.responder.Respond(ctx, event, a); err != nil {
			return classifyFailure(a.Type, err)
		}
		return socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionSuccess, Terminal: true}

	case socialmodel.ActionMonitor:
		return socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionSuccess, Terminal: false}

	case socialmodel.ActionEscalate:
		if e.notifier == nil {
			return socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionFailed, Detail: "no escalation notifier configured", Terminal: true}
		}
		if err := e.notifier.Notify(ctx, event, a); err != nil {
			return classifyFailure(a.Type, err)
		}
		return socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionSuccess, Terminal: true}

	default:
		return socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionSkipped, Detail: "unknown action type", Terminal: true}
	}
}

// validate rejects actions with an empty intent parameter on respond/
// suggest types — a stand-in for full content validation, which lives with
// the platform responder/publisher that actually knows the platform's
// content rules.
func validate(a socialmodel.RoutedAction) error {
	if a.Type == socialmodel.ActionRespond || a.Type == socialmodel.ActionSuggest {
		if a.Parameters["intent"] == "" {
			return socialmodel.NewError(socialmodel.KindValidation, "action %s missing intent parameter", a.Type)
		}
	}
	return nil
}

// classifyFailure maps an error's semantic kind to an ExecutionResult:
// transient upstream errors are recoverable (Terminal=false), everything
// else is terminal (spec §4.6: "transient... are recoverable; content-
// validation errors are terminal").
func classifyFailure(actionType socialmodel.ActionType, err error) socialmodel.ExecutionResult {
	terminal := true
	if socialmodel.IsKind(err, socialmodel.KindTransientUpstream) {
		terminal = false
	}
	return socialmodel.ExecutionResult{
		ActionType: actionType,
		Status:     socialmodel.ExecutionFailed,
		Detail:     err.Error(),
		Terminal:   terminal,
	}
}

func skippedResults(actions []socialmodel.RoutedAction, reason string) []socialmodel.ExecutionResult {
	results := make([]socialmodel.ExecutionResult, len(actions))
	for i, a := range actions {
		results[i] = socialmodel.ExecutionResult{ActionType: a.Type, Status: socialmodel.ExecutionSkipped, Detail: reason, Terminal: false}
	}
	return results
}
