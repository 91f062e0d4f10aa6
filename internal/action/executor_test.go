package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/socialpulse/engine/internal/socialmodel"
)

type stubResponder struct {
	err error
}

func (s stubResponder) Respond(_ context.Context, _ socialmodel.SocialEvent, _ socialmodel.RoutedAction) error {
	return s.err
}

type stubNotifier struct {
	err error
}

func (s stubNotifier) Notify(_ context.Context, _ socialmodel.SocialEvent, _ socialmodel.RoutedAction) error {
	return s.err
}

func respondAction() socialmodel.RoutedAction {
	return socialmodel.RoutedAction{Type: socialmodel.ActionRespond, Parameters: map[string]string{"intent": "PRAISE"}}
}

func TestExecuteAutoResponseSuccess(t *testing.T) {
	executor := NewExecutor(stubResponder{}, stubNotifier{})
	decision := socialmodel.RoutingDecision{
		Route:   socialmodel.RouteAutoResponse,
		Actions: []socialmodel.RoutedAction{respondAction()},
	}
	results := executor.Execute(context.Background(), socialmodel.SocialEvent{}, decision, false)
	assert.Len(t, results, 1)
	assert.Equal(t, socialmodel.ExecutionSuccess, results[0].Status)
}

func TestExecuteSuggestionSkippedWithoutApproval(t *testing.T) {
	executor := NewExecutor(stubResponder{}, stubNotifier{})
	decision := socialmodel.RoutingDecision{
		Route:   socialmodel.RouteSuggestion,
		Actions: []socialmodel.RoutedAction{{Type: socialmodel.ActionSuggest, Parameters: map[string]string{"intent": "QUESTION"}}},
	}
	results := executor.Execute(context.Background(), socialmodel.SocialEvent{}, decision, false)
	assert.Equal(t, socialmodel.ExecutionSkipped, results[0].Status)
}

func TestExecuteSuggestionApprovedDispatches(t *testing.T) {
	executor := NewExecutor(stubResponder{}, stubNotifier{})
	decision := socialmodel.RoutingDecision{
		Route:   socialmodel.RouteSuggestion,
		Actions: []socialmodel.RoutedAction{{Type: socialmodel.ActionSuggest, Parameters: map[string]string{"intent": "QUESTION"}}},
	}
	results := executor.Execute(context.Background(), socialmodel.SocialEvent{}, decision, true)
	assert.Equal(t, socialmodel.ExecutionSuccess, results[0].Status)
}

func TestTransientFailureNotTerminal(t *testing.T) {
	err := socialmodel.NewError(socialmodel.KindTransientUpstream, "rate limited")
	executor := NewExecutor(stubResponder{err: err}, stubNotifier{})
	decision := socialmodel.RoutingDecision{
		Route:   socialmodel.RouteAutoResponse,
		Actions: []socialmodel.RoutedAction{respondAction()},
	}
	results := executor.Execute(context.Background(), socialmodel.SocialEvent{}, decision, false)
	assert.Equal(t, socialmodel.ExecutionFailed, results[0].Status)
	assert.False(t, results[0].Terminal)
}

func TestValidationFailureIsTerminal(t *testing.T) {
	executor := NewExecutor(stubResponder{}, stubNotifier{})
	decision := socialmodel.RoutingDecision{
		Route:   socialmodel.RouteAutoResponse,
		Actions: []socialmodel.RoutedAction{{Type: socialmodel.ActionRespond, Parameters: map[string]string{}}},
	}
	results := executor.Execute(context.Background(), socialmodel.SocialEvent{}, decision, false)
	assert.Equal(t, socialmodel.ExecutionFailed, results[0].Status)
	assert.True(t, results[0].Terminal)
}
