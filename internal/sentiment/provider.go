package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ProviderModelBackend asks an LLM-style provider for a second, independent
// sentiment opinion. It is optional: when no client is configured the
// ensemble simply runs with the lexical backend alone.
type ProviderModelBackend struct {
	client *openai.Client
	model  string
}

// NewProviderModelBackend wraps an OpenAI-compatible client. model is the
// chat model name (e.g. "gpt-4o-mini"); pass "" to use the client default.
func NewProviderModelBackend(client *openai.Client, model string) *ProviderModelBackend {
	return &ProviderModelBackend{client: client, model: model}
}

func (b *ProviderModelBackend) Name() string { return "provider" }

func (b *ProviderModelBackend) Score(ctx context.Context, text string) (ModelScore, error) {
	if b.client == nil {
		return ModelScore{}, fmt.Errorf("sentiment: provider backend has no client configured")
	}

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You score the sentiment of social media text. Reply with exactly two " +
					"numbers separated by a space: a score in [-1,1] and a confidence in [0,1]. " +
					"No other text.",
			},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
		MaxTokens:   16,
	})
	if err != nil {
		return ModelScore{}, fmt.Errorf("sentiment: provider call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ModelScore{}, fmt.Errorf("sentiment: provider returned no choices")
	}

	return parseProviderReply(resp.Choices[0].Message.Content)
}

func parseProviderReply(reply string) (ModelScore, error) {
	fields := strings.Fields(strings.TrimSpace(reply))
	if len(fields) < 2 {
		return ModelScore{}, fmt.Errorf("sentiment: malformed provider reply %q", reply)
	}
	score, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return ModelScore{}, fmt.Errorf("sentiment: malformed provider score %q: %w", fields[0], err)
	}
	confidence, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return ModelScore{}, fmt.Errorf("sentiment: malformed provider confidence %q: %w", fields[1], err)
	}
	return ModelScore{Score: clamp(score, -1, 1), Confidence: clamp(confidence, 0, 1)}, nil
}
