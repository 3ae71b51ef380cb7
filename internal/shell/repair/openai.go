package repair

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// =============================================================================
// OpenAI Repairer
// =============================================================================

// Completion bounds shared by both providers.
const (
	completionTemperature = 0.1
	completionMaxTokens   = 4096
)

type openAIRepairer struct {
	client *openai.Client
	cfg    Config
}

func newOpenAIRepairer(cfg Config) *openAIRepairer {
	return &openAIRepairer{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
	}
}

// Repair makes a single chat-completion call. No retry: a failure here is
// terminal for this phase.
func (r *openAIRepairer) Repair(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.timeout())
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.cfg.model(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: UserPrompt(req)},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
