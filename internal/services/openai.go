// Package services holds transports to external capabilities.
package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"event-scheduler/internal/config"
)

// OpenAIClient is the inference transport behind the parser's LLM fallback
// tier. It is read-only after construction and safe to share across
// concurrent parse calls. Timeout behavior is delegated to the underlying
// transport and the caller's context.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIClient builds a client from cfg. It returns nil when no API key is
// configured: a missing credential downgrades the capability, it is not an
// error.
func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	if cfg == nil || !cfg.FallbackEnabled() {
		return nil
	}

	return &OpenAIClient{
		client:      openai.NewClient(cfg.OpenAIAPIKey),
		model:       cfg.OpenAIModel,
		temperature: 0.1,
		maxTokens:   cfg.OpenAIMaxTokens,
	}
}

// Infer sends one chat completion request and returns the raw response text
// for the caller to scan and parse.
func (o *OpenAIClient) Infer(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if o == nil || o.client == nil {
		return "", fmt.Errorf("openai client not configured")
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       o.model,
			Temperature: o.temperature,
			MaxTokens:   o.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model identifier.
func (o *OpenAIClient) Model() string {
	return o.model
}
