package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"agent_backend/completion"
)

// Service implements completion.Service against any OpenAI-compatible
// chat completion endpoint. Groq exposes one, so pointing BaseURL at it
// is all the provider wiring there is.
type Service struct {
	client *openai.Client
	model  string
}

// New builds the completion service. An empty apiKey yields a service
// whose Complete always fails with completion.ErrNotConfigured rather
// than a startup error.
func New(apiKey string, baseURL string, model string) *Service {
	if apiKey == "" {
		return &Service{model: model}
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Service{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Complete implements completion.Service
func (s *Service) Complete(ctx context.Context, systemPrompt string, userText string) (string, error) {
	if s.client == nil {
		return "", completion.ErrNotConfigured
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("fail to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("upstream returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
