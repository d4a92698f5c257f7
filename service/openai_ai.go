package service

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

// OpenAIService talks to any OpenAI-compatible chat completion endpoint,
// typically a LiteLLM proxy.
type OpenAIService struct {
	client *openai.Client
	model  string
	opts   generationOptions
}

func NewOpenAIService(baseURL, apiKey, model string, opts ...Option) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client: client,
		model:  model,
		opts:   buildOptions(opts),
	}
}

func (s *OpenAIService) Generate(ctx context.Context, prompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if s.opts.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: s.opts.systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       s.model,
			Messages:    messages,
			Temperature: s.opts.temperature,
			MaxTokens:   s.opts.maxTokens,
		},
	)
	if err != nil {
		genErr := generationFailure(providerOpenAI, err)
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			genErr.Message = apiErr.Message
		}
		return "", genErr
	}

	if len(resp.Choices) == 0 {
		return "", generationFailure(providerOpenAI, errors.New("no response generated"))
	}
	return resp.Choices[0].Message.Content, nil
}
