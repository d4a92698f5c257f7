package service

import (
	"context"
	"fmt"

	"github.com/tieubaoca/litellm-chat/config"
	"google.golang.org/api/option"
)

// Generator turns a prompt into generated text. Implementations are built
// once at startup and shared by every request.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError is the single failure kind a Generator reports. Error()
// is the message shown to the caller.
type GenerationError struct {
	Provider string
	Message  string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "generation failed"
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func generationFailure(provider string, err error) *GenerationError {
	return &GenerationError{Provider: provider, Err: err}
}

// NewGenerator builds the backend selected by cfg.Provider.
func NewGenerator(cfg *config.Config) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderEcho, "":
		return NewEchoGenerator(), nil
	case config.ProviderOpenAI:
		return NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model,
			WithSystemPrompt(cfg.SystemPrompt),
			WithTemperature(cfg.Temperature),
			WithMaxTokens(cfg.MaxTokens),
		), nil
	case config.ProviderGemini:
		return NewGeminiService(cfg.GeminiAPIKeys, cfg.Model,
			WithSystemPrompt(cfg.SystemPrompt),
			WithTemperature(cfg.Temperature),
			WithMaxTokens(cfg.MaxTokens),
		)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

type generationOptions struct {
	systemPrompt string
	temperature  float32
	maxTokens    int

	clientOptions []option.ClientOption
}

type Option func(*generationOptions)

func WithSystemPrompt(prompt string) Option {
	return func(o *generationOptions) { o.systemPrompt = prompt }
}

func WithTemperature(t float32) Option {
	return func(o *generationOptions) { o.temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(o *generationOptions) { o.maxTokens = n }
}

// WithClientOptions is passed through to the Gemini client, e.g. to point it
// at another endpoint.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(o *generationOptions) { o.clientOptions = append(o.clientOptions, opts...) }
}

func buildOptions(opts []Option) generationOptions {
	var o generationOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
