package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const providerGemini = "gemini"

// GeminiService generates through the Gemini API. It holds one client per
// API key; when a call fails it moves on to the next key and tries once more.
// Clients stay open until Close, so a request never sees its client closed.
type GeminiService struct {
	apiKeys    []string
	clients    []*genai.Client
	models     []*genai.GenerativeModel
	currentKey int
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string, opts ...Option) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}
	o := buildOptions(opts)

	service := &GeminiService{
		apiKeys: apiKeys,
		clients: make([]*genai.Client, 0, len(apiKeys)),
		models:  make([]*genai.GenerativeModel, 0, len(apiKeys)),
	}
	for _, key := range apiKeys {
		clientOpts := append([]option.ClientOption{option.WithAPIKey(key)}, o.clientOptions...)
		client, err := genai.NewClient(context.Background(), clientOpts...)
		if err != nil {
			service.Close()
			return nil, err
		}
		service.clients = append(service.clients, client)
		service.models = append(service.models, configureModel(client.GenerativeModel(modelName), o))
	}
	return service, nil
}

func configureModel(model *genai.GenerativeModel, o generationOptions) *genai.GenerativeModel {
	if o.systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(o.systemPrompt)},
		}
	}
	if o.temperature > 0 {
		model.SetTemperature(o.temperature)
	}
	if o.maxTokens > 0 {
		model.SetMaxOutputTokens(int32(o.maxTokens))
	}
	return model
}

func (s *GeminiService) current() (int, *genai.GenerativeModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey, s.models[s.currentKey]
}

// rotateFrom advances past failed only if no other request already did, so
// concurrent failures on the same key move the index once.
func (s *GeminiService) rotateFrom(failed int) *genai.GenerativeModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == failed {
		s.currentKey = (s.currentKey + 1) % len(s.models)
	}
	return s.models[s.currentKey]
}

func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	idx, model := s.current()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if ctx.Err() != nil || len(s.models) == 1 {
			return "", generationFailure(providerGemini, err)
		}
		resp, err = s.rotateFrom(idx).GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", generationFailure(providerGemini, err)
		}
	}

	text := candidateText(resp)
	if text == "" {
		return "", generationFailure(providerGemini, errors.New("no response generated"))
	}
	return text, nil
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

func (s *GeminiService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for _, client := range s.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
