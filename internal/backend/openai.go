package backend

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/LiboWorks/llm-optimizer/internal/config"
)

// OpenAIBackend implements LLMBackend using the OpenAI chat API. It is also
// used for Groq, which serves the same API under a different base URL.
type OpenAIBackend struct {
	name         string
	client       *openai.Client
	defaultModel string
}

// OpenAIConfig holds configuration for the OpenAI backend.
type OpenAIConfig struct {
	// Name is reported by Name(); defaults to "openai".
	Name         string
	APIKey       string
	BaseURL      string
	DefaultModel string
}

// NewOpenAIBackend creates a new OpenAI-compatible backend.
func NewOpenAIBackend(cfg OpenAIConfig) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key not provided")
	}

	name := cfg.Name
	if name == "" {
		name = "openai"
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.BaseURLFor(name)
	}
	clientCfg.BaseURL = baseURL

	return &OpenAIBackend{
		name:         name,
		client:       openai.NewClientWithConfig(clientCfg),
		defaultModel: cfg.DefaultModel,
	}, nil
}

// Complete implements LLMBackend.
func (b *OpenAIBackend) Complete(ctx context.Context, r Request) (Completion, error) {
	model := r.Model
	if model == "" {
		model = b.defaultModel
	}

	var messages []openai.ChatCompletionMessage
	if r.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: r.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: r.Prompt})

	// Temperature is omitempty in the request type, so 0 would fall back to
	// the service default.
	temperature := float32(r.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}
	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Completion{}, fmt.Errorf("%s completion failed: %w", b.name, err)
	}

	if len(resp.Choices) == 0 {
		return Completion{}, fmt.Errorf("%s returned no choices", b.name)
	}

	return Completion{
		Text: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Name implements LLMBackend.
func (b *OpenAIBackend) Name() string {
	return b.name
}

// Close implements LLMBackend.
func (b *OpenAIBackend) Close() error {
	return nil
}

// NewRegistryFor registers the groq and openai backends for apiKey and makes
// provider the default. A non-empty baseURL overrides the default provider's
// endpoint.
func NewRegistryFor(apiKey, provider, baseURL, model string) (*Registry, error) {
	registry := NewRegistry()
	for _, name := range []string{"groq", "openai"} {
		url := ""
		if name == provider {
			url = baseURL
		}
		b, err := NewOpenAIBackend(OpenAIConfig{Name: name, APIKey: apiKey, BaseURL: url, DefaultModel: model})
		if err != nil {
			return nil, err
		}
		registry.RegisterLLM(name, b)
	}
	if _, err := registry.MustGetLLM(provider); err != nil {
		return nil, err
	}
	registry.SetDefaultLLM(provider)
	return registry, nil
}
