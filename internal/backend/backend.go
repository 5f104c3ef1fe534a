// Package backend defines the interface to chat-completion providers.
// Groq and OpenAI share one implementation because Groq exposes an
// OpenAI-compatible API; tests substitute mock implementations.
package backend

import (
	"context"
	"fmt"
	"sort"
)

// Usage is the token accounting reported for one completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Add returns the element-wise sum of u and o.
func (u Usage) Add(o Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + o.PromptTokens,
		CompletionTokens: u.CompletionTokens + o.CompletionTokens,
		TotalTokens:      u.TotalTokens + o.TotalTokens,
	}
}

// Request is one chat completion call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
}

// Completion is the reply to a Request.
type Completion struct {
	Text  string
	Usage Usage
}

// LLMBackend is the interface for language model backends.
type LLMBackend interface {
	// Complete sends req and returns the first choice.
	Complete(ctx context.Context, req Request) (Completion, error)

	// Name returns a human-readable name for the backend.
	Name() string

	// Close releases any resources held by the backend.
	Close() error
}

// Registry manages available backends and allows lookup by name.
type Registry struct {
	llmBackends map[string]LLMBackend
	defaultLLM  string
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{
		llmBackends: make(map[string]LLMBackend),
	}
}

// RegisterLLM adds an LLM backend to the registry.
func (r *Registry) RegisterLLM(name string, backend LLMBackend) {
	r.llmBackends[name] = backend
	if r.defaultLLM == "" {
		r.defaultLLM = name
	}
}

// SetDefaultLLM sets which LLM backend to use when none is specified.
func (r *Registry) SetDefaultLLM(name string) {
	r.defaultLLM = name
}

// GetLLM returns an LLM backend by name, or the default if name is empty.
func (r *Registry) GetLLM(name string) (LLMBackend, bool) {
	if name == "" {
		name = r.defaultLLM
	}
	b, ok := r.llmBackends[name]
	return b, ok
}

// MustGetLLM is GetLLM with an error listing the registered names.
func (r *Registry) MustGetLLM(name string) (LLMBackend, error) {
	b, ok := r.GetLLM(name)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (available: %v)", name, r.ListLLMBackends())
	}
	return b, nil
}

// Close releases all backend resources.
func (r *Registry) Close() error {
	for _, b := range r.llmBackends {
		if err := b.Close(); err != nil {
			return err
		}
	}
	return nil
}

// ListLLMBackends returns names of all registered LLM backends, sorted.
func (r *Registry) ListLLMBackends() []string {
	names := make([]string, 0, len(r.llmBackends))
	for name := range r.llmBackends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
