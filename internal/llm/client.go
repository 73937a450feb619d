// Package llm talks to the external text-generation provider. One
// Generate call is one synchronous completion; failures come back as
// *ProviderError and are never retried.
package llm

import (
	"context"
	"fmt"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the provider is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the LLMClient for cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(ctx, cfg, observer)
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch Provider(p) {
	case ProviderOpenAI, ProviderOllama:
		return Provider(p), nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", p)
	}
}

// resolvedParams merges request overrides with task defaults.
type resolvedParams struct {
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

func resolveParams(cfg LLMConfig, req GenerateRequest) resolvedParams {
	taskCfg := cfg.Tasks[req.Task]
	p := resolvedParams{
		temperature: taskCfg.Temperature,
		maxTokens:   taskCfg.MaxTokens,
		timeout:     time.Duration(cfg.TaskTimeout(req.Task)) * time.Millisecond,
	}
	if req.Temperature != nil {
		p.temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		p.maxTokens = *req.MaxTokens
	}
	return p
}

// finish reports the call to the observer and shapes the return values.
func finish(observer Observer, provider Provider, model string, task TaskType, start time.Time, text string, err error) (*GenerateResponse, error) {
	latency := time.Since(start).Milliseconds()
	event := LLMCallEvent{
		Task:      task,
		Provider:  provider,
		Model:     model,
		LatencyMs: latency,
		Success:   err == nil,
	}
	if err != nil {
		event.ErrorCode = ErrorCode(err)
		observer.OnCallComplete(event)
		return nil, err
	}
	observer.OnCallComplete(event)
	return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
}
