package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/cuesheet/internal/llm"
)

// FakeLLM is a scripted llm.LLMClient. Responses are looked up by the
// first key contained in the user prompt; unmatched prompts get Default.
// Every call is recorded. It is safe for concurrent use.
type FakeLLM struct {
	Responses map[string]string
	Default   string

	// Err, when set, is returned from every call. FailOn limits it to the
	// FailOn-th call (1-based).
	Err    error
	FailOn int32

	// Block, when set, is waited on before answering.
	Block chan struct{}

	count atomic.Int32
	mu    sync.Mutex
	calls []llm.GenerateRequest
}

func (f *FakeLLM) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	n := f.count.Add(1)

	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return nil, &llm.ProviderError{Provider: "fake", Code: llm.CodeTimeout, Err: ctx.Err()}
		}
	}

	if f.Err != nil && (f.FailOn == 0 || f.FailOn == n) {
		return nil, f.Err
	}

	text := f.Default
	for key, resp := range f.Responses {
		if strings.Contains(req.UserPrompt, key) {
			text = resp
			break
		}
	}
	return &llm.GenerateResponse{Text: text, Model: "fake"}, nil
}

func (f *FakeLLM) Available(context.Context) bool { return f.Err == nil }

// Calls returns a copy of the recorded requests in call order.
func (f *FakeLLM) Calls() []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]llm.GenerateRequest, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns the number of Generate calls made.
func (f *FakeLLM) CallCount() int {
	return int(f.count.Load())
}

// ProviderFailure returns a provider error like a real client would.
func ProviderFailure(code string) error {
	return &llm.ProviderError{Provider: "fake", Code: code, Err: errFake}
}

var errFake = errors.New("fake provider failure")
