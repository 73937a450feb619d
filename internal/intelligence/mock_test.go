package intelligence

import (
	"context"

	"github.com/alexanderramin/cuesheet/internal/llm"
)

// mockLLMClient implements llm.LLMClient for testing.
type mockLLMClient struct {
	response string
	err      error
	requests []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "gpt-4o"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }
