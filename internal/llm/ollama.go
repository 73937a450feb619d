package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// ollamaClient talks to a local Ollama server through its chat endpoint.
type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient returns a client for the Ollama server at
// cfg.EndpointOrDefault(). Per-call timeouts come from the task config.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &ollamaClient{
		cfg:      cfg,
		http:     &http.Client{Transport: &http.Transport{DialContext: dialer.DialContext}},
		observer: observer,
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaChatRequest is the body of POST /api/chat.
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaChatResponse is the non-streaming reply of POST /api/chat.
type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	params := resolveParams(c.cfg, req)

	ctx, cancel := context.WithTimeout(ctx, params.timeout)
	defer cancel()

	messages := make([]ollamaMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, ollamaMessage{Role: "user", Content: req.UserPrompt})

	var out ollamaChatResponse
	err := c.post(ctx, "/api/chat", ollamaChatRequest{
		Model:    c.cfg.Model,
		Messages: messages,
		Options:  ollamaOptions{Temperature: params.temperature, NumPredict: params.maxTokens},
	}, &out)
	if err == nil && strings.TrimSpace(out.Message.Content) == "" {
		err = errEmptyCompletion
	}
	if err != nil {
		return finish(c.observer, ProviderOllama, c.cfg.Model, req.Task, start, "", newProviderError(ProviderOllama, ctx, err))
	}
	return finish(c.observer, ProviderOllama, c.cfg.Model, req.Task, start, out.Message.Content, nil)
}

// post sends in as JSON to path and decodes a 200 reply into out.
func (c *ollamaClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.EndpointOrDefault()+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Available reports whether the server answers its model listing.
func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.EndpointOrDefault()+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
