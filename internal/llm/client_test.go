package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Model = "llama3.2"
	cfg.Endpoint = endpoint
	return cfg
}

func ollamaReply(text string) ollamaChatResponse {
	return ollamaChatResponse{Model: "llama3.2", Message: ollamaMessage{Role: "assistant", Content: text}}
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, []ollamaMessage{
			{Role: "system", Content: "system prompt"},
			{Role: "user", Content: "user prompt"},
		}, req.Messages)
		assert.Equal(t, 4096, req.Options.NumPredict)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaReply("사회자: 지금부터 입학식을 시작하겠습니다."))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskScenario,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, "사회자: 지금부터 입학식을 시작하겠습니다.", resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_NoSystemMessageWhenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		json.NewEncoder(w).Encode(ollamaReply("ok"))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskStory, UserPrompt: "5 + 7"})
	require.NoError(t, err)
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskStory: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 50},
	}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskStory,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, CodeTimeout, ErrorCode(err))
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskStory,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, CodeUnavailable, ErrorCode(err))
}

func TestOllamaClient_Generate_NoRetry(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskStory,
		UserPrompt: "test",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, CodeUnknown, ErrorCode(err))
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOllamaClient_Generate_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskStory, UserPrompt: "test"})

	assert.Equal(t, CodeAuth, ErrorCode(err))
}

func TestOllamaClient_Generate_EmptyResponseIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaReply("  "))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskStory, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, CodeInvalidOutput, ErrorCode(err))
}

func TestOllamaClient_Generate_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskStory, UserPrompt: "test"})

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ProviderOllama, pe.Provider)
	assert.Contains(t, pe.Error(), "decoding response")
}

func TestOllamaClient_Available_True(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))
}

func TestOllamaClient_Available_False(t *testing.T) {
	client := NewOllamaClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	assert.False(t, client.Available(context.Background()))
}

func TestOllamaClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaReply("ok"))
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	client := NewOllamaClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskScenario,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, TaskScenario, captured.Task)
	assert.Equal(t, ProviderOllama, captured.Provider)
	assert.Equal(t, "llama3.2", captured.Model)
	assert.True(t, captured.Success)
}

func TestOllamaClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskStory: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 50},
	}

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	client := NewOllamaClient(cfg, obs)

	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskStory,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrProvider)
	assert.False(t, captured.Success)
	assert.Equal(t, CodeTimeout, captured.ErrorCode)
}

func TestNewClient_Providers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	c, err := NewClient(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, c)

	cfg.Provider = ProviderOpenAI
	cfg.APIKey = ""
	_, err = NewClient(context.Background(), cfg, nil)
	assert.Error(t, err, "openai without a key must fail")

	cfg.Provider = "bard"
	_, err = NewClient(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestValidateProvider(t *testing.T) {
	p, err := ValidateProvider("ollama")
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, p)

	_, err = ValidateProvider("gemini")
	assert.Error(t, err)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
