package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "안녕하십니까, 사회를 맡은 교사입니다."}, "finish_reason": "stop"}
  ],
  "usage": {"prompt_tokens": 10, "completion_tokens": 12, "total_tokens": 22}
}`

func openAIConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.Endpoint = endpoint
	return cfg
}

func TestOpenAIClient_Generate_Success(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatCompletionBody))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(context.Background(), openAIConfig(srv.URL), NoopObserver{})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskScenario,
		SystemPrompt: "당신은 전문적인 학교 행사 시나리오 작성자입니다.",
		UserPrompt:   "행사명: 입학식",
	})

	require.NoError(t, err)
	assert.Equal(t, "안녕하십니까, 사회를 맡은 교사입니다.", resp.Text)
	assert.Equal(t, "gpt-4o", resp.Model)
	assert.Contains(t, body, `"gpt-4o"`)
	assert.Contains(t, body, "행사명: 입학식")
}

func TestOpenAIClient_Generate_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(context.Background(), openAIConfig(srv.URL), NoopObserver{})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskScenario, UserPrompt: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestOpenAIClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(context.Background(), openAIConfig(srv.URL), NoopObserver{})
	require.NoError(t, err)
	assert.True(t, client.Available(context.Background()))
}
