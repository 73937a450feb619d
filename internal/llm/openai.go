package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// openAIClient implements LLMClient with an Eino chat model against the
// OpenAI chat completions API (or any compatible endpoint).
type openAIClient struct {
	cfg      LLMConfig
	chat     model.BaseChatModel
	http     *http.Client
	observer Observer
}

// errMissingAPIKey is returned when the openai provider has no key.
var errMissingAPIKey = errors.New("OpenAI API key is required")

// NewOpenAIClient creates an LLMClient backed by the OpenAI chat API.
func NewOpenAIClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, errMissingAPIKey
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	chatCfg := &openai.ChatModelConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}
	if cfg.Endpoint != "" {
		chatCfg.BaseURL = cfg.Endpoint
	}

	chat, err := openai.NewChatModel(ctx, chatCfg)
	if err != nil {
		return nil, fmt.Errorf("creating openai chat model: %w", err)
	}

	return &openAIClient{cfg: cfg, chat: chat, http: &http.Client{}, observer: observer}, nil
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	params := resolveParams(c.cfg, req)

	ctx, cancel := context.WithTimeout(ctx, params.timeout)
	defer cancel()

	messages := make([]*schema.Message, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, schema.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, schema.UserMessage(req.UserPrompt))

	temp := float32(params.temperature)
	opts := []model.Option{model.WithTemperature(temp)}
	if params.maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(params.maxTokens))
	}

	msg, err := c.chat.Generate(ctx, messages, opts...)
	if err == nil && (msg == nil || strings.TrimSpace(msg.Content) == "") {
		err = errEmptyCompletion
	}
	if err != nil {
		return finish(c.observer, ProviderOpenAI, c.cfg.Model, req.Task, start, "", newProviderError(ProviderOpenAI, ctx, err))
	}
	return finish(c.observer, ProviderOpenAI, c.cfg.Model, req.Task, start, msg.Content, nil)
}

// Available lists models with the configured key; any 200 means usable.
func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	base := c.cfg.Endpoint
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(base, "/")+"/models", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
