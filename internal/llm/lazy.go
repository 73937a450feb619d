package llm

import (
	"context"
	"sync"
	"time"
)

// lazyClient builds the provider client on the first call, so commands
// that never generate text run without provider credentials.
type lazyClient struct {
	cfg      LLMConfig
	observer Observer

	once   sync.Once
	client LLMClient
	err    error
}

// NewLazyClient checks cfg.Provider now and defers everything else, such
// as the API key check, to the first Generate or Available call. A client
// that cannot be built fails each Generate with a *ProviderError.
func NewLazyClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if _, err := ValidateProvider(string(cfg.Provider)); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &lazyClient{cfg: cfg, observer: observer}, nil
}

func (c *lazyClient) build(ctx context.Context) (LLMClient, error) {
	c.once.Do(func() {
		c.client, c.err = NewClient(context.WithoutCancel(ctx), c.cfg, c.observer)
	})
	return c.client, c.err
}

func (c *lazyClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	client, err := c.build(ctx)
	if err != nil {
		return finish(c.observer, c.cfg.Provider, c.cfg.Model, req.Task, time.Now(), "",
			newProviderError(c.cfg.Provider, ctx, err))
	}
	return client.Generate(ctx, req)
}

func (c *lazyClient) Available(ctx context.Context) bool {
	client, err := c.build(ctx)
	if err != nil {
		return false
	}
	return client.Available(ctx)
}
