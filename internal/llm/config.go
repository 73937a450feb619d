package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskScenario TaskType = "scenario"
	TaskStory    TaskType = "story"
)

// Provider names a completion backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// DefaultOllamaEndpoint is used when the ollama provider has no endpoint.
const DefaultOllamaEndpoint = "http://localhost:11434"

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider  Provider
	LogCalls  bool
	Endpoint  string // base URL; empty uses the provider default
	Model     string
	APIKey    string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig matching the hosted gpt-4o setup.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:  ProviderOpenAI,
		Model:     "gpt-4o",
		TimeoutMs: 60000,
		Tasks: map[TaskType]TaskConfig{
			TaskScenario: {Temperature: 0.7, MaxTokens: 4096, TimeoutMs: 120000},
			TaskStory:    {Temperature: 0.7, MaxTokens: 1024, TimeoutMs: 60000},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// EndpointOrDefault returns Endpoint, or the provider default.
func (c LLMConfig) EndpointOrDefault() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.Provider == ProviderOllama {
		return DefaultOllamaEndpoint
	}
	return ""
}
