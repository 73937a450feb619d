package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/llm"
)

// Scenario is a generated MC script together with the prompt that
// produced it.
type Scenario struct {
	Text   string
	Prompt string
	Model  string
}

// ScenarioWriter turns event metadata and a serialized agenda into an MC
// script with one completion call.
type ScenarioWriter interface {
	Write(ctx context.Context, meta domain.EventMeta, entries []agenda.Entry) (*Scenario, error)
}

type scenarioWriter struct {
	client llm.LLMClient
}

// NewScenarioWriter creates a ScenarioWriter backed by an LLM client.
func NewScenarioWriter(client llm.LLMClient) ScenarioWriter {
	return &scenarioWriter{client: client}
}

func (w *scenarioWriter) Write(ctx context.Context, meta domain.EventMeta, entries []agenda.Entry) (*Scenario, error) {
	prompt := BuildScenarioPrompt(meta, entries)

	resp, err := w.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskScenario,
		SystemPrompt: ScenarioSystemMessage(meta.Kind),
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("writing scenario: %w", err)
	}

	return &Scenario{Text: llm.CleanText(resp.Text), Prompt: prompt, Model: resp.Model}, nil
}
