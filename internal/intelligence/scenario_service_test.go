package intelligence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cuesheet/internal/llm"
)

func TestScenarioWriter_Write(t *testing.T) {
	client := &mockLLMClient{response: "```\n사회자: 지금부터 입학식을 시작하겠습니다.\n```"}
	w := NewScenarioWriter(client)

	s, err := w.Write(context.Background(), schoolMeta(), sampleEntries())

	require.NoError(t, err)
	assert.Equal(t, "사회자: 지금부터 입학식을 시작하겠습니다.", s.Text)
	assert.Equal(t, "gpt-4o", s.Model)
	assert.Equal(t, BuildScenarioPrompt(schoolMeta(), sampleEntries()), s.Prompt)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, llm.TaskScenario, req.Task)
	assert.Equal(t, ScenarioSystemMessage(schoolMeta().Kind), req.SystemPrompt)
	assert.Equal(t, s.Prompt, req.UserPrompt)
}

func TestScenarioWriter_ProviderError(t *testing.T) {
	providerErr := &llm.ProviderError{Provider: llm.ProviderOpenAI, Code: llm.CodeAuth, Err: errors.New("401")}
	w := NewScenarioWriter(&mockLLMClient{err: providerErr})

	s, err := w.Write(context.Background(), schoolMeta(), sampleEntries())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, llm.ErrProvider)
}
