package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cuesheet/internal/llm"
)

// StoryWriter rewrites one arithmetic expression as a story problem.
type StoryWriter interface {
	Write(ctx context.Context, problem string) (string, error)
}

type storyWriter struct {
	client llm.LLMClient
}

// NewStoryWriter creates a StoryWriter backed by an LLM client.
func NewStoryWriter(client llm.LLMClient) StoryWriter {
	return &storyWriter{client: client}
}

func (w *storyWriter) Write(ctx context.Context, problem string) (string, error) {
	resp, err := w.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskStory,
		SystemPrompt: StoryProblemSystemMessage,
		UserPrompt:   BuildStoryProblemPrompt(problem),
	})
	if err != nil {
		return "", fmt.Errorf("writing story problem for %q: %w", problem, err)
	}
	return llm.CleanText(resp.Text), nil
}
