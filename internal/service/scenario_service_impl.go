package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/export"
	"github.com/alexanderramin/cuesheet/internal/intelligence"
	"github.com/alexanderramin/cuesheet/internal/session"
)

type scenarioService struct {
	writer   intelligence.ScenarioWriter
	observer UseCaseObserver
}

func NewScenarioService(writer intelligence.ScenarioWriter, observers ...UseCaseObserver) ScenarioService {
	return &scenarioService{
		writer:   writer,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scenarioService) Generate(ctx context.Context, meta domain.EventMeta, entries []agenda.Entry) (result *ScenarioResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"kind":      string(meta.Kind),
		"row_count": len(entries),
	}
	defer func() {
		observe(ctx, s.observer, "generate-scenario", startedAt, fields, err)
	}()

	if err = ValidateScenarioInput(meta, entries); err != nil {
		return nil, err
	}

	var scenario *intelligence.Scenario
	scenario, err = s.writer.Write(ctx, meta, entries)
	if err != nil {
		return nil, err
	}
	fields["model"] = scenario.Model
	fields["text_len"] = len(scenario.Text)

	return &ScenarioResult{
		Text:     scenario.Text,
		Prompt:   scenario.Prompt,
		FileName: export.ScenarioFileName(meta.Name),
	}, nil
}

func (s *scenarioService) GenerateForSession(ctx context.Context, sess *session.Session) (*ScenarioResult, error) {
	snap, err := sess.Begin()
	if err != nil {
		return nil, err
	}
	defer sess.End()

	return s.Generate(ctx, snap.Meta, snap.Entries)
}

// ValidateScenarioInput reports the first missing required input: the
// event metadata fields, then at least one agenda row.
func ValidateScenarioInput(meta domain.EventMeta, entries []agenda.Entry) error {
	if err := domain.ValidateEventMeta(meta); err != nil {
		return err
	}
	if len(entries) == 0 {
		return domain.NewValidationError("agenda", "행사 순서를 하나 이상 추가해주세요.")
	}
	return nil
}

