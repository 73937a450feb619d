package service

import (
	"context"
	"io"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/session"
	"github.com/alexanderramin/cuesheet/internal/template"
)

// Messages shown to users when the completion provider fails. The
// underlying error is logged, never displayed.
const (
	ScenarioFailureMessage = "시나리오 생성 중 오류가 발생했습니다."
	StoryFailureMessage    = "문장제 생성 중 오류가 발생했습니다."
)

// ScenarioResult is a generated MC script ready to show and save.
type ScenarioResult struct {
	Text     string `json:"text"`
	Prompt   string `json:"prompt"`
	FileName string `json:"file_name"`
}

type ScenarioService interface {
	// Generate validates the form, assembles the prompt and makes one
	// completion call. Validation failures never reach the provider.
	Generate(ctx context.Context, meta domain.EventMeta, entries []agenda.Entry) (*ScenarioResult, error)

	// GenerateForSession runs Generate on a session snapshot, holding the
	// session busy for the duration of the call.
	GenerateForSession(ctx context.Context, s *session.Session) (*ScenarioResult, error)
}

// StoryResult is the output of one spreadsheet run.
type StoryResult struct {
	Rows []domain.StoryRow
	Data []byte
}

type StoryService interface {
	// Generate returns one row per problem, in input order. Blank problems
	// get a blank story without a provider call.
	Generate(ctx context.Context, problems []string) ([]domain.StoryRow, error)

	// Process reads the problem column from a spreadsheet, generates the
	// stories and renders the two-column output workbook.
	Process(ctx context.Context, r io.Reader, filename string) (*StoryResult, error)
}

type TemplateService interface {
	Kinds() []domain.EventKind
	List(kind domain.EventKind) []template.Preset
	Get(kind domain.EventKind, name string) (template.Preset, error)
	Default(kind domain.EventKind) (template.Preset, error)
}
