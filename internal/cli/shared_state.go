package cli

import (
	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/session"
	"github.com/alexanderramin/cuesheet/internal/template"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App     *App
	Session *session.Session

	// Generating is set while a scenario call is in flight. Every
	// mutation key is ignored until it clears.
	Generating bool

	// Status is the last inline message (saved path, validation error).
	Status string

	// Terminal dimensions
	Width  int
	Height int
}

// snapshot copies what the views render from the session.
func (s *SharedState) snapshot() (rows []agenda.Row, meta domain.EventMeta, preset template.Preset) {
	s.Session.View(func(ed *agenda.Editor, m domain.EventMeta, p template.Preset) {
		rows = ed.Rows()
		meta = m
		preset = p
	})
	return rows, meta, preset
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status line (1) and help bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
