// Package session holds the per-user editing state of the scenario form:
// one agenda editor, the metadata fields and a busy flag that blocks edits
// while a generation is running. Nothing here is persisted.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/template"
)

var (
	// ErrBusy is returned for any mutation attempted while a generation
	// for the same session is in flight.
	ErrBusy = errors.New("generation in progress")

	// ErrNotFound is returned by Store for unknown or expired session IDs.
	ErrNotFound = errors.New("session not found")
)

// Snapshot is the input of one generation, taken when it begins.
type Snapshot struct {
	Meta    domain.EventMeta
	Entries []agenda.Entry
}

// Session is one user's scenario form. Methods are safe for concurrent
// use; mutations are serialised and rejected with ErrBusy between Begin
// and End.
type Session struct {
	id string

	mu       sync.Mutex
	editor   *agenda.Editor
	meta     domain.EventMeta
	preset   template.Preset
	busy     bool
	lastSeen time.Time
}

// New creates a session seeded from preset.
func New(id string, preset template.Preset, now time.Time) *Session {
	s := &Session{
		id:       id,
		editor:   agenda.NewEditor(),
		meta:     domain.NewEventMeta(preset.Kind, now),
		lastSeen: now,
	}
	s.applyTemplate(preset)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// ApplyTemplate switches the active preset. When the key differs from the
// current one the agenda is reset to the preset's labels, the kind follows
// the preset and the event name is prefilled. Reports whether anything
// changed.
func (s *Session) ApplyTemplate(p template.Preset) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false, ErrBusy
	}
	return s.applyTemplate(p), nil
}

func (s *Session) applyTemplate(p template.Preset) bool {
	if !s.editor.Reset(p) {
		return false
	}
	s.preset = p
	s.meta.Kind = p.Kind
	s.meta.Name = p.SuggestedEventName()
	if !p.Kind.HasVIPs() {
		s.meta.VIPAttendees = ""
	}
	return true
}

// Mutate runs fn with exclusive access to the editor and metadata.
func (s *Session) Mutate(fn func(ed *agenda.Editor, meta *domain.EventMeta) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	return fn(s.editor, &s.meta)
}

// View runs fn with read access to the current state. It is allowed while
// busy; fn must not keep references past its return.
func (s *Session) View(fn func(ed *agenda.Editor, meta domain.EventMeta, preset template.Preset)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.editor, s.meta, s.preset)
}

// Begin marks the session busy and returns the generation input. Pair
// every successful Begin with End.
func (s *Session) Begin() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return Snapshot{}, ErrBusy
	}
	s.busy = true
	return Snapshot{Meta: s.meta, Entries: s.editor.Serialize()}, nil
}

// End clears the busy flag.
func (s *Session) End() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Busy reports whether a generation is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// idleSince reports whether the session is idle and was last used before
// cutoff.
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.busy && s.lastSeen.Before(cutoff)
}
