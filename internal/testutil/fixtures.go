package testutil

import (
	"time"

	"github.com/alexanderramin/cuesheet/internal/domain"
)

// EventDate is the fixed date used by meta fixtures.
var EventDate = time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

// Event meta options
type MetaOption func(*domain.EventMeta)

func WithKind(k domain.EventKind) MetaOption {
	return func(m *domain.EventMeta) {
		m.Kind = k
	}
}

func WithName(name string) MetaOption {
	return func(m *domain.EventMeta) {
		m.Name = name
	}
}

func WithMCCount(n int) MetaOption {
	return func(m *domain.EventMeta) {
		m.MCCount = n
	}
}

func WithVIPs(roster string) MetaOption {
	return func(m *domain.EventMeta) {
		m.VIPAttendees = roster
	}
}

// NewTestMeta returns valid school-event metadata for "입학식" at "강당".
func NewTestMeta(opts ...MetaOption) domain.EventMeta {
	m := domain.NewEventMeta(domain.KindSchool, EventDate)
	m.Name = "입학식"
	m.Location = "강당"
	for _, o := range opts {
		o(&m)
	}
	return m
}
