package domain

import "time"

// DefaultDurationMinutes is the duration given to template rows and the
// default for newly added rows.
const DefaultDurationMinutes = 5

// AgendaItem is one step of an event's running order.
type AgendaItem struct {
	Label           string `json:"label" yaml:"label"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
	Detail          string `json:"detail" yaml:"detail"`
}

// EventMeta holds the free-form fields of the scenario form.
type EventMeta struct {
	Kind         EventKind `json:"kind" yaml:"kind" validate:"required,event_kind"`
	Name         string    `json:"name" yaml:"name" validate:"required"`
	Date         time.Time `json:"date" yaml:"date"`
	Location     string    `json:"location" yaml:"location"`
	MCCount      int       `json:"mc_count" yaml:"mc_count" validate:"oneof=1 2"`
	VIPAttendees string    `json:"vip_attendees,omitempty" yaml:"vip_attendees"`
}

// NewEventMeta returns metadata with the form defaults applied.
func NewEventMeta(kind EventKind, now time.Time) EventMeta {
	return EventMeta{
		Kind:    kind,
		Date:    now,
		MCCount: 1,
	}
}
