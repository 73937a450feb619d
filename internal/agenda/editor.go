// Package agenda holds the ordered, mutable list of running-order steps
// edited during one scenario session.
//
// Position is the user-visible identity of a row: removing a row shifts
// every later row down by one. Each row also carries a synthetic ID that
// never changes, so a UI can bind an open edit to the row it was opened
// for and still reach it after an earlier row has been deleted. Positions
// are only derived when the list is serialized.
package agenda

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/cuesheet/internal/domain"
)

// Preset is the part of a template Reset needs.
type Preset interface {
	Key() string
	DefaultLabels() []string
}

// Row is an agenda item together with its stable synthetic ID.
type Row struct {
	ID int64 `json:"id"`
	domain.AgendaItem
}

// Entry is the serialized form of a row with its 1-based position.
type Entry struct {
	Position        int    `json:"position"`
	Label           string `json:"label"`
	DurationMinutes int    `json:"duration_minutes"`
	Detail          string `json:"detail"`
}

// Editor owns the agenda sequence for one session. It is not safe for
// concurrent use; callers serialise access (see session.Session).
type Editor struct {
	rows    []Row
	nextID  int64
	lastKey string
	applied bool
}

// NewEditor returns an empty editor with no template applied.
func NewEditor() *Editor {
	return &Editor{}
}

// Reset replaces every row with the preset's default labels, each with the
// default duration and an empty detail. Applying the same preset key twice
// in a row is a no-op; the return value reports whether rows changed.
func (e *Editor) Reset(p Preset) bool {
	key := p.Key()
	if e.applied && key == e.lastKey {
		return false
	}

	labels := p.DefaultLabels()
	rows := make([]Row, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, e.newRow(domain.AgendaItem{
			Label:           label,
			DurationMinutes: domain.DefaultDurationMinutes,
		}))
	}

	e.rows = rows
	e.lastKey = key
	e.applied = true
	return true
}

// LastTemplate returns the key of the preset last applied by Reset.
func (e *Editor) LastTemplate() string {
	return e.lastKey
}

// Append adds a row at the end. A blank label is rejected and Append
// returns false. minutes >= 1 is the caller's responsibility.
func (e *Editor) Append(label string, minutes int, detail string) bool {
	if strings.TrimSpace(label) == "" {
		return false
	}
	e.rows = append(e.rows, e.newRow(domain.AgendaItem{
		Label:           label,
		DurationMinutes: minutes,
		Detail:          detail,
	}))
	return true
}

// Update overwrites one field of the row at index. FieldLabel and
// FieldDetail take a string, FieldDuration an int. Empty labels are
// accepted while the user is still typing.
func (e *Editor) Update(index int, field Field, value any) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	return setField(&e.rows[index].AgendaItem, field, value)
}

// UpdateByID is Update addressed by stable row ID.
func (e *Editor) UpdateByID(id int64, field Field, value any) error {
	idx := e.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: row id %d", ErrIndexOutOfRange, id)
	}
	return e.Update(idx, field, value)
}

// Remove deletes the row at index and shifts later rows left by one.
func (e *Editor) Remove(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	e.rows = slices.Delete(e.rows, index, index+1)
	return nil
}

// RemoveByID is Remove addressed by stable row ID.
func (e *Editor) RemoveByID(id int64) error {
	idx := e.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: row id %d", ErrIndexOutOfRange, id)
	}
	return e.Remove(idx)
}

// Len returns the number of rows.
func (e *Editor) Len() int {
	return len(e.rows)
}

// Rows returns a copy of the current rows in order.
func (e *Editor) Rows() []Row {
	return slices.Clone(e.rows)
}

// IndexOf returns the current position (0-based) of the row with id, or -1.
func (e *Editor) IndexOf(id int64) int {
	return slices.IndexFunc(e.rows, func(r Row) bool { return r.ID == id })
}

// Serialize renders the rows with contiguous 1-based positions.
func (e *Editor) Serialize() []Entry {
	out := make([]Entry, len(e.rows))
	for i, r := range e.rows {
		out[i] = Entry{
			Position:        i + 1,
			Label:           r.Label,
			DurationMinutes: r.DurationMinutes,
			Detail:          r.Detail,
		}
	}
	return out
}

// TotalMinutes sums the durations of all rows.
func (e *Editor) TotalMinutes() int {
	total := 0
	for _, r := range e.rows {
		total += r.DurationMinutes
	}
	return total
}

func (e *Editor) newRow(item domain.AgendaItem) Row {
	e.nextID++
	return Row{ID: e.nextID, AgendaItem: item}
}

func (e *Editor) checkIndex(index int) error {
	if index < 0 || index >= len(e.rows) {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(e.rows))
	}
	return nil
}

func setField(item *domain.AgendaItem, field Field, value any) error {
	switch field {
	case FieldLabel, FieldDetail:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants string, got %T", ErrFieldValue, field, value)
		}
		if field == FieldLabel {
			item.Label = s
		} else {
			item.Detail = s
		}
	case FieldDuration:
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("%w: %s wants int, got %T", ErrFieldValue, field, value)
		}
		item.DurationMinutes = n
	default:
		return fmt.Errorf("%w: unknown field %s", ErrFieldValue, field)
	}
	return nil
}
