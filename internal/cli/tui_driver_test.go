package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/session"
	"github.com/alexanderramin/cuesheet/internal/teatest"
	"github.com/alexanderramin/cuesheet/internal/template"
)

// TestDriver wraps teatest.Driver with editor-specific inspection methods.
// It provides access to appModel internals (view stack, shared state and
// the session) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
	Session *session.Session
}

// NewTestDriver starts the editor on the named school preset and dismisses
// the opening template wizard, leaving the agenda editor active.
func NewTestDriver(t *testing.T, app *App, presetName string) *TestDriver {
	t.Helper()

	preset, err := app.Templates.Get(domain.KindSchool, presetName)
	require.NoError(t, err)
	sess := session.New("test", preset, app.now())

	m := newAppModel(app, sess)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	td := &TestDriver{Driver: d, Session: sess}
	require.Equal(t, ViewForm, td.ActiveViewID(), "setup wizard opens first")
	td.PressEsc()
	require.Equal(t, ViewEditor, td.ActiveViewID())
	return td
}

// ── inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// StackDepth returns the number of views on the stack.
func (d *TestDriver) StackDepth() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Editor returns the agenda editor view at the bottom of the stack.
func (d *TestDriver) Editor() *editorView {
	return d.appModel().viewStack[0].(*editorView)
}

// Rows returns the session's current agenda rows.
func (d *TestDriver) Rows() []agenda.Row {
	rows, _, _ := d.State().snapshot()
	return rows
}

// Meta returns the session's current metadata.
func (d *TestDriver) Meta() domain.EventMeta {
	_, meta, _ := d.State().snapshot()
	return meta
}

// Preset returns the session's current template.
func (d *TestDriver) Preset() template.Preset {
	_, _, p := d.State().snapshot()
	return p
}

// Labels returns the agenda labels in order.
func (d *TestDriver) Labels() []string {
	rows := d.Rows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}
