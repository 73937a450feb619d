// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver stands in for tea.Program: it calls Update directly and runs
// every returned Cmd on the spot, feeding the resulting messages back in
// until nothing is left. Cmds that do not return within a short deadline
// (cursor blinks, spinner ticks, calls blocked on a fake) are abandoned,
// which lets tests observe a model while work is still in flight.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxChain bounds how many messages one Cmd may lead to.
const maxChain = 100

// cmdDeadline separates message factories, which return at once, from
// timer-driven Cmds, which wait for hundreds of milliseconds.
const cmdDeadline = 10 * time.Millisecond

// Driver is a synchronous harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has run. Later input is ignored.
	Quitting bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.Run(d.Model.Init())
}

// Send delivers msg and runs everything it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.Run(cmd)
}

// Run executes cmd as if the model had returned it.
func (d *Driver) Run(cmd tea.Cmd) {
	d.T.Helper()
	d.run(cmd, 0)
}

// ── keys ─────────────────────────────────────────────────────────────────────

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressKeys sends each rune of keys in turn, stopping if the model quits.
func (d *Driver) PressKeys(keys string) {
	d.T.Helper()
	for _, r := range keys {
		d.PressKey(r)
	}
}

// Type is PressKeys for text entry into inputs.
func (d *Driver) Type(s string) {
	d.T.Helper()
	d.PressKeys(s)
}

func (d *Driver) PressEnter() { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyCtrlC}) }
func (d *Driver) PressUp()    { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) PressDown()  { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyDown}) }
func (d *Driver) PressTab()   { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyTab}) }

// ── output ───────────────────────────────────────────────────────────────────

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

// ViewContains reports whether the rendering contains every part.
func (d *Driver) ViewContains(parts ...string) bool {
	out := d.View()
	for _, p := range parts {
		if !strings.Contains(out, p) {
			return false
		}
	}
	return true
}

// ── command execution ────────────────────────────────────────────────────────

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxChain {
		d.T.Logf("teatest: command chain cut off after %d messages", maxChain)
		return
	}

	msg, ok := await(cmd)
	if !ok || msg == nil || isBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.run(next, depth+1)
	}
}

// await runs cmd on its own goroutine and waits up to cmdDeadline. A Cmd
// that misses the deadline keeps running but its message is discarded.
func await(cmd tea.Cmd) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	timer := time.NewTimer(cmdDeadline)
	defer timer.Stop()
	select {
	case msg := <-done:
		return msg, true
	case <-timer.C:
		return nil, false
	}
}

// isBlink matches the cursor package's unexported blink messages, which
// would otherwise chain into more timer Cmds.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
