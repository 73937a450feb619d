package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/cuesheet/internal/cli/formatter"
	"github.com/alexanderramin/cuesheet/internal/session"
)

// appModel is the root bubbletea model of the scenario editor. viewStack[0]
// is always the agenda editor; forms and the result view open above it.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(app *App, sess *session.Session) appModel {
	state := &SharedState{App: app, Session: sess}
	return appModel{
		state:     state,
		viewStack: []View{newEditorView(state)},
	}
}

func (m *appModel) editor() *editorView {
	return m.viewStack[0].(*editorView)
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// updateAt sends msg to the view at index i and stores the result.
func (m *appModel) updateAt(i int, msg tea.Msg) tea.Cmd {
	updated, cmd := m.viewStack[i].Update(msg)
	m.viewStack[i] = updated.(View)
	return cmd
}

func (m *appModel) updateTop(msg tea.Msg) tea.Cmd {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.updateAt(len(m.viewStack)-1, msg)
}

func (m *appModel) push(v View) tea.Cmd {
	m.viewStack = append(m.viewStack, v)
	var sizeCmd tea.Cmd
	if m.state.Width > 0 {
		sizeCmd = m.updateTop(tea.WindowSizeMsg{Width: m.state.Width, Height: m.state.Height})
	}
	return tea.Batch(m.activeView().Init(), sizeCmd)
}

// pop closes the top view. The editor itself is never closed.
func (m *appModel) pop() {
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

// Init opens the template step, which chains into the metadata step.
func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.editor().Init(), m.editor().startSetup())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
		cmds := make([]tea.Cmd, len(m.viewStack))
		for i := range m.viewStack {
			cmds[i] = m.updateAt(i, msg)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		return m, m.push(msg.view)

	case wizardCompleteMsg:
		m.pop()
		return m, msg.nextCmd

	case statusMsg:
		m.state.Status = msg.text
		return m, nil

	case quitMsg:
		m.quitting = true
		return m, tea.Quit

	case scenarioGeneratedMsg, spinner.TickMsg:
		// Generation belongs to the editor whatever is open above it.
		return m, m.updateAt(0, msg)
	}

	return m, m.updateTop(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	// Forms handle esc themselves as cancel.
	if msg.Type == tea.KeyEsc && len(m.viewStack) > 1 && m.activeView().ID() != ViewForm {
		m.pop()
		return m, nil
	}
	return m, m.updateTop(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	if v := m.activeView(); v != nil {
		b.WriteString(v.View())
	}
	b.WriteByte('\n')
	if m.state.Status != "" {
		b.WriteString("  " + m.state.Status)
	}
	b.WriteByte('\n')
	b.WriteString(m.footer())

	out := b.String()
	// Fill the screen so the alt-screen renderer leaves no stale lines.
	if lines := strings.Count(out, "\n") + 1; lines < m.state.Height {
		out += strings.Repeat("\n", m.state.Height-lines)
	}
	return out
}

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

func (m *appModel) header() string {
	crumbs := make([]string, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	title := formatter.StylePurple.Render("cuesheet")
	if len(crumbs) > 0 {
		title += formatter.Dim(" › " + strings.Join(crumbs, " › "))
	}
	return title + "\n" + m.rule()
}

func (m *appModel) footer() string {
	var hints []string
	top := m.activeView()
	if top != nil {
		for _, b := range top.ShortHelp() {
			h := b.Help()
			hints = append(hints, formatter.Dim(h.Key+": "+h.Desc))
		}
	}
	if len(m.viewStack) > 1 && top.ID() != ViewForm {
		hints = append(hints, formatter.Dim("esc: 뒤로"))
	}
	return m.rule() + "\n" + strings.Join(hints, "  ")
}
