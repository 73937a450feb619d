package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID tells the app model what kind of view is on top.
type ViewID int

const (
	ViewEditor ViewID = iota
	ViewForm
	ViewResult
)

// View is one screen of the editor. The app model stacks them; only the
// top one receives keys.
type View interface {
	tea.Model
	ID() ViewID
	Title() string            // breadcrumb label
	ShortHelp() []key.Binding // hints for the bottom bar
}

// Messages views send to the app model.
type (
	// pushViewMsg opens v on top of the stack.
	pushViewMsg struct{ view View }

	// statusMsg replaces the inline status line.
	statusMsg struct{ text string }

	// wizardCompleteMsg closes the top form and then runs nextCmd, so the
	// follow-up always sees the view underneath.
	wizardCompleteMsg struct{ nextCmd tea.Cmd }

	// quitMsg ends the program.
	quitMsg struct{}
)

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func setStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}
