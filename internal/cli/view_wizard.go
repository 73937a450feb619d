package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// wizardView shows one huh form on the stack. done runs once the form is
// submitted and its Cmd follows the form closing. Esc closes the form
// without running done, so nothing bound to the form is applied.
type wizardView struct {
	form  *huh.Form
	title string
	done  func() tea.Cmd
}

func newWizardView(title string, form *huh.Form, done func() tea.Cmd) *wizardView {
	return &wizardView{form: form, title: title, done: done}
}

// startWizardCmd opens a form over the current view.
func startWizardCmd(title string, form *huh.Form, done func() tea.Cmd) tea.Cmd {
	return pushView(newWizardView(title, form, done))
}

func (v *wizardView) ID() ViewID    { return ViewForm }
func (v *wizardView) Title() string { return v.title }

func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "다음")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "취소")),
	}
}

func (v *wizardView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return v, closeWizard(setStatus("취소했습니다."))
	}

	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		var next tea.Cmd
		if v.done != nil {
			next = v.done()
		}
		return v, closeWizard(next)
	case huh.StateAborted:
		return v, closeWizard(setStatus("취소했습니다."))
	}
	return v, cmd
}

func (v *wizardView) View() string {
	return v.form.View()
}

func closeWizard(next tea.Cmd) tea.Cmd {
	return func() tea.Msg { return wizardCompleteMsg{nextCmd: next} }
}
