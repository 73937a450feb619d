package cli

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/cuesheet/internal/cli/formatter"
	"github.com/alexanderramin/cuesheet/internal/service"
)

// resultView shows a generated scenario and saves it on request.
type resultView struct {
	state      *SharedState
	result     *service.ScenarioResult
	eventName  string
	showPrompt bool
	vp         viewport.Model
}

func newResultView(state *SharedState, result *service.ScenarioResult, eventName string) *resultView {
	v := &resultView{
		state:     state,
		result:    result,
		eventName: eventName,
		vp:        viewport.New(max(state.Width, 20), state.ContentHeight()),
	}
	v.render()
	return v
}

func (v *resultView) ID() ViewID    { return ViewResult }
func (v *resultView) Title() string { return "시나리오" }

func (v *resultView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "저장")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "프롬프트 보기")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "스크롤")),
	}
}

func (v *resultView) Init() tea.Cmd {
	return nil
}

func (v *resultView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		v.render()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return v, v.save()
		case "p":
			v.showPrompt = !v.showPrompt
			v.render()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *resultView) View() string {
	return v.vp.View()
}

func (v *resultView) render() {
	width := max(v.vp.Width-4, 20)
	if v.showPrompt {
		v.vp.SetContent(formatter.Header("프롬프트") + "\n" + v.result.Prompt)
	} else {
		v.vp.SetContent(formatter.RenderScenario(v.result.Text, width))
	}
	v.vp.GotoTop()
}

func (v *resultView) save() tea.Cmd {
	path, err := v.state.App.Exporter.SaveScenario(v.eventName, v.result.Text)
	if err != nil {
		return setStatus(formatter.Error("저장하지 못했습니다: " + err.Error()))
	}
	return setStatus(formatter.Success("시나리오 저장: " + path))
}
