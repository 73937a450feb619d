package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/cli/formatter"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/llm"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/session"
)

// scenarioGeneratedMsg carries the outcome of one generation call.
type scenarioGeneratedMsg struct {
	result    *service.ScenarioResult
	eventName string
	err       error
}

// editorView is the agenda list. It keeps no copy of the rows: every
// render reads them from the session, so positions are always the
// current ones.
type editorView struct {
	state   *SharedState
	cursor  int
	spinner spinner.Model
}

func newEditorView(state *SharedState) *editorView {
	return &editorView{
		state: state,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(formatter.StylePurple),
		),
	}
}

func (v *editorView) ID() ViewID    { return ViewEditor }
func (v *editorView) Title() string { return "행사 순서" }

func (v *editorView) ShortHelp() []key.Binding {
	if v.state.Generating {
		return []key.Binding{
			key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "종료")),
		}
	}
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "추가")),
		key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "수정")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "삭제")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "템플릿")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "행사 정보")),
	}
	if v.rowCount() > 0 {
		bindings = append(bindings, key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "생성")))
	}
	return append(bindings, key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "종료")))
}

func (v *editorView) Init() tea.Cmd {
	return nil
}

func (v *editorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scenarioGeneratedMsg:
		v.state.Generating = false
		if msg.err != nil {
			v.state.Status = errorStatus(msg.err)
			return v, nil
		}
		v.state.Status = ""
		return v, pushView(newResultView(v.state, msg.result, msg.eventName))

	case spinner.TickMsg:
		if !v.state.Generating {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		// The agenda is locked while a generation runs.
		if v.state.Generating {
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < v.rowCount()-1 {
				v.cursor++
			}
		case "a":
			return v, v.addItem()
		case "e", "enter":
			return v, v.editItem()
		case "d", "x":
			return v, v.deleteItem()
		case "t":
			return v, v.changeTemplate()
		case "m":
			return v, v.editMeta()
		case "g":
			return v, v.generate()
		case "q":
			return v, func() tea.Msg { return quitMsg{} }
		}
	}
	return v, nil
}

func (v *editorView) View() string {
	rows, meta, preset := v.state.snapshot()

	var b strings.Builder
	b.WriteString(formatter.FormatEventMeta(meta, preset.Name))
	b.WriteString("\n\n")
	b.WriteString(formatter.FormatAgenda(rows, min(v.cursor, len(rows)-1)))
	if v.state.Generating {
		b.WriteString("\n\n  " + v.spinner.View() + " " + formatter.Dim("시나리오 생성 중... 완료될 때까지 편집할 수 없습니다."))
	}
	return b.String()
}

func (v *editorView) rowCount() int {
	rows, _, _ := v.state.snapshot()
	return len(rows)
}

func (v *editorView) clampCursor() {
	n := v.rowCount()
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// selectedRow returns the row under the cursor.
func (v *editorView) selectedRow() (agenda.Row, bool) {
	rows, _, _ := v.state.snapshot()
	if len(rows) == 0 {
		return agenda.Row{}, false
	}
	v.clampCursor()
	return rows[v.cursor], true
}

// ── template and metadata ────────────────────────────────────────────────────

// startSetup runs the opening steps: template, then event details.
func (v *editorView) startSetup() tea.Cmd {
	choice := v.currentTemplateChoice()
	form := wizardSelectTemplate(v.state.App.Templates, choice)
	return startWizardCmd("템플릿 선택", form, func() tea.Cmd {
		return tea.Batch(v.applyTemplate(choice), v.editMeta())
	})
}

func (v *editorView) changeTemplate() tea.Cmd {
	choice := v.currentTemplateChoice()
	form := wizardSelectTemplate(v.state.App.Templates, choice)
	return startWizardCmd("템플릿 변경", form, func() tea.Cmd {
		return v.applyTemplate(choice)
	})
}

func (v *editorView) currentTemplateChoice() *templateChoice {
	_, meta, preset := v.state.snapshot()
	return &templateChoice{Kind: string(meta.Kind), Name: preset.Name}
}

// applyTemplate resets the agenda to the chosen preset. Choosing the preset
// already in use keeps the current rows.
func (v *editorView) applyTemplate(choice *templateChoice) tea.Cmd {
	p, err := v.state.App.Templates.Get(domain.EventKind(choice.Kind), choice.Name)
	if err != nil {
		return setStatus(errorStatus(err))
	}
	changed, err := v.state.Session.ApplyTemplate(p)
	if err != nil {
		return setStatus(errorStatus(err))
	}
	if !changed {
		return setStatus(formatter.Dim("이미 사용 중인 템플릿입니다. 행사 순서를 유지합니다."))
	}
	v.cursor = 0
	return setStatus(formatter.Success("템플릿 적용: " + p.Name))
}

func (v *editorView) editMeta() tea.Cmd {
	_, meta, _ := v.state.snapshot()
	fields := metaFieldsFrom(meta)
	return startWizardCmd("행사 정보", wizardEventMeta(meta.Kind, fields), func() tea.Cmd {
		return v.applyMeta(fields)
	})
}

func (v *editorView) applyMeta(fields *metaFields) tea.Cmd {
	err := v.state.Session.Mutate(func(_ *agenda.Editor, meta *domain.EventMeta) error {
		return fields.apply(meta)
	})
	if err != nil {
		return setStatus(errorStatus(err))
	}
	return setStatus(formatter.Success("행사 정보를 저장했습니다."))
}

// ── agenda rows ──────────────────────────────────────────────────────────────

func (v *editorView) addItem() tea.Cmd {
	fields := &itemFields{Minutes: fmt.Sprint(domain.DefaultDurationMinutes)}
	return startWizardCmd("순서 추가", wizardAgendaItem(fields), func() tea.Cmd {
		return v.appendItem(fields)
	})
}

func (v *editorView) appendItem(fields *itemFields) tea.Cmd {
	err := v.state.Session.Mutate(func(ed *agenda.Editor, _ *domain.EventMeta) error {
		if !ed.Append(strings.TrimSpace(fields.Label), fields.minutes(), strings.TrimSpace(fields.Detail)) {
			return domain.NewValidationError("label", "순서 이름을 입력해주세요.")
		}
		v.cursor = ed.Len() - 1
		return nil
	})
	if err != nil {
		return setStatus(errorStatus(err))
	}
	return setStatus(formatter.Success("순서를 추가했습니다."))
}

// editItem opens the row form bound to the row's stable ID, so the edit
// lands on the same row even if positions shift before it is saved.
func (v *editorView) editItem() tea.Cmd {
	row, ok := v.selectedRow()
	if !ok {
		return nil
	}
	fields := itemFieldsFrom(row)
	return startWizardCmd("순서 수정", wizardAgendaItem(fields), func() tea.Cmd {
		return v.updateItem(row.ID, fields)
	})
}

func (v *editorView) updateItem(id int64, fields *itemFields) tea.Cmd {
	err := v.state.Session.Mutate(func(ed *agenda.Editor, _ *domain.EventMeta) error {
		label := strings.TrimSpace(fields.Label)
		if label == "" {
			return domain.NewValidationError("label", "순서 이름을 입력해주세요.")
		}
		if err := ed.UpdateByID(id, agenda.FieldLabel, label); err != nil {
			return err
		}
		if err := ed.UpdateByID(id, agenda.FieldDuration, fields.minutes()); err != nil {
			return err
		}
		return ed.UpdateByID(id, agenda.FieldDetail, strings.TrimSpace(fields.Detail))
	})
	if err != nil {
		return setStatus(errorStatus(err))
	}
	return setStatus(formatter.Success("순서를 수정했습니다."))
}

func (v *editorView) deleteItem() tea.Cmd {
	row, ok := v.selectedRow()
	if !ok {
		return nil
	}
	confirmed := new(bool)
	title := fmt.Sprintf("'%s' 순서를 삭제할까요?", row.Label)
	return startWizardCmd("순서 삭제", wizardConfirm(title, "삭제", confirmed), func() tea.Cmd {
		if !*confirmed {
			return setStatus(formatter.Dim("삭제를 취소했습니다."))
		}
		return v.removeItem(row.ID)
	})
}

func (v *editorView) removeItem(id int64) tea.Cmd {
	err := v.state.Session.Mutate(func(ed *agenda.Editor, _ *domain.EventMeta) error {
		return ed.RemoveByID(id)
	})
	if err != nil {
		return setStatus(errorStatus(err))
	}
	v.clampCursor()
	return setStatus(formatter.Success("순서를 삭제했습니다."))
}

// ── generation ───────────────────────────────────────────────────────────────

func (v *editorView) generate() tea.Cmd {
	rows, meta, _ := v.state.snapshot()
	if len(rows) == 0 {
		return setStatus(formatter.Error("행사 순서를 하나 이상 추가해주세요."))
	}

	v.state.Generating = true
	v.state.Status = ""
	scenarios := v.state.App.Scenarios
	sess := v.state.Session
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		result, err := scenarios.GenerateForSession(context.Background(), sess)
		return scenarioGeneratedMsg{result: result, eventName: meta.Name, err: err}
	})
}

// errorStatus turns a workflow error into the inline message. Provider
// details stay in the log.
func errorStatus(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return formatter.Error(ve.Message)
	case errors.Is(err, llm.ErrProvider):
		return formatter.Error(service.ScenarioFailureMessage) + " " + formatter.Dim("("+llm.ErrorCode(err)+")")
	case errors.Is(err, session.ErrBusy):
		return formatter.Error("시나리오를 생성하는 중입니다. 잠시 후 다시 시도해주세요.")
	default:
		return formatter.Error(err.Error())
	}
}
