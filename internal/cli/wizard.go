package cli

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/cli/formatter"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/service"
)

// cuesheetHuhTheme returns a custom huh theme using the Gruvbox palette.
func cuesheetHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(cuesheetHuhTheme()).WithShowHelp(false)
}

// ── template selection ───────────────────────────────────────────────────────

// templateChoice is bound to the template form.
type templateChoice struct {
	Kind string
	Name string
}

// wizardSelectTemplate asks for the event kind and then one of its presets.
// The preset list follows the kind selected above it.
func wizardSelectTemplate(templates service.TemplateService, choice *templateChoice) *huh.Form {
	kinds := make([]huh.Option[string], 0, len(templates.Kinds()))
	for _, k := range templates.Kinds() {
		kinds = append(kinds, huh.NewOption(string(k), string(k)))
	}

	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("행사 종류").
				Options(kinds...).
				Value(&choice.Kind),
			huh.NewSelect[string]().
				Title("템플릿").
				Description("템플릿을 바꾸면 행사 순서가 템플릿 기본값으로 바뀝니다.").
				OptionsFunc(func() []huh.Option[string] {
					presets := templates.List(domain.EventKind(choice.Kind))
					opts := make([]huh.Option[string], 0, len(presets))
					for _, p := range presets {
						opts = append(opts, huh.NewOption(p.Name, p.Name))
					}
					return opts
				}, &choice.Kind).
				Value(&choice.Name),
		),
	)
}

// ── event metadata ───────────────────────────────────────────────────────────

// metaFields is the string-typed form model of domain.EventMeta.
type metaFields struct {
	Name     string
	Date     string
	Location string
	MCCount  string
	VIPs     string
}

func metaFieldsFrom(meta domain.EventMeta) *metaFields {
	mc := strconv.Itoa(meta.MCCount)
	if mc != "2" {
		mc = "1"
	}
	return &metaFields{
		Name:     meta.Name,
		Date:     meta.Date.Format(dateInputLayout),
		Location: meta.Location,
		MCCount:  mc,
		VIPs:     meta.VIPAttendees,
	}
}

// apply copies validated form values onto meta.
func (f *metaFields) apply(meta *domain.EventMeta) error {
	d, err := parseDate(f.Date)
	if err != nil {
		return domain.NewValidationError("date", err.Error())
	}
	meta.Name = strings.TrimSpace(f.Name)
	meta.Date = d
	meta.Location = strings.TrimSpace(f.Location)
	meta.MCCount = domain.ClampInt(parsePositiveInt(f.MCCount, 1), 1, 2)
	if meta.Kind.HasVIPs() {
		meta.VIPAttendees = strings.TrimSpace(f.VIPs)
	} else {
		meta.VIPAttendees = ""
	}
	return nil
}

// wizardEventMeta edits the free-form fields. The VIP roster is only asked
// for kinds that have one.
func wizardEventMeta(kind domain.EventKind, f *metaFields) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("행사명").
				Value(&f.Name).
				Validate(validateRequired("행사명을 입력해주세요.")),
			huh.NewInput().
				Title("행사 날짜 (YYYY-MM-DD)").
				Placeholder(time.Now().Format(dateInputLayout)).
				Value(&f.Date).
				Validate(func(s string) error {
					_, err := parseDate(s)
					return err
				}),
			huh.NewInput().
				Title("행사 장소").
				Value(&f.Location),
			huh.NewSelect[string]().
				Title("사회자 수").
				Description("2명을 선택하면 사회자 1과 사회자 2가 번갈아 진행하는 대본이 만들어집니다.").
				Options(
					huh.NewOption("1명", "1"),
					huh.NewOption("2명", "2"),
				).
				Value(&f.MCCount),
		),
	}
	if kind.HasVIPs() {
		groups = append(groups, huh.NewGroup(
			huh.NewText().
				Title("참석 내빈").
				Description("소개할 순서대로 한 줄에 한 분씩 입력하세요.").
				Value(&f.VIPs),
		))
	}
	return newForm(groups...)
}

// ── agenda rows ──────────────────────────────────────────────────────────────

// itemFields is the form model of one agenda row.
type itemFields struct {
	Label   string
	Minutes string
	Detail  string
}

func itemFieldsFrom(row agenda.Row) *itemFields {
	return &itemFields{
		Label:   row.Label,
		Minutes: strconv.Itoa(row.DurationMinutes),
		Detail:  row.Detail,
	}
}

func (f *itemFields) minutes() int {
	return parsePositiveInt(f.Minutes, domain.DefaultDurationMinutes)
}

// wizardAgendaItem adds or edits one agenda row.
func wizardAgendaItem(f *itemFields) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("순서 이름").
				Value(&f.Label).
				Validate(validateRequired("순서 이름을 입력해주세요.")),
			huh.NewInput().
				Title("소요 시간 (분)").
				Placeholder(strconv.Itoa(domain.DefaultDurationMinutes)).
				Value(&f.Minutes).
				Validate(validatePositiveInt),
			huh.NewText().
				Title("상세 내용").
				Description("담당자, 유의 사항 등 대본에 반영할 내용").
				Value(&f.Detail),
		),
	)
}

// wizardConfirm asks a yes/no question.
func wizardConfirm(title, affirmative string, result *bool) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(affirmative).
				Negative("취소").
				Value(result),
		),
	)
}

// ── validation helpers ───────────────────────────────────────────────────────

// parsePositiveInt parses s as a positive integer, returning fallback if s is
// empty, non-numeric, or non-positive. Used after huh form validation has
// already ensured the string is valid, so this is a safe conversion.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return errors.New("1 이상의 숫자를 입력해주세요.")
	}
	return nil
}

func validateRequired(message string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	}
}

// parseDate accepts YYYY-MM-DD in local time.
func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateInputLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, errors.New("날짜는 YYYY-MM-DD 형식으로 입력해주세요.")
	}
	return d, nil
}
