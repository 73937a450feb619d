package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/cli/formatter"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/export"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/session"
	"github.com/alexanderramin/cuesheet/internal/template"
)

// dateInputLayout is the form and YAML date format.
const dateInputLayout = "2006-01-02"

// errNotInteractive is returned when the editor is started without a TTY.
var errNotInteractive = errors.New("the scenario editor needs a terminal; use 'cuesheet scenario generate --input FILE' instead")

// scenarioInput is the YAML document read by `scenario generate`.
type scenarioInput struct {
	Kind         string        `yaml:"kind"`
	Template     string        `yaml:"template"`
	Name         *string       `yaml:"name"`
	Date         string        `yaml:"date"`
	Location     string        `yaml:"location"`
	MCCount      int           `yaml:"mc_count"`
	VIPAttendees string        `yaml:"vip_attendees"`
	Agenda       []agendaInput `yaml:"agenda"`
}

type agendaInput struct {
	Label           string `yaml:"label"`
	DurationMinutes int    `yaml:"duration_minutes"`
	Detail          string `yaml:"detail"`
}

func newScenarioCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Edit an event agenda and generate the MC script",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			preset, err := app.Templates.Default(domain.KindSchool)
			if err != nil {
				return err
			}
			sess := session.New("tui", preset, app.now())
			p := tea.NewProgram(newAppModel(app, sess), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.AddCommand(newScenarioGenerateCmd(app))
	return cmd
}

func newScenarioGenerateCmd(app *App) *cobra.Command {
	var (
		input      string
		outDir     string
		printText  bool
		showPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a scenario from a YAML event file",
		Example: `  cuesheet scenario generate --input event.yaml
  cuesheet scenario generate --input event.yaml --out scripts --print`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(app.fs(), input)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			var in scenarioInput
			if err := yaml.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("parsing %s: %w", input, err)
			}

			sess, err := buildSession(app, in)
			if err != nil {
				return err
			}

			result, err := app.Scenarios.GenerateForSession(cmd.Context(), sess)
			if err != nil {
				return app.providerFailure(err, service.ScenarioFailureMessage)
			}

			w := cmd.OutOrStdout()
			if showPrompt {
				fmt.Fprintln(w, formatter.Header("프롬프트"))
				fmt.Fprintln(w, result.Prompt)
				fmt.Fprintln(w)
			}
			if printText {
				fmt.Fprintln(w, result.Text)
				fmt.Fprintln(w)
			}

			exporter := app.Exporter
			if outDir != "" {
				exporter = export.NewExporter(app.fs(), outDir)
			}
			var name string
			sess.View(func(_ *agenda.Editor, meta domain.EventMeta, _ template.Preset) { name = meta.Name })
			path, err := exporter.SaveScenario(name, result.Text)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, formatter.Success("시나리오 저장: "+path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "event YAML file")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default output.dir)")
	cmd.Flags().BoolVar(&printText, "print", false, "also print the scenario to stdout")
	cmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print the assembled prompt")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// buildSession seeds a session from the input's template and then applies
// the metadata and agenda overrides through the editor.
func buildSession(app *App, in scenarioInput) (*session.Session, error) {
	kind := domain.KindSchool
	if in.Kind != "" {
		k, err := parseKind(in.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}

	var (
		preset template.Preset
		err    error
	)
	if in.Template != "" {
		preset, err = app.Templates.Get(kind, in.Template)
	} else {
		preset, err = app.Templates.Default(kind)
	}
	if err != nil {
		return nil, err
	}

	sess := session.New("cli", preset, app.now())
	err = sess.Mutate(func(ed *agenda.Editor, meta *domain.EventMeta) error {
		if in.Name != nil {
			meta.Name = *in.Name
		}
		if in.Date != "" {
			d, err := parseDate(in.Date)
			if err != nil {
				return domain.NewValidationError("date", err.Error())
			}
			meta.Date = d
		}
		meta.Location = in.Location
		if in.MCCount != 0 {
			meta.MCCount = in.MCCount
		}
		if kind.HasVIPs() {
			meta.VIPAttendees = in.VIPAttendees
		}
		return applyAgenda(ed, in.Agenda)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// applyAgenda overlays items onto the template rows: row i is updated in
// place (a blank label keeps the template's), extra items are appended and
// template rows past the last item are removed. No items keeps the
// template agenda unchanged.
func applyAgenda(ed *agenda.Editor, items []agendaInput) error {
	if len(items) == 0 {
		return nil
	}
	for i, it := range items {
		minutes := it.DurationMinutes
		if minutes == 0 {
			minutes = domain.DefaultDurationMinutes
		}
		if minutes < 1 {
			return domain.NewValidationError("agenda", fmt.Sprintf("%d번 순서의 시간은 1분 이상이어야 합니다.", i+1))
		}

		if i >= ed.Len() {
			if !ed.Append(strings.TrimSpace(it.Label), minutes, it.Detail) {
				return domain.NewValidationError("agenda", fmt.Sprintf("%d번 순서의 이름을 입력해주세요.", i+1))
			}
			continue
		}
		if label := strings.TrimSpace(it.Label); label != "" {
			if err := ed.Update(i, agenda.FieldLabel, label); err != nil {
				return err
			}
		}
		if err := ed.Update(i, agenda.FieldDuration, minutes); err != nil {
			return err
		}
		if err := ed.Update(i, agenda.FieldDetail, it.Detail); err != nil {
			return err
		}
	}
	for ed.Len() > len(items) {
		if err := ed.Remove(ed.Len() - 1); err != nil {
			return err
		}
	}
	return nil
}
