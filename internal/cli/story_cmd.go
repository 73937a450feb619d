package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cuesheet/internal/cli/formatter"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/sheet"
)

const (
	defaultStoryTemplateFile = "문제_템플릿.xlsx"
	storyPreviewRows         = 10
)

func newStoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "story",
		Short: "Turn arithmetic expressions into story problems",
	}

	cmd.AddCommand(
		newStoryTemplateCmd(app),
		newStoryGenerateCmd(app),
	)

	return cmd
}

func newStoryTemplateCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a blank input spreadsheet with example problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := sheet.BlankTemplate()
			if err != nil {
				return err
			}
			if err := app.Exporter.SaveFile(out, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("템플릿 저장: "+out))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", defaultStoryTemplateFile, "output path")
	return cmd
}

func newStoryGenerateCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate INPUT",
		Short: "Generate story problems for every row of an .xlsx or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if out == "" {
				out = defaultStoryOutput(input)
			}

			f, err := app.fs().Open(input)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()

			stop := func() {}
			if app.interactive() {
				spin, stopSpin := formatter.StartSpinner(cmd.ErrOrStderr(), "문장제 생성 중...")
				unlisten := app.StoryProgress.Listen(func(done, total int) {
					spin.SetMessage(fmt.Sprintf("문장제 생성 중... %d/%d", done, total))
				})
				stop = func() {
					unlisten()
					stopSpin()
				}
			}

			result, err := app.Stories.Process(cmd.Context(), f, filepath.Base(input))
			stop()
			if err != nil {
				return app.providerFailure(err, service.StoryFailureMessage)
			}
			if err := app.Exporter.SaveFile(out, result.Data); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, formatter.FormatStoryPreview(result.Rows, storyPreviewRows))
			fmt.Fprintln(w, formatter.Success(fmt.Sprintf("%d행 저장: %s", len(result.Rows), out)))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output .xlsx path (default <input>_문장제.xlsx)")
	return cmd
}

// defaultStoryOutput names the result next to the input file.
func defaultStoryOutput(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_문장제.xlsx"
}
