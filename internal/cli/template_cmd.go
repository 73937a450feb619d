package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cuesheet/internal/cli/formatter"
	"github.com/alexanderramin/cuesheet/internal/domain"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Browse agenda templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := app.Templates.Kinds()
			if kindFlag != "" {
				kind, err := parseKind(kindFlag)
				if err != nil {
					return err
				}
				kinds = []domain.EventKind{kind}
			}

			out := cmd.OutOrStdout()
			for i, kind := range kinds {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, formatter.FormatTemplateList(app.Templates.List(kind)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "", "event kind (학교 행사|교육청 행사, or school|office)")
	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show KIND NAME",
		Short: "Show a template's default agenda",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			p, err := app.Templates.Get(kind, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(p))
			return nil
		},
	}
}

func parseKind(s string) (domain.EventKind, error) {
	kind, ok := domain.ParseEventKind(s)
	if !ok {
		return "", fmt.Errorf("unknown event kind %q (want %q or %q)", s, domain.KindSchool, domain.KindOffice)
	}
	return kind, nil
}
