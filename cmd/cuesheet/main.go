package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/alexanderramin/cuesheet/internal/cli"
	"github.com/alexanderramin/cuesheet/internal/config"
	"github.com/alexanderramin/cuesheet/internal/export"
	"github.com/alexanderramin/cuesheet/internal/intelligence"
	"github.com/alexanderramin/cuesheet/internal/llm"
	"github.com/alexanderramin/cuesheet/internal/logging"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/session"
	"github.com/alexanderramin/cuesheet/internal/template"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		StoryProgress: &cli.ProgressRelay{},
		Fs:            afero.NewOsFs(),
		Now:           time.Now,
		Setup:         setup,
	}

	// Detect interactive terminal for the editor and progress spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	defer func() {
		if app.Logger != nil {
			_ = app.Logger.Sync()
		}
	}()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

// setup wires configuration, logging, the LLM client and the services once
// the global flags are parsed.
func setup(app *cli.App, opts cli.GlobalOptions) error {
	cfg, err := config.Load(opts.ConfigPath, opts.Flags)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	llmCfg := cfg.LLMConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client, err := llm.NewLazyClient(llmCfg, observer)
	if err != nil {
		return fmt.Errorf("creating %s client: %w", llmCfg.Provider, err)
	}

	catalog, err := template.Builtin()
	if err != nil {
		return fmt.Errorf("loading built-in templates: %w", err)
	}
	if cfg.Templates.Dir != "" {
		if err := catalog.LoadDir(afero.NewOsFs(), cfg.Templates.Dir, logger); err != nil {
			return fmt.Errorf("loading templates from %s: %w", cfg.Templates.Dir, err)
		}
	}

	useCases := service.NewLogUseCaseObserver(logger)
	app.Scenarios = service.NewScenarioService(intelligence.NewScenarioWriter(client), useCases)
	app.Stories = service.NewStoryService(intelligence.NewStoryWriter(client), service.StoryOptions{
		Concurrency: cfg.Story.Concurrency,
		Progress:    app.StoryProgress.Report,
	}, useCases)
	app.Templates = service.NewTemplateService(catalog)
	app.Exporter = export.NewOsExporter(cfg.Output.Dir)
	app.Sessions = session.NewStore(cfg.Server.SessionTTL, logger)
	app.Config = cfg
	app.Logger = logger
	return nil
}
