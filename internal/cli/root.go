package cli

import (
	"errors"
	"sync"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alexanderramin/cuesheet/internal/config"
	"github.com/alexanderramin/cuesheet/internal/export"
	"github.com/alexanderramin/cuesheet/internal/llm"
	"github.com/alexanderramin/cuesheet/internal/service"
	"github.com/alexanderramin/cuesheet/internal/session"
)

// App holds references to all services used by CLI commands. Setup, when
// set, fills the remaining fields after flags are parsed.
type App struct {
	Scenarios service.ScenarioService
	Stories   service.StoryService
	Templates service.TemplateService
	Exporter  *export.Exporter
	Sessions  *session.Store

	// StoryProgress relays row progress from the story workflow to
	// whichever command is currently running it.
	StoryProgress *ProgressRelay

	Fs     afero.Fs
	Config *config.Config
	Logger *zap.Logger

	Now           func() time.Time
	IsInteractive func() bool

	Setup func(app *App, opts GlobalOptions) error
}

// GlobalOptions are the persistent flags shared by every command. Flags is
// the running command's flag set, for binding into configuration.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	Flags      *pflag.FlagSet
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) fs() afero.Fs {
	if a.Fs != nil {
		return a.Fs
	}
	return afero.NewOsFs()
}

func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

// providerFailure replaces a provider error with the fixed user message.
// The provider detail goes to the log only. Other errors pass through.
func (a *App) providerFailure(err error, message string) error {
	if !errors.Is(err, llm.ErrProvider) {
		return err
	}
	a.logger().Error("completion failed",
		zap.String("code", llm.ErrorCode(err)),
		zap.Error(err),
	)
	return errors.New(message)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "cuesheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts GlobalOptions

	root := &cobra.Command{
		Use:           "cuesheet",
		Short:         "Event MC script and story problem generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			opts.Flags = cmd.Flags()
			return app.Setup(app, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./cuesheet.yaml or ~/.cuesheet/cuesheet.yaml)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newScenarioCmd(app),
		newTemplateCmd(app),
		newStoryCmd(app),
		newServeCmd(app),
	)

	return root
}

// ProgressRelay forwards (done, total) progress reports to the current
// listener, if any. It is safe for concurrent use.
type ProgressRelay struct {
	mu sync.Mutex
	fn func(done, total int)
}

// Report delivers one progress update.
func (r *ProgressRelay) Report(done, total int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	fn := r.fn
	r.mu.Unlock()
	if fn != nil {
		fn(done, total)
	}
}

// Listen installs fn as the listener and returns a function that removes it.
func (r *ProgressRelay) Listen(fn func(done, total int)) func() {
	if r == nil {
		return func() {}
	}
	r.mu.Lock()
	r.fn = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		r.fn = nil
		r.mu.Unlock()
	}
}
