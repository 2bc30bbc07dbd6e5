// Package cli wires the todo command line: the interactive view by default
// and scriptable subcommands around the same store.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/remote"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/tui"
	"github.com/idilsaglam/todo/internal/ui"
)

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

const skipConfig = "skip-config"

// App holds root flags and what PersistentPreRunE derives from them.
type App struct {
	ConfigFile string
	EnvFile    string
	APIURL     string
	Theme      string
	LogLevel   string
	NoColor    bool

	Config config.Config
	Logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{Logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Terminal client for a remote todo service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive view
  todo

  # Scriptable commands
  todo add "Buy milk" -p high -d "two litres"
  todo ls --group
  todo done 3
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipConfig] == "true" {
			return nil
		}
		return app.setup(cmd)
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "Config file (default: <user config dir>/todo/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.EnvFile, "env-file", "", "Env file loaded before TODO_* variables (default: .env)")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", "", "Todo service origin (overrides api_url)")
	cmd.PersistentFlags().StringVar(&app.Theme, "theme", "", "Theme: "+strings.Join(ui.Themes, "|"))
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colors")

	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the command line and returns the process exit code.
// Failures are reported on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		report(stderr, err)
	}
	return ExitCode(err)
}

func report(w io.Writer, err error) {
	ui.Fail(w, err.Error())
	var nf notFoundError
	var ue usageError
	switch {
	case errors.As(err, &nf):
		ui.Hint(w, "Hint: run `todo ls` to see ids")
	case errors.As(err, &ue):
		ui.Hint(w, "Run `todo --help` for usage.")
	}
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := (&config.Loader{File: a.ConfigFile, EnvFile: a.EnvFile, Logger: a.Logger}).Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.APIURL
	}
	if flags.Changed("theme") {
		cfg.Theme = a.Theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err: err}
	}

	ui.SetTheme(cfg.Theme)
	if a.NoColor {
		ui.DisableColor()
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.Config = cfg
	a.Logger = logger
	return nil
}

func (a *App) client() (*remote.Client, error) {
	return remote.NewClient(a.Config.APIURL, remote.WithLogger(a.Logger))
}

// loadStore builds a store and loads the collection into it.
func (a *App) loadStore(ctx context.Context) (*store.Store, error) {
	c, err := a.client()
	if err != nil {
		return nil, err
	}
	s := newStore(a, c)
	s.Initialize(ctx)
	if msg := s.LastError(); msg != "" {
		return nil, opError{msg: msg}
	}
	return s, nil
}

func newStore(a *App, r store.Remote) *store.Store {
	return store.New(r, store.WithLogger(a.Logger))
}

// lookup returns the loaded todo with id.
func lookup(s *store.Store, id string) (model.Todo, error) {
	td, ok := s.Get(model.ID(id))
	if !ok {
		return model.Todo{}, notFoundError{id: id}
	}
	return td, nil
}

// storeError turns a failed store call into what the user sees.
func storeError(s *store.Store, id model.ID, err error) error {
	if remote.IsNotFound(err) {
		return notFoundError{id: id.String()}
	}
	return opError{msg: s.LastError(), err: err}
}

func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive view",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	logger, closer, err := logging.ForTUI(app.Config.LogFile, app.Config.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	c, err := remote.NewClient(app.Config.APIURL, remote.WithLogger(logger))
	if err != nil {
		return err
	}
	s := store.New(c, store.WithLogger(logger))
	return tui.Run(cmd.Context(), s, tui.WithLogger(logger))
}
