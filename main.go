package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todos/internal/commands"
	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/core/logging"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/todos"
	"github.com/colonyops/todos/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() falls back
	// to runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	exitCode := 0
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

// newApp builds the root command with every subcommand registered.
func newApp() *cli.Command {
	var (
		logCloser func()
		todoApp   = &todos.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "todos",
		Usage:     "A todo list driven by a journal of actions",
		UsageText: "todos [global options] command [command options]",
		Description: `Every change to the list is an action (ADD_TODO, TOGGLE_TODO,
SET_VISIBILITY_FILTER) appended to a journal. The list you see is the
journal replayed from the start.

Run 'todos' with no arguments to open the interactive list.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TODOS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/todos.log)",
				Sources:     cli.EnvVars("TODOS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TODOS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TODOS_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Read(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Always log to a file; use explicit path or default to <datadir>/todos.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			palette, ok := styles.GetPalette(cfg.TUI.Theme)
			if !ok {
				palette, _ = styles.GetPalette(styles.DefaultTheme)
			}
			styles.SetTheme(palette)

			if err := cfg.Validate(); err != nil {
				if commands.InspectsConfig(c.Args().Slice()) {
					log.Warn().Err(err).Msg("config is invalid, journal not opened")
					return ctx, nil
				}
				return ctx, fmt.Errorf("load config: invalid config: %w", err)
			}

			opened, err := todos.Open(ctx, cfg, logging.Component("todos"))
			if err != nil {
				return ctx, fmt.Errorf("open journal: %w", err)
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*todoApp = *opened

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := todoApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close journal")
				return err
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, todoApp)

	app = commands.NewAddCmd(flags, todoApp).Register(app)
	app = commands.NewToggleCmd(flags, todoApp).Register(app)
	app = commands.NewFilterCmd(flags, todoApp).Register(app)
	app = commands.NewListCmd(flags, todoApp).Register(app)
	app = commands.NewActionsCmd(flags, todoApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags, todoApp).Register(app)
	app = tuiCmd.Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'todos --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return app
}
