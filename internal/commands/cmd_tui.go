package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/colonyops/todos/internal/core/eventbus"
	"github.com/colonyops/todos/internal/core/todo"
	"github.com/colonyops/todos/internal/todos"
	"github.com/colonyops/todos/internal/tui"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type TuiCmd struct {
	flags *Flags
	app   *todos.App

	// flags
	noWatch bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *todos.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload when another process changes the journal",
			Sources:     cli.EnvVars("TODOS_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive todo list",
		Action: cmd.run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	deps := tui.Deps{
		Dispatcher: cmd.app.Store,
		Source:     cmd.app.Store,
		ShowCounts: cmd.app.Config.TUI.ShowCounts,
	}

	if !cmd.noWatch {
		watcher, err := cmd.app.NewWatcher()
		if err != nil {
			log.Warn().Err(err).Msg("journal watcher unavailable, external changes need a manual reload")
		} else {
			defer func() { _ = watcher.Close() }()
			deps.Changes = watcher.Watch(ctx)
		}
	}

	cmd.app.Bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	defer cmd.app.Bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})

	p := tea.NewProgram(tui.New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := cmd.app.Store.Subscribe(func(st todo.State) {
		p.Send(tui.StateChangedMsg{State: st})
	})
	defer unsubscribe()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
