package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/logging"
	"github.com/colonyops/todos/internal/todos"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type ToggleCmd struct {
	flags *Flags
	app   *todos.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *todos.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"t"},
		Usage:     "Toggle a todo between active and completed",
		UsageText: "todos toggle <index>",
		Description: `Dispatches a TOGGLE_TODO action for the todo at index.

Indexes are zero-based positions in the full list, as shown by "todos list".
An index with no todo is recorded but changes nothing.

Examples:
  todos toggle 0`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "toggle")

	if c.NArg() != 1 {
		return fmt.Errorf("usage: todos toggle <index>")
	}

	index, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", c.Args().First(), err)
	}

	toggle := action.BindToggleTodo(cmd.app.Store)
	if err := toggle(ctx, index); err != nil {
		return fmt.Errorf("toggle todo: %w", err)
	}

	state := cmd.app.Store.State()
	if index < 0 || index >= len(state.Items) {
		log.Warn().Ctx(ctx).Int("index", index).Int("items", len(state.Items)).Msg("toggle index out of range")
		_, _ = fmt.Fprintf(c.Root().ErrWriter, "no todo at index %d\n", index)
		return nil
	}

	item := state.Items[index]
	status := "active"
	if item.Completed {
		status = "completed"
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "%d: %s (%s)\n", index, item.Text, status)
	return nil
}
