package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/logging"
	"github.com/colonyops/todos/internal/todos"
	"github.com/urfave/cli/v3"
)

type FilterCmd struct {
	flags *Flags
	app   *todos.App
}

// NewFilterCmd creates a new filter command
func NewFilterCmd(flags *Flags, app *todos.App) *FilterCmd {
	return &FilterCmd{flags: flags, app: app}
}

// Register adds the filter command to the application
func (cmd *FilterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "filter",
		Aliases:   []string{"f"},
		Usage:     "Show or set the visibility filter",
		UsageText: "todos filter [all|active|completed]",
		Description: `Without arguments, prints the current visibility filter.

With an argument, dispatches a SET_VISIBILITY_FILTER action. Accepts the
short names all, active, and completed or the full SHOW_* constants.

Examples:
  todos filter
  todos filter completed
  todos filter SHOW_ACTIVE`,
		Action: cmd.run,
	})

	return app
}

func (cmd *FilterCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "filter")

	switch c.NArg() {
	case 0:
		_, _ = fmt.Fprintln(c.Root().Writer, cmd.app.Store.State().Filter)
		return nil
	case 1:
	default:
		return fmt.Errorf("usage: todos filter [all|active|completed]")
	}

	filter, err := parseFilter(c.Args().First())
	if err != nil {
		return err
	}

	setFilter := action.BindSetVisibilityFilter(cmd.app.Store)
	if err := setFilter(ctx, filter); err != nil {
		return fmt.Errorf("set filter: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, filter)
	return nil
}

// parseFilter accepts a SHOW_* constant or its short name, case-insensitively.
func parseFilter(s string) (action.VisibilityFilter, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(upper, "SHOW_") {
		upper = "SHOW_" + upper
	}

	f := action.VisibilityFilter(upper)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid filter %q: must be one of all, active, completed", s)
	}
	return f, nil
}
