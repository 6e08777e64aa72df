package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/logging"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/todos"
	"github.com/urfave/cli/v3"
)

type AddCmd struct {
	flags *Flags
	app   *todos.App

	// prompt reads the text when no argument is given; replaced in tests
	prompt func() (string, error)
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *todos.App) *AddCmd {
	return &AddCmd{flags: flags, app: app, prompt: promptText}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Aliases:   []string{"a"},
		Usage:     "Add a todo",
		UsageText: "todos add [text...]",
		Description: `Dispatches an ADD_TODO action with the given text.

All arguments are joined with spaces. When no text is given and stdin is a
terminal, you are prompted for it.

Examples:
  todos add Learn Redux
  todos add "Buy milk"`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "add")

	text := strings.Join(c.Args().Slice(), " ")
	if c.NArg() == 0 {
		if !isTerminal(c.Root().Reader) {
			return fmt.Errorf("usage: todos add <text>")
		}

		var err error
		text, err = cmd.prompt()
		if err != nil {
			return err
		}
	}

	add := action.BindAddTodo(cmd.app.Store)
	if err := add(ctx, text); err != nil {
		return fmt.Errorf("add todo: %w", err)
	}

	state := cmd.app.Store.State()
	_, _ = fmt.Fprintf(c.Root().Writer, "added %d: %s\n", len(state.Items)-1, text)
	return nil
}

func promptText() (string, error) {
	var text string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New todo").
				Validate(validateText).
				Value(&text),
		),
	).WithTheme(styles.FormTheme()).Run()
	return text, err
}

func validateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}
