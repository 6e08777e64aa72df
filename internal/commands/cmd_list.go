package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/core/todo"
	"github.com/colonyops/todos/internal/todos"
	"github.com/colonyops/todos/pkg/iojson"
	"github.com/colonyops/todos/pkg/tmpl"
	"github.com/urfave/cli/v3"
)

type ListCmd struct {
	flags *Flags
	app   *todos.App

	// flags
	all        bool
	markdown   bool
	jsonOutput bool
	format     string
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *todos.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List todos",
		UsageText: "todos list [--all] [--markdown | --json | --format tmpl]",
		Description: `Lists the todos that match the current visibility filter.

The index column is the position to pass to "todos toggle".

--format renders each todo with a Go template. Fields are .Index, .Text,
and .Completed; functions are check, upper, lower, join, and shq.

Examples:
  todos list --all
  todos list --format '{{ .Index }} {{ check .Completed }} {{ .Text }}'`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "ignore the visibility filter",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "markdown",
				Aliases:     []string{"md"},
				Usage:       "render as a markdown checklist",
				Destination: &cmd.markdown,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "render each todo with a Go template",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(_ context.Context, c *cli.Command) error {
	state := cmd.app.Store.State()

	items := todo.Visible(state)
	if cmd.all {
		items = todo.Visible(todo.State{Items: state.Items, Filter: action.ShowAll})
	}

	w := c.Root().Writer

	switch {
	case cmd.jsonOutput:
		for _, item := range items {
			if err := iojson.WriteLine(w, item); err != nil {
				return err
			}
		}
		return nil
	case cmd.markdown:
		return renderMarkdown(w, state, items, isTerminal(c.Root().Reader))
	case cmd.format != "":
		return renderTemplate(w, cmd.format, items)
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No todos found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range items {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", item.Index, checkbox(item.Completed), item.Text)
	}
	return tw.Flush()
}

func renderTemplate(w io.Writer, format string, items []todo.IndexedItem) error {
	t, err := tmpl.Parse(format)
	if err != nil {
		return err
	}
	for _, item := range items {
		line, err := t.Execute(item)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// checklist builds the markdown source for items.
func checklist(state todo.State, items []todo.IndexedItem) string {
	active, completed := todo.Counts(state)

	var b strings.Builder
	fmt.Fprintf(&b, "# Todos\n\n_%s: %d active, %d completed_\n\n", state.Filter, active, completed)
	if len(items) == 0 {
		b.WriteString("Nothing to show.\n")
		return b.String()
	}
	for _, item := range items {
		fmt.Fprintf(&b, "- %s %d. %s\n", checkbox(item.Completed), item.Index, item.Text)
	}
	return b.String()
}

func renderMarkdown(w io.Writer, state todo.State, items []todo.IndexedItem, styled bool) error {
	opt := glamour.WithStylePath("notty")
	if styled {
		opt = glamour.WithStyles(styles.GlamourStyle())
	}

	r, err := glamour.NewTermRenderer(
		opt,
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(checklist(state, items))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
