package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/araddon/dateparse"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/journal"
	"github.com/colonyops/todos/internal/core/logging"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/todos"
	"github.com/colonyops/todos/pkg/iojson"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// ActionsCmd implements the todos actions command group: inspecting,
// replaying, and clearing the journal.
type ActionsCmd struct {
	flags *Flags
	app   *todos.App

	// list flags
	raw   bool
	since string

	// replay input
	replayInput iojson.FileReader[[]json.RawMessage]
	glob        string
	dryRun      bool

	// clear flags
	yes     bool
	confirm func() (bool, error)
}

// NewActionsCmd creates a new actions command.
func NewActionsCmd(flags *Flags, app *todos.App) *ActionsCmd {
	return &ActionsCmd{flags: flags, app: app, confirm: confirmClear}
}

// Register adds the actions command to the application.
func (cmd *ActionsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "actions",
		Usage: "Inspect and manage the action journal",
		Description: `Every change to the list is recorded as an action. The list is rebuilt
by replaying these actions in order.

Examples:
  todos actions list                  # journal entries as JSON lines
  todos actions list --raw            # bare action records
  todos actions list --since 2026-01-02
  todos actions replay -f backup.json # dispatch a JSON array of actions
  todos actions replay --glob 'exports/**/*.json'
  todos actions clear --yes           # wipe the journal`,
		Commands: []*cli.Command{
			cmd.listCmd(),
			cmd.replayCmd(),
			cmd.clearCmd(),
		},
	})

	return app
}

func (cmd *ActionsCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List recorded actions",
		UsageText: "todos actions list [--raw] [--since time]",
		Description: `Lists journal entries oldest first as JSON lines.

With --raw only the action records are printed, in the same form
"todos actions replay" accepts one element of. --since accepts most
date and time layouts, interpreted in the local time zone.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print only the action records",
				Destination: &cmd.raw,
			},
			&cli.StringFlag{
				Name:        "since",
				Usage:       "only entries recorded at or after this time",
				Destination: &cmd.since,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *ActionsCmd) replayCmd() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Dispatch actions from a JSON array",
		UsageText: "todos actions replay [-f file | --glob pattern] [--dry-run]",
		Description: `Reads a JSON array of action records and dispatches each in order.

With --glob every matching file is read in lexical path order and the
arrays are concatenated. Patterns support ** for any number of directories.

All records are decoded before anything is dispatched, so a malformed
record leaves the list untouched.

Examples:
  todos actions replay -f actions.json
  todos actions replay --glob 'exports/**/*.json'
  echo '[{"type":"ADD_TODO","text":"Learn Redux"}]' | todos actions replay`,
		Flags: []cli.Flag{
			cmd.replayInput.Flag(),
			&cli.StringFlag{
				Name:        "glob",
				Usage:       "read every JSON file matching the pattern",
				Destination: &cmd.glob,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "decode and print the actions without dispatching",
				Destination: &cmd.dryRun,
			},
		},
		Action: cmd.runReplay,
	}
}

func (cmd *ActionsCmd) clearCmd() *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "Delete every recorded action",
		UsageText: "todos actions clear [--yes]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.runClear,
	}
}

func (cmd *ActionsCmd) runList(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.app.Journal.List(ctx)
	if err != nil {
		return fmt.Errorf("list actions: %w", err)
	}

	if cmd.since != "" {
		since, err := dateparse.ParseLocal(cmd.since)
		if err != nil {
			return fmt.Errorf("invalid --since %q: %w", cmd.since, err)
		}
		entries = slices.DeleteFunc(entries, func(e journal.Entry) bool {
			return e.RecordedAt.Before(since)
		})
	}

	for _, entry := range entries {
		var out any = entry
		if cmd.raw {
			out = entry.Action
		}
		if err := iojson.WriteLine(c.Root().Writer, out); err != nil {
			return err
		}
	}

	return nil
}

func (cmd *ActionsCmd) runReplay(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "replay")

	var (
		records []json.RawMessage
		err     error
	)
	if cmd.glob != "" {
		records, err = readGlob(cmd.glob)
	} else {
		records, err = cmd.replayInput.Read()
	}
	if err != nil {
		return err
	}

	actions := make([]action.Action, 0, len(records))
	for i, rec := range records {
		a, err := action.Decode(rec)
		if err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}

	if cmd.dryRun {
		for _, a := range actions {
			if err := iojson.WriteLine(c.Root().Writer, a); err != nil {
				return err
			}
		}
		return nil
	}

	for i, a := range actions {
		if err := cmd.app.Store.Dispatch(ctx, a); err != nil {
			return fmt.Errorf("dispatch action %d: %w", i, err)
		}
	}

	log.Info().Ctx(ctx).Int("count", len(actions)).Msg("replayed actions")
	_, _ = fmt.Fprintf(c.Root().Writer, "replayed %d actions\n", len(actions))
	return nil
}

// readGlob concatenates the JSON arrays in every file matching pattern.
func readGlob(pattern string) ([]json.RawMessage, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	slices.Sort(paths)

	var records []json.RawMessage
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var batch []json.RawMessage
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		records = append(records, batch...)
	}
	return records, nil
}

func (cmd *ActionsCmd) runClear(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "clear")

	if !cmd.yes {
		if !isTerminal(c.Root().Reader) {
			return fmt.Errorf("refusing to clear without confirmation; pass --yes")
		}
		ok, err := cmd.confirm()
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(c.Root().Writer, "cancelled")
			return nil
		}
	}

	if err := cmd.app.Store.Reset(ctx); err != nil {
		return fmt.Errorf("clear actions: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "cleared")
	return nil
}

func confirmClear() (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear the action journal?").
				Description("Every todo is removed. This cannot be undone.").
				Value(&ok),
		),
	).WithTheme(styles.FormTheme()).Run()
	return ok, err
}
