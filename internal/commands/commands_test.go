package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/core/journal"
	"github.com/colonyops/todos/internal/todos"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

type result struct {
	stdout string
	stderr string
	err    error
}

func newTestApp(t *testing.T) *todos.App {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Journal.Backend = journal.BackendJSONFile

	app, err := todos.Open(context.Background(), &cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	return app
}

func newTestFlags(app *todos.App) *Flags {
	return &Flags{Config: app.Config, DataDir: app.Config.DataDir}
}

// run executes cmd as the only subcommand of a root command whose stdin is
// not a terminal.
func run(t *testing.T, cmd registrar, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := &cli.Command{
		Name:           "todos",
		Writer:         &stdout,
		ErrWriter:      &stderr,
		Reader:         strings.NewReader(""),
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = cmd.Register(root)

	err := root.Run(context.Background(), append([]string{"todos"}, args...))
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func seed(t *testing.T, app *todos.App, actions ...action.Action) {
	t.Helper()
	for _, a := range actions {
		require.NoError(t, app.Store.Dispatch(context.Background(), a))
	}
}
