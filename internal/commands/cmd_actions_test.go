package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/journal"
	"github.com/colonyops/todos/internal/core/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionsCmd_ListRaw(t *testing.T) {
	app := newTestApp(t)
	seed(t, app,
		action.NewAddTodo("Learn Redux"),
		action.NewToggleTodo(2),
		action.NewSetVisibilityFilter(action.ShowCompleted),
	)
	cmd := NewActionsCmd(newTestFlags(app), app)

	res := run(t, cmd, "actions", "list", "--raw")
	require.NoError(t, res.err)
	assert.Equal(t, strings.Join([]string{
		`{"type":"ADD_TODO","text":"Learn Redux"}`,
		`{"type":"TOGGLE_TODO","index":2}`,
		`{"type":"SET_VISIBILITY_FILTER","filter":"SHOW_COMPLETED"}`,
	}, "\n")+"\n", res.stdout)
}

func TestActionsCmd_ListEntries(t *testing.T) {
	app := newTestApp(t)
	seed(t, app, action.NewAddTodo("a"))
	cmd := NewActionsCmd(newTestFlags(app), app)

	res := run(t, cmd, "actions", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"seq":1`)
	assert.Contains(t, res.stdout, `"action":{"type":"ADD_TODO","text":"a"}`)
}

func TestActionsCmd_Replay(t *testing.T) {
	app := newTestApp(t)
	cmd := NewActionsCmd(newTestFlags(app), app)
	cmd.replayInput.Stdin = strings.NewReader(`[
		{"type":"ADD_TODO","text":"Learn Redux"},
		{"type":"ADD_TODO","text":"Write Go"},
		{"type":"TOGGLE_TODO","index":1},
		{"type":"SET_VISIBILITY_FILTER","filter":"SHOW_ACTIVE"}
	]`)

	res := run(t, cmd, "actions", "replay")
	require.NoError(t, res.err)
	assert.Equal(t, "replayed 4 actions\n", res.stdout)

	assert.Equal(t, todo.State{
		Items:  []todo.Item{{Text: "Learn Redux"}, {Text: "Write Go", Completed: true}},
		Filter: action.ShowActive,
	}, app.Store.State())
}

func TestActionsCmd_ReplayDryRun(t *testing.T) {
	app := newTestApp(t)
	cmd := NewActionsCmd(newTestFlags(app), app)
	cmd.replayInput.Stdin = strings.NewReader(`[{"type":"TOGGLE_TODO","index":3}]`)

	res := run(t, cmd, "actions", "replay", "--dry-run")
	require.NoError(t, res.err)
	assert.Equal(t, `{"type":"TOGGLE_TODO","index":3}`+"\n", res.stdout)

	entries, err := app.Journal.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestActionsCmd_ReplayRejectsUnknownBeforeDispatch(t *testing.T) {
	app := newTestApp(t)
	cmd := NewActionsCmd(newTestFlags(app), app)
	cmd.replayInput.Stdin = strings.NewReader(`[
		{"type":"ADD_TODO","text":"kept out"},
		{"type":"REMOVE_TODO","index":0}
	]`)

	res := run(t, cmd, "actions", "replay")
	require.ErrorIs(t, res.err, action.ErrUnknownType)
	assert.Contains(t, res.err.Error(), "action 1")
	assert.Empty(t, app.Store.State().Items)
}

func TestActionsCmd_Clear(t *testing.T) {
	app := newTestApp(t)
	seed(t, app, action.NewAddTodo("a"), action.NewAddTodo("b"))
	cmd := NewActionsCmd(newTestFlags(app), app)

	res := run(t, cmd, "actions", "clear")
	require.ErrorContains(t, res.err, "--yes")
	assert.Len(t, app.Store.State().Items, 2)

	res = run(t, cmd, "actions", "clear", "--yes")
	require.NoError(t, res.err)
	assert.Equal(t, "cleared\n", res.stdout)
	assert.Empty(t, app.Store.State().Items)

	entries, err := app.Journal.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, journal.Actions(entries))
}

func TestActionsCmd_ListSince(t *testing.T) {
	app := newTestApp(t)
	seed(t, app, action.NewAddTodo("a"))
	cmd := NewActionsCmd(newTestFlags(app), app)

	res := run(t, cmd, "actions", "list", "--raw", "--since", "2000-01-01")
	require.NoError(t, res.err)
	assert.Equal(t, `{"type":"ADD_TODO","text":"a"}`+"\n", res.stdout)

	res = run(t, cmd, "actions", "list", "--raw", "--since", "2999-01-01")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	res = run(t, cmd, "actions", "list", "--since", "whenever")
	require.ErrorContains(t, res.err, "invalid --since")
}

func TestActionsCmd_ReplayGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`[{"type":"ADD_TODO","text":"first"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "nested", "c.json"), []byte(`[{"type":"ADD_TODO","text":"second"},{"type":"TOGGLE_TODO","index":0}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	app := newTestApp(t)
	cmd := NewActionsCmd(newTestFlags(app), app)

	res := run(t, cmd, "actions", "replay", "--glob", filepath.Join(dir, "**", "*.json"))
	require.NoError(t, res.err)
	assert.Equal(t, "replayed 3 actions\n", res.stdout)
	assert.Equal(t, []todo.Item{{Text: "first", Completed: true}, {Text: "second"}}, app.Store.State().Items)
}

func TestReadGlob_NoMatch(t *testing.T) {
	_, err := readGlob(filepath.Join(t.TempDir(), "*.json"))
	require.ErrorContains(t, err, "no files match")
}
