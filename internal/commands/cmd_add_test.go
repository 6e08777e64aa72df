package commands

import (
	"testing"

	"github.com/colonyops/todos/internal/core/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd(t *testing.T) {
	app := newTestApp(t)
	cmd := NewAddCmd(newTestFlags(app), app)

	res := run(t, cmd, "add", "Learn", "Redux")
	require.NoError(t, res.err)
	assert.Equal(t, "added 0: Learn Redux\n", res.stdout)

	res = run(t, cmd, "add", "Write Go")
	require.NoError(t, res.err)
	assert.Equal(t, "added 1: Write Go\n", res.stdout)

	assert.Equal(t, []todo.Item{{Text: "Learn Redux"}, {Text: "Write Go"}}, app.Store.State().Items)
}

func TestAddCmd_NoTextWithoutTerminal(t *testing.T) {
	app := newTestApp(t)
	cmd := NewAddCmd(newTestFlags(app), app)
	cmd.prompt = func() (string, error) {
		t.Fatal("prompt must not run without a terminal")
		return "", nil
	}

	res := run(t, cmd, "add")
	require.ErrorContains(t, res.err, "usage: todos add")
	assert.Empty(t, app.Store.State().Items)
}

func TestValidateText(t *testing.T) {
	require.Error(t, validateText("  "))
	require.NoError(t, validateText("milk"))
}
