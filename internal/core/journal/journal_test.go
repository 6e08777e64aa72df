package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_JSON(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := Entry{ID: "abc", Seq: 3, Action: action.NewToggleTodo(2), RecordedAt: at}

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "abc",
		"seq": 3,
		"recorded_at": "2026-01-02T03:04:05Z",
		"action": {"type": "TOGGLE_TODO", "index": 2}
	}`, string(data))

	var got Entry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, e, got)
}

func TestEntry_UnmarshalUnknownAction(t *testing.T) {
	var e Entry
	err := json.Unmarshal([]byte(`{"id":"x","seq":1,"action":{"type":"DELETE_TODO"}}`), &e)
	require.ErrorIs(t, err, action.ErrUnknownType)
}

func TestBackend_IsValid(t *testing.T) {
	assert.True(t, BackendSQLite.IsValid())
	assert.True(t, BackendJSONFile.IsValid())
	assert.False(t, Backend("redis").IsValid())
	assert.False(t, Backend("").IsValid())
}

func TestActions(t *testing.T) {
	entries := []Entry{
		{Seq: 1, Action: action.NewAddTodo("a")},
		{Seq: 2, Action: action.NewToggleTodo(0)},
	}
	assert.Equal(t, []action.Action{action.NewAddTodo("a"), action.NewToggleTodo(0)}, Actions(entries))
}
