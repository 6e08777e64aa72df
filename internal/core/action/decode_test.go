package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Action
		wantErr error
	}{
		{
			name:  "add todo",
			input: `{"type":"ADD_TODO","text":"Learn Redux"}`,
			want:  NewAddTodo("Learn Redux"),
		},
		{
			name:  "add todo with empty text",
			input: `{"type":"ADD_TODO","text":""}`,
			want:  NewAddTodo(""),
		},
		{
			name:  "toggle todo",
			input: `{"type":"TOGGLE_TODO","index":2}`,
			want:  NewToggleTodo(2),
		},
		{
			name:  "unknown filter passes through",
			input: `{"type":"SET_VISIBILITY_FILTER","filter":"SHOW_NONE"}`,
			want:  NewSetVisibilityFilter("SHOW_NONE"),
		},
		{
			name:    "unknown type",
			input:   `{"type":"REMOVE_TODO","index":1}`,
			wantErr: ErrUnknownType,
		},
		{
			name:    "missing discriminator",
			input:   `{"text":"orphan"}`,
			wantErr: ErrUnknownType,
		},
		{
			name:    "payload for another variant",
			input:   `{"type":"ADD_TODO","index":1}`,
			wantErr: ErrMissingPayload,
		},
		{
			name:    "toggle without index",
			input:   `{"type":"TOGGLE_TODO"}`,
			wantErr: ErrMissingPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode action")
	})

	t.Run("index of wrong type", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":"TOGGLE_TODO","index":"two"}`))
		require.Error(t, err)
	})
}

func TestDecodeList(t *testing.T) {
	got, err := DecodeList([]byte(`[
		{"type":"ADD_TODO","text":"a"},
		{"type":"TOGGLE_TODO","index":0},
		{"type":"SET_VISIBILITY_FILTER","filter":"SHOW_ACTIVE"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []Action{
		NewAddTodo("a"),
		NewToggleTodo(0),
		NewSetVisibilityFilter(ShowActive),
	}, got)

	_, err = DecodeList([]byte(`[{"type":"ADD_TODO","text":"a"},{"type":"NOPE"}]`))
	require.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), "action 1")
}
