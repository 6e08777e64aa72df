package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddTodo(t *testing.T) {
	for _, text := range []string{"Learn Redux", "", "  spaced  ", "ünïcödé ✓", "line\nbreak"} {
		a := NewAddTodo(text)
		assert.Equal(t, TypeAddTodo, a.Type())
		assert.Equal(t, text, a.Text)
	}
}

func TestNewToggleTodo(t *testing.T) {
	for _, index := range []int{0, 1, 2, 99, -1, -1 << 31} {
		a := NewToggleTodo(index)
		assert.Equal(t, TypeToggleTodo, a.Type())
		assert.Equal(t, index, a.Index)
	}
}

func TestNewSetVisibilityFilter(t *testing.T) {
	for _, f := range VisibilityFilters() {
		a := NewSetVisibilityFilter(f)
		assert.Equal(t, TypeSetVisibilityFilter, a.Type())
		assert.Equal(t, f, a.Filter)
	}

	t.Run("non-member filter is passed through", func(t *testing.T) {
		a := NewSetVisibilityFilter("SHOW_SOMETIMES")
		assert.Equal(t, VisibilityFilter("SHOW_SOMETIMES"), a.Filter)
		assert.False(t, a.Filter.IsValid())
	})
}

func TestCreators_StructuralEquality(t *testing.T) {
	assert.Equal(t, NewAddTodo("x"), NewAddTodo("x"))
	assert.True(t, NewAddTodo("x") == NewAddTodo("x"))
	assert.True(t, NewToggleTodo(3) == NewToggleTodo(3))
	assert.True(t, NewSetVisibilityFilter(ShowActive) == NewSetVisibilityFilter(ShowActive))

	var a, b Action = NewToggleTodo(1), NewToggleTodo(1)
	assert.True(t, a == b)
	assert.False(t, a == Action(NewToggleTodo(2)))
}

func TestVisibilityFilters_ExactSet(t *testing.T) {
	assert.Equal(t, []VisibilityFilter{ShowAll, ShowCompleted, ShowActive}, VisibilityFilters())

	filters := VisibilityFilters()
	filters[0] = "mutated"
	assert.Equal(t, ShowAll, VisibilityFilters()[0], "returned slice must be a copy")
}

func TestTypes(t *testing.T) {
	assert.Equal(t, []Type{TypeAddTodo, TypeToggleTodo, TypeSetVisibilityFilter}, Types())
	assert.True(t, TypeToggleTodo.IsValid())
	assert.False(t, Type("SET_VISIBILITY_ FILTER").IsValid())
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   string
	}{
		{
			name:   "add todo",
			action: NewAddTodo("Learn Redux"),
			want:   `{"type":"ADD_TODO","text":"Learn Redux"}`,
		},
		{
			name:   "toggle todo",
			action: NewToggleTodo(2),
			want:   `{"type":"TOGGLE_TODO","index":2}`,
		},
		{
			name:   "set visibility filter",
			action: NewSetVisibilityFilter(ShowCompleted),
			want:   `{"type":"SET_VISIBILITY_FILTER","filter":"SHOW_COMPLETED"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.action)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, `ADD_TODO text="milk"`, NewAddTodo("milk").String())
	assert.Equal(t, "TOGGLE_TODO index=4", NewToggleTodo(4).String())
	assert.Equal(t, "SET_VISIBILITY_FILTER filter=SHOW_ACTIVE", NewSetVisibilityFilter(ShowActive).String())
}
