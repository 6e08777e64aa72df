package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/store"
	"github.com/colonyops/todos/internal/core/todo"
	"github.com/colonyops/todos/pkg/tuitest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	store   *store.Store
	actions []action.Action
	err     error
}

func (r *recordingDispatcher) Dispatch(ctx context.Context, a action.Action) error {
	r.actions = append(r.actions, a)
	if r.err != nil {
		return r.err
	}
	return r.store.Dispatch(ctx, a)
}

func newTestModel(t *testing.T, seed ...string) (Model, *recordingDispatcher) {
	t.Helper()
	ctx := context.Background()

	s := store.New(store.Options{Logger: zerolog.Nop()})
	for _, text := range seed {
		require.NoError(t, s.Dispatch(ctx, action.NewAddTodo(text)))
	}

	d := &recordingDispatcher{store: s}
	m := New(ctx, Deps{Dispatcher: d, Source: s, ShowCounts: true})
	m.input.Cursor.SetMode(cursor.CursorStatic)
	return m, d
}

// send delivers msg and runs any dispatch or reload the model asks for.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, cmd := m.Update(msg)
	m = next.(Model)

	if cmd == nil {
		return m
	}

	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()

	select {
	case msg := <-out:
		switch msg.(type) {
		case dispatchedMsg, reloadedMsg:
			next, _ = m.Update(msg)
			m = next.(Model)
		}
	case <-time.After(100 * time.Millisecond):
	}
	return m
}

func TestModel_AddTodo(t *testing.T) {
	m, d := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('a'))
	require.True(t, m.adding)

	for _, msg := range tuitest.TypeString("Learn Redux") {
		m = send(t, m, msg)
	}
	m = send(t, m, tuitest.KeyEnter())

	assert.False(t, m.adding)
	assert.Equal(t, []action.Action{action.NewAddTodo("Learn Redux")}, d.actions)
	assert.Equal(t, []todo.Item{{Text: "Learn Redux"}}, m.state.Items)
}

func TestModel_AddTodo_BlankIsIgnored(t *testing.T) {
	m, d := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('a'))
	for _, msg := range tuitest.TypeString("   ") {
		m = send(t, m, msg)
	}
	m = send(t, m, tuitest.KeyEnter())

	assert.False(t, m.adding)
	assert.Empty(t, d.actions)
}

func TestModel_AddTodo_Cancel(t *testing.T) {
	m, d := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('a'))
	m = send(t, m, tuitest.KeyPress('q'))
	m = send(t, m, tuitest.KeyEsc())

	assert.False(t, m.adding)
	assert.Empty(t, d.actions)
}

func TestModel_ToggleUsesSourceIndex(t *testing.T) {
	m, d := newTestModel(t, "one", "two", "three")

	// complete "two", then hide completed items
	m = send(t, m, tuitest.KeyDown())
	m = send(t, m, tuitest.KeyPress('x'))
	m = send(t, m, tuitest.KeyPress('2'))
	require.Equal(t, action.ShowActive, m.state.Filter)
	require.Len(t, m.visible, 2)

	// the cursor stays on row 1, which is now "three" at index 2
	m = send(t, m, tuitest.KeyPress('x'))

	assert.Equal(t, []action.Action{
		action.NewToggleTodo(1),
		action.NewSetVisibilityFilter(action.ShowActive),
		action.NewToggleTodo(2),
	}, d.actions)
	assert.Equal(t, []todo.IndexedItem{{Index: 0, Item: todo.Item{Text: "one"}}}, m.visible)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_ToggleEmptyList(t *testing.T) {
	m, d := newTestModel(t)

	m = send(t, m, tuitest.KeyPress('x'))

	assert.Empty(t, d.actions)
	assert.Nil(t, m.err)
}

func TestModel_FilterKeys(t *testing.T) {
	m, d := newTestModel(t, "one")

	m = send(t, m, tuitest.KeyTab())
	assert.Equal(t, action.ShowCompleted, m.state.Filter)

	m = send(t, m, tuitest.KeyTab())
	assert.Equal(t, action.ShowActive, m.state.Filter)

	m = send(t, m, tuitest.KeyTab())
	assert.Equal(t, action.ShowAll, m.state.Filter)

	// selecting the current filter dispatches nothing
	m = send(t, m, tuitest.KeyPress('1'))
	m = send(t, m, tuitest.KeyPress('3'))
	assert.Equal(t, action.ShowCompleted, m.state.Filter)

	assert.Equal(t, []action.Action{
		action.NewSetVisibilityFilter(action.ShowCompleted),
		action.NewSetVisibilityFilter(action.ShowActive),
		action.NewSetVisibilityFilter(action.ShowAll),
		action.NewSetVisibilityFilter(action.ShowCompleted),
	}, d.actions)
}

func TestModel_DispatchError(t *testing.T) {
	m, d := newTestModel(t, "one")
	d.err = errors.New("journal unavailable")

	m = send(t, m, tuitest.KeyPress('x'))

	require.Error(t, m.err)
	assert.False(t, m.state.Items[0].Completed)
	assert.Contains(t, tuitest.StripANSI(m.View()), "error: journal unavailable")
}

func TestModel_JournalChangeReloads(t *testing.T) {
	m, d := newTestModel(t)

	changes := make(chan struct{}, 1)
	m.changes = changes

	// another writer changed the store behind the model's back
	require.NoError(t, d.store.Dispatch(context.Background(), action.NewAddTodo("from elsewhere")))
	assert.Empty(t, m.state.Items)

	next, cmd := m.Update(journalChangedMsg{})
	m = next.(Model)
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	changes <- struct{}{}
	for _, c := range batch {
		if c == nil {
			continue
		}
		next, _ = m.Update(c())
		m = next.(Model)
	}

	assert.Equal(t, []todo.Item{{Text: "from elsewhere"}}, m.state.Items)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, "Learn Redux", "Write Go")
	m = send(t, m, tuitest.KeyDown())
	m = send(t, m, tuitest.KeyPress('x'))

	view := tuitest.StripANSI(m.View())

	assert.Contains(t, view, "Todos")
	assert.Contains(t, view, "All")
	assert.Contains(t, view, "Active")
	assert.Contains(t, view, "Completed")
	assert.Contains(t, view, "[ ] Learn Redux")
	assert.Contains(t, view, "[x] Write Go")
	assert.Contains(t, view, "1 active · 1 completed")
}

func TestModel_ViewEmpty(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Contains(t, tuitest.StripANSI(m.View()), "Nothing here")
}

func TestNextFilter(t *testing.T) {
	assert.Equal(t, action.ShowCompleted, nextFilter(action.ShowAll))
	assert.Equal(t, action.ShowActive, nextFilter(action.ShowCompleted))
	assert.Equal(t, action.ShowAll, nextFilter(action.ShowActive))
	assert.Equal(t, action.ShowAll, nextFilter("SHOW_SOMETIMES"))
}

func TestModel_StateChangedFromStore(t *testing.T) {
	m, _ := newTestModel(t, "one", "two")
	m = send(t, m, tuitest.KeyDown())
	require.Equal(t, 1, m.cursor)

	pushed := todo.State{
		Items:  []todo.Item{{Text: "one", Completed: true}},
		Filter: action.ShowAll,
	}
	m = send(t, m, StateChangedMsg{State: pushed})

	assert.Equal(t, pushed, m.state)
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, tuitest.StripANSI(m.View()), "[x] one")
}

func TestModel_ReceivesStoreSubscription(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.Options{Logger: zerolog.Nop()})
	m := New(ctx, Deps{Dispatcher: s, Source: s})

	var msgs []tea.Msg
	unsubscribe := s.Subscribe(func(st todo.State) {
		msgs = append(msgs, StateChangedMsg{State: st})
	})
	defer unsubscribe()

	// another writer in the same process
	require.NoError(t, action.BindAddTodo(s)(ctx, "external"))

	require.Len(t, msgs, 1)
	m = send(t, m, msgs[0])
	assert.Equal(t, []todo.Item{{Text: "external"}}, m.state.Items)
}
