// Package tui implements the interactive todo list. Every gesture becomes an
// action built by the action creators and sent to the dispatcher.
package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/core/todo"
)

// StateSource provides the state the view renders.
type StateSource interface {
	State() todo.State
	Load(ctx context.Context) error
}

// Deps holds the collaborators of the TUI.
type Deps struct {
	Dispatcher action.Dispatcher
	Source     StateSource

	// Changes signals that another process wrote to the journal. Optional.
	Changes <-chan struct{}

	ShowCounts bool
}

// StateChangedMsg carries a snapshot pushed by the store after a change.
type StateChangedMsg struct {
	State todo.State
}

type (
	dispatchedMsg     struct{ err error }
	reloadedMsg       struct{ err error }
	journalChangedMsg struct{}
)

// Model is the bubbletea model for the todo list.
type Model struct {
	ctx     context.Context
	source  StateSource
	changes <-chan struct{}

	addTodo    func(context.Context, string) error
	toggleTodo func(context.Context, int) error
	setFilter  func(context.Context, action.VisibilityFilter) error

	keys      keyMap
	inputKeys inputKeyMap
	help      help.Model
	input     textinput.Model
	adding    bool

	state      todo.State
	visible    []todo.IndexedItem
	cursor     int
	showCounts bool
	err        error

	width  int
	height int
}

// New creates a model bound to deps.Dispatcher.
func New(ctx context.Context, deps Deps) Model {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = styles.InputPromptStyle.Render("+ ")
	input.CharLimit = 256

	keys := defaultKeyMap()

	m := Model{
		ctx:        ctx,
		source:     deps.Source,
		changes:    deps.Changes,
		addTodo:    action.BindAddTodo(deps.Dispatcher),
		toggleTodo: action.BindToggleTodo(deps.Dispatcher),
		setFilter:  action.BindSetVisibilityFilter(deps.Dispatcher),
		keys:       keys,
		inputKeys:  inputKeyMap{Submit: keys.Submit, Cancel: keys.Cancel},
		help:       help.New(),
		input:      input,
		showCounts: deps.ShowCounts,
	}
	m.refresh()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case dispatchedMsg:
		m.err = msg.err
		m.refresh()
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		m.refresh()
		return m, nil

	case StateChangedMsg:
		m.setState(msg.State)
		return m, nil

	case journalChangedMsg:
		return m, tea.Batch(m.reload(), waitForChange(m.changes))

	case tea.KeyMsg:
		if m.adding {
			return m.handleInput(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if len(m.visible) == 0 {
			return m, nil
		}
		index := m.visible[m.cursor].Index
		toggle := m.toggleTodo
		return m, m.dispatch(func(ctx context.Context) error { return toggle(ctx, index) })

	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.err = nil
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Next):
		return m, m.filter(nextFilter(m.state.Filter))

	case key.Matches(msg, m.keys.All):
		return m, m.filter(action.ShowAll)

	case key.Matches(msg, m.keys.Active):
		return m, m.filter(action.ShowActive)

	case key.Matches(msg, m.keys.Done):
		return m, m.filter(action.ShowCompleted)

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Cancel):
		m.adding = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.inputKeys.Submit):
		text := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		if text == "" {
			return m, nil
		}
		add := m.addTodo
		return m, m.dispatch(func(ctx context.Context) error { return add(ctx, text) })
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) filter(f action.VisibilityFilter) tea.Cmd {
	if f == m.state.Filter {
		return nil
	}
	setFilter := m.setFilter
	return m.dispatch(func(ctx context.Context) error { return setFilter(ctx, f) })
}

func (m Model) dispatch(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return dispatchedMsg{err: fn(ctx)}
	}
}

func (m Model) reload() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		return reloadedMsg{err: source.Load(ctx)}
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return journalChangedMsg{}
	}
}

// refresh pulls the latest state from the source.
func (m *Model) refresh() {
	m.setState(m.source.State())
}

// setState shows st and keeps the cursor on a visible row.
func (m *Model) setState(st todo.State) {
	m.state = st
	m.visible = todo.Visible(m.state)
	m.cursor = min(m.cursor, max(len(m.visible)-1, 0))
}

// nextFilter cycles SHOW_ALL → SHOW_COMPLETED → SHOW_ACTIVE → SHOW_ALL.
// An unknown filter moves to SHOW_ALL.
func nextFilter(f action.VisibilityFilter) action.VisibilityFilter {
	filters := action.VisibilityFilters()
	i := slices.Index(filters, f)
	return filters[(i+1)%len(filters)]
}
