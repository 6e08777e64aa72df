// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within todos.
//
// The store publishes every change here. Delivery is asynchronous and lossy
// when the buffer is full, so the Subscribe methods suit observers such as
// audit hooks and tests. Consumers that must not miss a change, like the TUI,
// use store.Subscribe instead.
package eventbus

import (
	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/todo"
)

// Event names a kind of bus message.
type Event string

// Keep list sorted A-Z
const (
	EventActionDispatched Event = "action.dispatched"
	EventJournalReloaded  Event = "journal.reloaded"
	EventStateChanged     Event = "state.changed"
	EventTuiStarted       Event = "tui.started"
	EventTuiStopped       Event = "tui.stopped"
)

// ActionDispatchedPayload is emitted after an action has been journaled and reduced.
type ActionDispatchedPayload struct {
	Action action.Action
	Seq    int64
}

// StateChangedPayload is emitted with the state produced by a dispatch or reload.
type StateChangedPayload struct {
	State todo.State
}

// JournalReloadedPayload is emitted when the state is rebuilt from the journal.
type JournalReloadedPayload struct {
	Entries int
}

// TUIStartedPayload is emitted when the TUI starts.
type TUIStartedPayload struct{}

// TUIStoppedPayload is emitted when the TUI stops.
type TUIStoppedPayload struct{}
