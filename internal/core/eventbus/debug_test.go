package eventbus_test

import (
	"bytes"
	"testing"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/eventbus"
	"github.com/colonyops/todos/internal/core/eventbus/testbus"
	"github.com/colonyops/todos/internal/core/todo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRegisterDebugLogger(t *testing.T) {
	tb := testbus.New(t)

	var buf bytes.Buffer
	eventbus.RegisterDebugLogger(tb.EventBus, zerolog.New(&buf).Level(zerolog.DebugLevel))

	tb.PublishActionDispatched(eventbus.ActionDispatchedPayload{Action: action.NewAddTodo("x"), Seq: 1})
	tb.PublishStateChanged(eventbus.StateChangedPayload{State: todo.Initial("")})

	tb.AssertPublished(t, eventbus.EventStateChanged)
	assert.Contains(t, buf.String(), `"action":"ADD_TODO"`)
	assert.Contains(t, buf.String(), `"event":"state.changed"`)
}
