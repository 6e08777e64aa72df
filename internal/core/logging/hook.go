package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies command and action_type from the event context onto log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if command := GetCommand(ctx); command != "" {
		e.Str("command", command)
	}

	if actionType := GetActionType(ctx); actionType != "" {
		e.Str("action_type", actionType)
	}
}
