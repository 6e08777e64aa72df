package logging

import "context"

type contextKey string

const (
	commandKey    contextKey = "command"
	actionTypeKey contextKey = "action_type"
)

// WithCommand adds the running CLI command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// WithActionType adds the discriminator of the action being dispatched to the context.
func WithActionType(ctx context.Context, actionType string) context.Context {
	return context.WithValue(ctx, actionTypeKey, actionType)
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if v, ok := ctx.Value(commandKey).(string); ok {
		return v
	}
	return ""
}

// GetActionType retrieves the action type from the context.
// Returns empty string if not present.
func GetActionType(ctx context.Context) string {
	if v, ok := ctx.Value(actionTypeKey).(string); ok {
		return v
	}
	return ""
}
