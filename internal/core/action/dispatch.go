package action

import "context"

// Dispatcher delivers actions to whatever owns the state.
type Dispatcher interface {
	Dispatch(ctx context.Context, a Action) error
}

// DispatchFunc adapts a function to the Dispatcher interface.
type DispatchFunc func(ctx context.Context, a Action) error

func (f DispatchFunc) Dispatch(ctx context.Context, a Action) error {
	return f(ctx, a)
}

// BindAddTodo returns a creator that builds an ADD_TODO record and hands it to d.
func BindAddTodo(d Dispatcher) func(ctx context.Context, text string) error {
	return func(ctx context.Context, text string) error {
		return d.Dispatch(ctx, NewAddTodo(text))
	}
}

// BindToggleTodo returns a creator that builds a TOGGLE_TODO record and hands it to d.
func BindToggleTodo(d Dispatcher) func(ctx context.Context, index int) error {
	return func(ctx context.Context, index int) error {
		return d.Dispatch(ctx, NewToggleTodo(index))
	}
}

// BindSetVisibilityFilter returns a creator that builds a SET_VISIBILITY_FILTER
// record and hands it to d.
func BindSetVisibilityFilter(d Dispatcher) func(ctx context.Context, filter VisibilityFilter) error {
	return func(ctx context.Context, filter VisibilityFilter) error {
		return d.Dispatch(ctx, NewSetVisibilityFilter(filter))
	}
}
