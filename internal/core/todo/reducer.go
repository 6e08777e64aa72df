package todo

import "github.com/colonyops/todos/internal/core/action"

// Reduce returns the state that results from applying a to s. It never
// modifies s. Toggling an index outside the list and unrecognized actions
// leave the state unchanged.
func Reduce(s State, a action.Action) State {
	switch a := a.(type) {
	case action.AddTodo:
		next := s.Clone()
		next.Items = append(next.Items, Item{Text: a.Text})
		return next
	case action.ToggleTodo:
		if a.Index < 0 || a.Index >= len(s.Items) {
			return s
		}
		next := s.Clone()
		next.Items[a.Index].Completed = !next.Items[a.Index].Completed
		return next
	case action.SetVisibilityFilter:
		next := s.Clone()
		next.Filter = a.Filter
		return next
	default:
		return s
	}
}

// Replay folds actions over initial in order.
func Replay(initial State, actions []action.Action) State {
	s := initial
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

// Visible returns the items selected by the state's filter, keeping their
// original indexes. A filter outside the known set shows everything.
func Visible(s State) []IndexedItem {
	out := make([]IndexedItem, 0, len(s.Items))
	for i, item := range s.Items {
		switch s.Filter {
		case action.ShowCompleted:
			if !item.Completed {
				continue
			}
		case action.ShowActive:
			if item.Completed {
				continue
			}
		}
		out = append(out, IndexedItem{Index: i, Item: item})
	}
	return out
}

// Counts returns the number of active and completed items.
func Counts(s State) (active, completed int) {
	for _, item := range s.Items {
		if item.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}
