package action

import "slices"

// Type is the discriminator carried by every action record.
//
// ENUM(
//
//	ADD_TODO
//	TOGGLE_TODO
//	SET_VISIBILITY_FILTER
//
// )
type Type string

const (
	TypeAddTodo             Type = "ADD_TODO"
	TypeToggleTodo          Type = "TOGGLE_TODO"
	TypeSetVisibilityFilter Type = "SET_VISIBILITY_FILTER"
)

var types = []Type{
	TypeAddTodo,
	TypeToggleTodo,
	TypeSetVisibilityFilter,
}

// Types returns every known discriminator in declaration order.
func Types() []Type {
	return slices.Clone(types)
}

// IsValid reports whether t is one of the known discriminators.
func (t Type) IsValid() bool {
	return slices.Contains(types, t)
}

func (t Type) String() string {
	return string(t)
}
