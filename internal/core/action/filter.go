package action

import "slices"

// VisibilityFilter selects which todo items a consumer should display.
type VisibilityFilter string

const (
	ShowAll       VisibilityFilter = "SHOW_ALL"
	ShowCompleted VisibilityFilter = "SHOW_COMPLETED"
	ShowActive    VisibilityFilter = "SHOW_ACTIVE"
)

var visibilityFilters = []VisibilityFilter{
	ShowAll,
	ShowCompleted,
	ShowActive,
}

// VisibilityFilters returns the complete filter set.
func VisibilityFilters() []VisibilityFilter {
	return slices.Clone(visibilityFilters)
}

// IsValid reports whether f is a member of the filter set.
func (f VisibilityFilter) IsValid() bool {
	return slices.Contains(visibilityFilters, f)
}

func (f VisibilityFilter) String() string {
	return string(f)
}
