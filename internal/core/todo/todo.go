// Package todo holds the todo list state and the reducer that applies actions to it.
package todo

import (
	"slices"

	"github.com/colonyops/todos/internal/core/action"
)

// Item is a single entry in the list.
type Item struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// State is the complete list plus the active visibility filter.
type State struct {
	Items  []Item                  `json:"items"`
	Filter action.VisibilityFilter `json:"filter"`
}

// IndexedItem pairs an item with its position in State.Items, which is the
// index a TOGGLE_TODO action must carry.
type IndexedItem struct {
	Index int `json:"index"`
	Item
}

// Initial returns an empty list. An empty filter falls back to SHOW_ALL.
func Initial(filter action.VisibilityFilter) State {
	if filter == "" {
		filter = action.ShowAll
	}
	return State{Items: []Item{}, Filter: filter}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	items := slices.Clone(s.Items)
	if items == nil {
		items = []Item{}
	}
	return State{Items: items, Filter: s.Filter}
}
