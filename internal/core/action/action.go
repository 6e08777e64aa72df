// Package action defines the typed action records that describe todo state
// transitions, and the creators that build them.
package action

import (
	"encoding/json"
	"fmt"
)

// Action is an immutable record describing an intended state change.
// The concrete type determines which payload field is present.
type Action interface {
	Type() Type
}

var (
	_ Action = AddTodo{}
	_ Action = ToggleTodo{}
	_ Action = SetVisibilityFilter{}
)

// AddTodo requests a new item with the given text.
type AddTodo struct {
	Text string
}

func (AddTodo) Type() Type { return TypeAddTodo }

func (a AddTodo) String() string {
	return fmt.Sprintf("%s text=%q", a.Type(), a.Text)
}

func (a AddTodo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type Type   `json:"type"`
		Text string `json:"text"`
	}{a.Type(), a.Text})
}

// ToggleTodo flips the completion state of the item at Index.
type ToggleTodo struct {
	Index int
}

func (ToggleTodo) Type() Type { return TypeToggleTodo }

func (a ToggleTodo) String() string {
	return fmt.Sprintf("%s index=%d", a.Type(), a.Index)
}

func (a ToggleTodo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  Type `json:"type"`
		Index int  `json:"index"`
	}{a.Type(), a.Index})
}

// SetVisibilityFilter changes which items are displayed.
type SetVisibilityFilter struct {
	Filter VisibilityFilter
}

func (SetVisibilityFilter) Type() Type { return TypeSetVisibilityFilter }

func (a SetVisibilityFilter) String() string {
	return fmt.Sprintf("%s filter=%s", a.Type(), a.Filter)
}

func (a SetVisibilityFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   Type             `json:"type"`
		Filter VisibilityFilter `json:"filter"`
	}{a.Type(), a.Filter})
}

// NewAddTodo returns an ADD_TODO record carrying text. The text is not validated.
func NewAddTodo(text string) AddTodo {
	return AddTodo{Text: text}
}

// NewToggleTodo returns a TOGGLE_TODO record for the item at index.
// Bounds are checked by whoever reduces the action, not here.
func NewToggleTodo(index int) ToggleTodo {
	return ToggleTodo{Index: index}
}

// NewSetVisibilityFilter returns a SET_VISIBILITY_FILTER record. Values outside
// the filter set are passed through unchanged.
func NewSetVisibilityFilter(filter VisibilityFilter) SetVisibilityFilter {
	return SetVisibilityFilter{Filter: filter}
}
