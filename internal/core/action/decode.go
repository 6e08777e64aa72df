package action

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when a record carries an unrecognized discriminator.
	ErrUnknownType = errors.New("unknown action type")
	// ErrMissingPayload is returned when a record lacks the payload field its discriminator requires.
	ErrMissingPayload = errors.New("missing action payload")
)

type record struct {
	Type   Type              `json:"type"`
	Text   *string           `json:"text"`
	Index  *int              `json:"index"`
	Filter *VisibilityFilter `json:"filter"`
}

// Decode parses a plain action record such as {"type":"ADD_TODO","text":"..."}
// into its typed form. Payload values are not validated.
func Decode(data []byte) (Action, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}

	switch r.Type {
	case TypeAddTodo:
		if r.Text == nil {
			return nil, fmt.Errorf("%s: %w: text", r.Type, ErrMissingPayload)
		}
		return NewAddTodo(*r.Text), nil
	case TypeToggleTodo:
		if r.Index == nil {
			return nil, fmt.Errorf("%s: %w: index", r.Type, ErrMissingPayload)
		}
		return NewToggleTodo(*r.Index), nil
	case TypeSetVisibilityFilter:
		if r.Filter == nil {
			return nil, fmt.Errorf("%s: %w: filter", r.Type, ErrMissingPayload)
		}
		return NewSetVisibilityFilter(*r.Filter), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, r.Type)
	}
}

// DecodeList parses a JSON array of action records.
func DecodeList(data []byte) ([]Action, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode action list: %w", err)
	}

	out := make([]Action, 0, len(raw))
	for i, r := range raw {
		a, err := Decode(r)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		out = append(out, a)
	}

	return out, nil
}
