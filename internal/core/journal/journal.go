// Package journal defines the append-only action log that todo state is rebuilt from.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/colonyops/todos/internal/core/action"
)

// Backend names a journal implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendJSONFile Backend = "jsonfile"
)

// IsValid reports whether b is a supported backend.
func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendJSONFile:
		return true
	}
	return false
}

// Entry is a recorded action.
type Entry struct {
	ID         string
	Seq        int64
	Action     action.Action
	RecordedAt time.Time
}

type entryJSON struct {
	ID         string          `json:"id"`
	Seq        int64           `json:"seq"`
	RecordedAt time.Time       `json:"recorded_at"`
	Action     json.RawMessage `json:"action"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(e.Action)
	if err != nil {
		return nil, fmt.Errorf("marshal action: %w", err)
	}
	return json.Marshal(entryJSON{
		ID:         e.ID,
		Seq:        e.Seq,
		RecordedAt: e.RecordedAt,
		Action:     raw,
	})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a, err := action.Decode(raw.Action)
	if err != nil {
		return fmt.Errorf("entry %s: %w", raw.ID, err)
	}
	*e = Entry{
		ID:         raw.ID,
		Seq:        raw.Seq,
		Action:     a,
		RecordedAt: raw.RecordedAt,
	}
	return nil
}

// Journal persists dispatched actions in order.
type Journal interface {
	// Append records a and returns the stored entry with ID, Seq, and
	// RecordedAt populated. Seq increases strictly with each append.
	Append(ctx context.Context, a action.Action) (Entry, error)

	// List returns every entry, oldest first.
	List(ctx context.Context) ([]Entry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// Actions extracts the actions from entries, preserving order.
func Actions(entries []Entry) []action.Action {
	out := make([]action.Action, len(entries))
	for i, e := range entries {
		out[i] = e.Action
	}
	return out
}
