// Package stores implements journal backends on top of internal/data/db.
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/journal"
	"github.com/colonyops/todos/internal/data/db"
	"github.com/google/uuid"
)

const busyRetries = 3

// ActionStore implements journal.Journal using SQLite.
type ActionStore struct {
	db  *db.DB
	now func() time.Time
}

var _ journal.Journal = (*ActionStore)(nil)

// NewActionStore creates a new SQLite-backed action journal.
func NewActionStore(db *db.DB) *ActionStore {
	return &ActionStore{db: db, now: time.Now}
}

// Append records a in the actions table. Seq is the row's autoincrement key.
func (s *ActionStore) Append(ctx context.Context, a action.Action) (journal.Entry, error) {
	if a == nil {
		return journal.Entry{}, fmt.Errorf("append action: nil action")
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("marshal action: %w", err)
	}

	entry := journal.Entry{
		ID:         uuid.NewString(),
		Action:     a,
		RecordedAt: s.now().UTC(),
	}

	var res sql.Result
	for attempt := 0; ; attempt++ {
		res, err = s.db.Conn().ExecContext(ctx,
			`INSERT INTO actions (id, type, payload, recorded_at) VALUES (?, ?, ?, ?)`,
			entry.ID, string(a.Type()), string(payload), entry.RecordedAt.UnixNano(),
		)
		if err == nil || !IsBusyError(err) || attempt >= busyRetries {
			break
		}
		select {
		case <-ctx.Done():
			return journal.Entry{}, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
	if err != nil {
		return journal.Entry{}, fmt.Errorf("insert action: %w", err)
	}

	entry.Seq, err = res.LastInsertId()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("read action seq: %w", err)
	}

	return entry, nil
}

// List returns all actions ordered by seq.
func (s *ActionStore) List(ctx context.Context) ([]journal.Entry, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT seq, id, payload, recorded_at FROM actions ORDER BY seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]journal.Entry, 0)
	for rows.Next() {
		var (
			seq        int64
			id         string
			payload    string
			recordedAt int64
		)
		if err := rows.Scan(&seq, &id, &payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}

		a, err := action.Decode([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", seq, err)
		}

		entries = append(entries, journal.Entry{
			ID:         id,
			Seq:        seq,
			Action:     a,
			RecordedAt: time.Unix(0, recordedAt).UTC(),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}

	return entries, nil
}

// Clear deletes every recorded action. Seq keeps increasing afterwards
// because the table uses AUTOINCREMENT.
func (s *ActionStore) Clear(ctx context.Context) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM actions`); err != nil {
			return fmt.Errorf("clear actions: %w", err)
		}
		return nil
	})
}
