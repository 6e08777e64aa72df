// Package jsonfile implements journal.Journal on a JSON-lines file.
package jsonfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/journal"
)

// JournalStore keeps one entry per line, oldest first.
type JournalStore struct {
	path string
	mu   sync.RWMutex
	now  func() time.Time
}

var _ journal.Journal = (*JournalStore)(nil)

// NewJournalStore creates a JSON-lines journal at the given path.
// The file and its directory are created on first append.
func NewJournalStore(path string) *JournalStore {
	return &JournalStore{path: path, now: time.Now}
}

// Path returns the journal file location.
func (s *JournalStore) Path() string {
	return s.path
}

// Append writes a new entry to the end of the file.
func (s *JournalStore) Append(ctx context.Context, a action.Action) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return journal.Entry{}, err
	}

	var seq int64 = 1
	if n := len(entries); n > 0 {
		seq = entries[n-1].Seq + 1
	}

	entry := journal.Entry{
		ID:         uuid.NewString(),
		Seq:        seq,
		Action:     a,
		RecordedAt: s.now().UTC(),
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return journal.Entry{}, err
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return journal.Entry{}, err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return journal.Entry{}, fmt.Errorf("write entry: %w", err)
	}

	return entry, nil
}

// List returns all entries, oldest first.
func (s *JournalStore) List(ctx context.Context) ([]journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

// Clear truncates the journal.
func (s *JournalStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, nil, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

// load reads every entry from disk.
// Returns no entries if the file doesn't exist.
func (s *JournalStore) load() ([]journal.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []journal.Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var e journal.Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", s.path, lineNo, err)
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.path, err)
	}

	return entries, nil
}
