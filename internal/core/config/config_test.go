package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/journal"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	want := DefaultConfig()
	want.DataDir = dataDir
	assert.Equal(t, &want, cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(dataDir, "nope.yaml"), dataDir)
	require.NoError(t, err)
	assert.Equal(t, action.ShowAll, cfg.DefaultFilter)
	assert.Equal(t, journal.BackendSQLite, cfg.Journal.Backend)
	assert.True(t, cfg.TUI.ShowCounts)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
default_filter: SHOW_ACTIVE
journal:
  backend: jsonfile
  file: /tmp/todos/journal.jsonl
database:
  busy_timeout_ms: 250
tui:
  show_counts: false
  theme: gruvbox
`)
	dataDir := t.TempDir()

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, action.ShowActive, cfg.DefaultFilter)
	assert.Equal(t, journal.BackendJSONFile, cfg.Journal.Backend)
	assert.Equal(t, "/tmp/todos/journal.jsonl", cfg.JournalFile())
	assert.Equal(t, 250, cfg.Database.BusyTimeout)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns, "unset fields keep defaults")
	assert.False(t, cfg.TUI.ShowCounts)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "default_filter: [unclosed")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_AggregatesFieldErrors(t *testing.T) {
	path := writeConfig(t, `
default_filter: SHOW_SOMETIMES
journal:
  backend: postgres
database:
  max_open_conns: -1
tui:
  theme: solarized
`)

	_, err := Load(path, "")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{
		"data_dir",
		"default_filter",
		"journal.backend",
		"database.max_open_conns",
		"tui.theme",
	}, fields)
}

func TestRead_DoesNotValidate(t *testing.T) {
	path := writeConfig(t, `
default_filter: SHOW_SOMETIMES
journal:
  backend: mongo
database:
  busy_timeout_ms: -1
`)
	dataDir := t.TempDir()

	cfg, err := Read(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, action.VisibilityFilter("SHOW_SOMETIMES"), cfg.DefaultFilter)
	assert.Equal(t, journal.Backend("mongo"), cfg.Journal.Backend)
	assert.Equal(t, -1, cfg.Database.BusyTimeout)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, DefaultConfig().TUI.Theme, cfg.TUI.Theme)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, cfg.Validate(), &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}

func TestRead_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "journal: [unclosed")

	_, err := Read(path, t.TempDir())
	require.ErrorContains(t, err, "parse config file")
}

func TestJournalFile_Relative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/var/lib/todos"

	assert.Equal(t, "/var/lib/todos/actions.jsonl", cfg.JournalFile())
	assert.Equal(t, "/var/lib/todos/todos.log", cfg.LogFile())
}
