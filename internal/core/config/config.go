// Package config handles configuration loading and validation for todos.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/journal"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// DefaultJournalFile is the jsonfile journal name inside the data directory.
const DefaultJournalFile = "actions.jsonl"

// Config holds the application configuration.
type Config struct {
	DefaultFilter action.VisibilityFilter `yaml:"default_filter"`
	Journal       JournalConfig           `yaml:"journal"`
	Database      DatabaseConfig          `yaml:"database"`
	TUI           TUIConfig               `yaml:"tui"`
	DataDir       string                  `yaml:"-"` // set by caller, not from config file
}

// JournalConfig selects where dispatched actions are recorded.
type JournalConfig struct {
	Backend journal.Backend `yaml:"backend"`
	File    string          `yaml:"file"` // jsonfile only; relative paths resolve against the data dir
}

// DatabaseConfig tunes the SQLite connection used by the sqlite backend.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout_ms"`
}

// TUIConfig holds display options for the interactive view.
type TUIConfig struct {
	ShowCounts bool   `yaml:"show_counts"`
	Theme      string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultFilter: action.ShowAll,
		Journal: JournalConfig{
			Backend: journal.BackendSQLite,
			File:    DefaultJournalFile,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		TUI: TUIConfig{ShowCounts: true, Theme: styles.DefaultTheme},
	}
}

// Load reads configuration like Read and validates it.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the config file at configPath onto the defaults, sets the data
// directory, and fills unset options. It does not validate, so commands that
// report configuration problems can still inspect an invalid file.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DefaultFilter == "" {
		c.DefaultFilter = defaults.DefaultFilter
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Journal.Backend == "" {
		c.Journal.Backend = defaults.Journal.Backend
	}
	if c.Journal.File == "" {
		c.Journal.File = defaults.Journal.File
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Validate checks that the configuration is valid. All field problems are
// reported together as criterio.FieldErrors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, required),
		criterio.Run("default_filter", string(c.DefaultFilter), validFilter),
		criterio.Run("journal.backend", string(c.Journal.Backend), validBackend),
		criterio.Run("tui.theme", c.TUI.Theme, validTheme),
		c.validateDatabase(),
	)
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder
	fields := []struct {
		name  string
		value int
	}{
		{"database.max_open_conns", c.Database.MaxOpenConns},
		{"database.max_idle_conns", c.Database.MaxIdleConns},
		{"database.busy_timeout_ms", c.Database.BusyTimeout},
	}
	for _, f := range fields {
		if f.value < 0 {
			errs = errs.Append(f.name, fmt.Errorf("must not be negative, got %d", f.value))
		}
	}
	return errs.ToError()
}

// JournalFile returns the absolute path of the jsonfile journal.
func (c *Config) JournalFile() string {
	if filepath.IsAbs(c.Journal.File) {
		return c.Journal.File
	}
	return filepath.Join(c.DataDir, c.Journal.File)
}

// LogFile returns the default log file location.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "todos.log")
}

func required(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func validFilter(s string) error {
	if f := action.VisibilityFilter(s); !f.IsValid() {
		return fmt.Errorf("invalid filter %q, expected one of %v", s, action.VisibilityFilters())
	}
	return nil
}

func validTheme(s string) error {
	if _, ok := styles.GetPalette(s); !ok {
		return fmt.Errorf("unknown theme %q, expected one of %v", s, styles.ThemeNames())
	}
	return nil
}

func validBackend(s string) error {
	if b := journal.Backend(s); !b.IsValid() {
		return fmt.Errorf("invalid backend %q, expected %q or %q", s, journal.BackendSQLite, journal.BackendJSONFile)
	}
	return nil
}
