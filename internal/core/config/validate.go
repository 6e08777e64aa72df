package config

import (
	"fmt"
	"os"

	"github.com/colonyops/todos/internal/core/journal"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs Validate plus file accessibility checks. The configPath
// argument specifies the config file location to validate (empty string skips
// the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateJournalFile(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	defaults := DefaultConfig()
	if c.Journal.Backend == journal.BackendJSONFile && c.Database != defaults.Database {
		warnings = append(warnings, ValidationWarning{
			Category: "Database",
			Message:  "database settings are ignored by the jsonfile backend",
		})
	}

	if c.Journal.Backend == journal.BackendSQLite && c.Journal.File != DefaultJournalFile {
		warnings = append(warnings, ValidationWarning{
			Category: "Journal",
			Item:     "file",
			Message:  "journal.file is only used by the jsonfile backend",
		})
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		warnings = append(warnings, ValidationWarning{
			Category: "Database",
			Item:     "max_idle_conns",
			Message:  fmt.Sprintf("max_idle_conns (%d) exceeds max_open_conns (%d)", c.Database.MaxIdleConns, c.Database.MaxOpenConns),
		})
	}

	return warnings
}

func (c *Config) validateJournalFile() error {
	if c.Journal.Backend != journal.BackendJSONFile {
		return nil
	}
	return criterio.Run("journal.file", c.JournalFile(), isFileOrNotExist)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isFileOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("exists but is a directory")
	}
	return nil
}
