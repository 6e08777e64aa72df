package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/colonyops/todos/internal/core/config"
	"golang.org/x/term"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "todos", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "todos")
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// InspectsConfig reports whether args, the arguments left after the global
// flags, select a command that reports configuration problems itself and so
// must run even when the configuration is invalid.
func InspectsConfig(args []string) bool {
	switch {
	case len(args) >= 1 && args[0] == "doctor":
		return true
	case len(args) >= 2 && args[0] == "config" && args[1] == "validate":
		return true
	}
	return false
}
