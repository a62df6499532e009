// Package config resolves where domaintint keeps its settings.
package config

import (
	"os"
	"path/filepath"
)

// AppName is used for the configuration directory name.
const AppName = "domaintint"

// Environment variables that override the defaults.
const (
	EnvSettingsPath = "DOMAINTINT_SETTINGS"
	EnvStore        = "DOMAINTINT_STORE"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Default file names inside Dir().
const (
	settingsFileName = "settings.toml"
	databaseFileName = "settings.db"
)

// Dir returns the configuration directory: $XDG_CONFIG_HOME/domaintint,
// falling back to ~/.config/domaintint and finally ./.domaintint.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", AppName)
	}
	return "." + AppName
}

// DefaultStore returns the backend named by $DOMAINTINT_STORE, or StoreFile.
func DefaultStore() string {
	if s := os.Getenv(EnvStore); s != "" {
		return s
	}
	return StoreFile
}

// DefaultPath returns the settings location for a backend. An explicit
// $DOMAINTINT_SETTINGS wins for every backend.
func DefaultPath(store string) string {
	if p := os.Getenv(EnvSettingsPath); p != "" {
		return p
	}
	if store == StoreSQLite {
		return filepath.Join(Dir(), databaseFileName)
	}
	return filepath.Join(Dir(), settingsFileName)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
