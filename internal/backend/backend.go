// Package backend selects and assembles a storage variant from
// configuration. The two variants, memory and sqlite, expose the same
// storage.Store surface and differ only in persistence.
package backend

import (
	"fmt"

	"tally/internal/config"
	"tally/internal/storage"
)

// Type identifies a storage variant.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases a backend's resources.
type CleanupFunc func() error

// Result bundles the assembled store with its cleanup function.
// Cleanup may be nil when nothing needs releasing.
type Result struct {
	Store   storage.Store
	Cleanup CleanupFunc
}

// Config holds what the factory needs to create a backend.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// FromAppConfig maps the application config onto a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	t := Type(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	return Config{
		Type:         t,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Validate checks the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	return nil
}
