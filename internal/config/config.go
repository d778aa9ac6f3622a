// ABOUTME: Fitness configuration management with backend selection.
// ABOUTME: Handles settings, logging options, and storage/preference factory functions.

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fitness/internal/logging"
	"github.com/harperreed/fitness/internal/prefs"
	"github.com/harperreed/fitness/internal/storage"
)

// Config stores fitness tool configuration.
type Config struct {
	// DataDir is the root directory for data storage. fitness.db and the
	// prefs/ directory live here. Supports ~ expansion. Defaults to
	// ~/.local/share/fitness.
	DataDir string `json:"data_dir,omitempty"`

	// PrefsBackend selects where preferences live: "badger" (default) or
	// "charm" to sync them through Charm Cloud.
	PrefsBackend string `json:"prefs_backend,omitempty"`

	// LogLevel is one of trace, debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`

	// LogFile, when set, also writes logs to this rotated file.
	LogFile string `json:"log_file,omitempty"`

	// LogJSON switches the log format to JSON.
	LogJSON bool `json:"log_json,omitempty"`
}

// GetPrefsBackend returns the configured preference backend, defaulting to "badger".
func (c *Config) GetPrefsBackend() string {
	if c.PrefsBackend == "" {
		return "badger"
	}
	return c.PrefsBackend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the SQLite database path inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "fitness.db")
}

// PrefsDir returns the badger preference directory inside the data directory.
func (c *Config) PrefsDir() string {
	return filepath.Join(c.GetDataDir(), "prefs")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store at DBPath.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(c.DBPath())
}

// OpenPrefs opens the configured preference backend.
func (c *Config) OpenPrefs() (*prefs.Store, error) {
	switch backend := c.GetPrefsBackend(); backend {
	case "badger":
		b, err := prefs.OpenBadger(c.PrefsDir())
		if err != nil {
			return nil, err
		}
		return prefs.New(b), nil
	case "charm":
		b, err := prefs.OpenCharm("fitness")
		if err != nil {
			return nil, err
		}
		return prefs.New(b), nil
	case "memory":
		b, err := prefs.OpenMemory()
		if err != nil {
			return nil, err
		}
		return prefs.New(b), nil
	default:
		return nil, fmt.Errorf("unknown prefs backend: %q", backend)
	}
}

// SetupLogging applies the logging options. The returned closer releases
// the log file.
func (c *Config) SetupLogging() io.Closer {
	return logging.Setup(logging.SetupParams{
		LogFileName:   ExpandPath(c.LogFile),
		LogToStderr:   true,
		LogLevel:      c.LogLevel,
		LogFormatJSON: c.LogJSON,
	})
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitness", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
