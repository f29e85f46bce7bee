package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	// DirName is the per-user directory holding config and data
	DirName = ".todos"

	// FileName is the config file name inside DirName
	FileName = "config.toml"

	// LogFileName is the board's default log file inside the data dir
	LogFileName = "todos.log"
)

// Config represents the application configuration
type Config struct {
	// Storage backend: file, sqlite or memory
	Backend string `toml:"backend" env:"TODOS_BACKEND"`

	// Directory holding the stored data
	DataDir string `toml:"data_dir" env:"TODOS_DATA_DIR"`

	// Key the project list is stored under
	Key string `toml:"key" env:"TODOS_KEY"`

	// Diagnostic log level (debug, info, warn, error)
	LogLevel string `toml:"log_level" env:"TODOS_LOG_LEVEL"`

	// Where the board writes diagnostics while it owns the terminal
	LogFile string `toml:"log_file,omitempty" env:"TODOS_LOG_FILE"`
}

// Default returns the configuration used when no file exists
func Default(dir string) *Config {
	return &Config{
		Backend:  "file",
		DataDir:  dir,
		Key:      "projects",
		LogLevel: "info",
	}
}

// Dir returns the per-user config directory
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, DirName), nil
}

// Load loads the configuration from the given file path, then applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.finalize(filepath.Dir(path))
	return cfg, nil
}

// LoadFile loads only what the file at path says, on top of the defaults
func LoadFile(path string) (*Config, error) {
	cfg := Default(filepath.Dir(path))

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.finalize(filepath.Dir(path))
	return cfg, nil
}

// finalize fills blanks left by the file or environment
func (c *Config) finalize(dir string) {
	def := Default(dir)
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.Key == "" {
		c.Key = def.Key
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// LogPath returns the board's log file path
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, LogFileName)
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Get returns the value of a config key by its file name
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backend":
		return c.Backend, nil
	case "data_dir":
		return c.DataDir, nil
	case "key":
		return c.Key, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_file":
		return c.LogFile, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// Set updates a config key by its file name
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		switch value {
		case "file", "sqlite", "memory":
		default:
			return fmt.Errorf("unknown backend %q (want file, sqlite or memory)", value)
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "key":
		if value == "" {
			return fmt.Errorf("key cannot be empty")
		}
		c.Key = value
	case "log_level":
		c.LogLevel = value
	case "log_file":
		c.LogFile = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// Keys lists the settable keys in display order
func Keys() []string {
	return []string{"backend", "data_dir", "key", "log_level", "log_file"}
}
