// Package config reads and writes the static application configuration.
// The mutable per-library preferences (current vault, sticky flags) live
// in the prefs package instead; this file changes only by user editing or
// `config init`.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config represents the main configuration for the library application.
type Config struct {
	BaseDir    string `toml:"base_dir" validate:"required"`
	LogDir     string `toml:"log_dir" validate:"required"`
	LibraryDir string `toml:"library_dir" validate:"required"`

	// IncludeVideo extends the supported-type allowlist with video files.
	IncludeVideo bool `toml:"include_video"`

	UndoWindowMinutes      int `toml:"undo_window_minutes" validate:"min=1"`
	CleanupIntervalSeconds int `toml:"cleanup_interval_seconds" validate:"min=1"`

	Thumbnails ThumbnailConfig `toml:"thumbnails"`
	Watcher    WatcherConfig   `toml:"watcher"`
}

// ThumbnailConfig bounds the preview cache.
type ThumbnailConfig struct {
	CacheSize    int `toml:"cache_size" validate:"min=1"`
	TTLMinutes   int `toml:"ttl_minutes" validate:"min=1"`
	MaxDimension int `toml:"max_dimension" validate:"min=16"`
}

// WatcherConfig tunes the vault directory watcher.
type WatcherConfig struct {
	DebounceMs int `toml:"debounce_ms" validate:"min=1"`
}

// NewConfig creates a Config with the provided directories and defaults.
func NewConfig(baseDir, libraryDir string) *Config {
	return &Config{
		BaseDir:                baseDir,
		LogDir:                 filepath.Join(baseDir, "log"),
		LibraryDir:             libraryDir,
		UndoWindowMinutes:      10,
		CleanupIntervalSeconds: 60,
		Thumbnails: ThumbnailConfig{
			CacheSize:    512,
			TTLMinutes:   30,
			MaxDimension: 256,
		},
		Watcher: WatcherConfig{
			DebounceMs: 200,
		},
	}
}

// UndoWindow returns the undo window as a duration.
func (c *Config) UndoWindow() time.Duration {
	return time.Duration(c.UndoWindowMinutes) * time.Minute
}

// CleanupPeriod returns the expiry-sweep period as a duration.
func (c *Config) CleanupPeriod() time.Duration {
	return time.Duration(c.CleanupIntervalSeconds) * time.Second
}

// ThumbnailTTL returns the thumbnail cache TTL as a duration.
func (c *Config) ThumbnailTTL() time.Duration {
	return time.Duration(c.Thumbnails.TTLMinutes) * time.Minute
}

// WatchDebounce returns the watcher quiet period as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Watcher.DebounceMs) * time.Millisecond
}

// Validate checks the config against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads and validates a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
