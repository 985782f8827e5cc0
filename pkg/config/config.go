package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/lockin/pkg/storage"
	"github.com/harrisonrobin/lockin/pkg/store"
)

const (
	xdgAppName = "lockin"
	configFile = "config.yaml"

	// EnvDir overrides the config and data directory.
	EnvDir = "LOCKIN_CONFIG_DIR"

	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Backend    string `yaml:"backend"`
	DataPath   string `yaml:"data_path,omitempty"`
	UndoWindow string `yaml:"undo_window,omitempty"`
}

func Default() *Config {
	return &Config{Backend: BackendFile, UndoWindow: store.DefaultUndoWindow.String()}
}

// GetConfigDir returns ~/.config/lockin unless LOCKIN_CONFIG_DIR is set.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendFile, BackendSQLite)
	}
	if _, err := c.Undo(); err != nil {
		return err
	}
	return nil
}

// Undo returns the undo window, falling back to the default when unset.
func (c *Config) Undo() (time.Duration, error) {
	if c.UndoWindow == "" {
		return store.DefaultUndoWindow, nil
	}
	d, err := time.ParseDuration(c.UndoWindow)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid undo_window %q", c.UndoWindow)
	}
	return d, nil
}

// StoragePath is where the selected backend keeps its data.
func (c *Config) StoragePath() (string, error) {
	if c.DataPath != "" {
		return c.DataPath, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if c.Backend == BackendSQLite {
		return filepath.Join(dir, "lockin.db"), nil
	}
	return filepath.Join(dir, storage.Key+".json"), nil
}

// OpenBackend opens the configured backend. The returned close function is
// never nil.
func (c *Config) OpenBackend() (storage.Backend, func() error, error) {
	path, err := c.StoragePath()
	if err != nil {
		return nil, nil, err
	}
	if c.Backend == BackendSQLite {
		db, err := storage.NewSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	return storage.NewFile(path), func() error { return nil }, nil
}
