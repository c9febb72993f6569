// ABOUTME: Nutrient tracker configuration with backend and profile selection.
// ABOUTME: Handles the JSON config file, .env/environment overrides, and the storage factory.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/harperreed/nutrients/internal/charm"
	"github.com/harperreed/nutrients/internal/storage"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)

// Profile sexes. RDAs are selected by this value.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Environment variables that override the config file.
const (
	EnvBackend = "NUTRIENTS_BACKEND"
	EnvDataDir = "NUTRIENTS_DATA_DIR"
	EnvSex     = "NUTRIENTS_SEX"
)

// Config stores nutrient tracker configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for the SQLite database.
	// Supports ~ expansion. Defaults to ~/.local/share/nutrients.
	DataDir string `json:"data_dir,omitempty"`

	// Sex selects male or female RDAs. Defaults to male.
	Sex string `json:"sex,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// IsMale reports whether male RDAs apply. Anything but "female" is male.
func (c *Config) IsMale() bool {
	return !strings.EqualFold(c.Sex, SexFemale)
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

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(c.GetDataDir(), storage.DBFileName))
	case BackendCharm:
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// Keys lists the settable config keys.
func Keys() []string {
	return []string{"backend", "data_dir", "sex"}
}

// Set assigns a config key after validating the value.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "backend":
		if value != BackendSQLite && value != BackendCharm {
			return fmt.Errorf("backend must be %q or %q, got %q", BackendSQLite, BackendCharm, value)
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "sex":
		v := strings.ToLower(value)
		if v != SexMale && v != SexFemale {
			return fmt.Errorf("sex must be %q or %q, got %q", SexMale, SexFemale, value)
		}
		c.Sex = v
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// ApplyEnv overlays NUTRIENTS_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	overrides := []struct {
		env string
		key string
	}{
		{EnvBackend, "backend"},
		{EnvDataDir, "data_dir"},
		{EnvSex, "sex"},
	}
	for _, o := range overrides {
		v, ok := os.LookupEnv(o.env)
		if !ok || v == "" {
			continue
		}
		if err := c.Set(o.key, v); err != nil {
			return fmt.Errorf("%s: %w", o.env, err)
		}
	}
	return nil
}

// LoadEnvFile loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "nutrients", "config.json")
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

// LoadEffective reads the config file, then the .env file in the working
// directory, then applies environment overrides.
func LoadEffective() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
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
