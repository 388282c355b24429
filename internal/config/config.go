package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// LocalConfigFile is looked up in the working directory before the global file
	LocalConfigFile = ".bru.yaml"
)

var (
	// ConfigDir is the global configuration directory (~/.bru)
	ConfigDir string

	// ConfigFile is the global configuration file
	ConfigFile string
)

// Output formats for parsed documents
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds user preferences. Command-line flags override every field.
type Config struct {
	Output    string `yaml:"output"`
	Workers   int    `yaml:"workers"`
	Color     string `yaml:"color"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Output:    OutputJSON,
		Workers:   runtime.NumCPU(),
		Color:     ColorAuto,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Initialize sets the global configuration paths
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	ConfigDir = filepath.Join(homeDir, ".bru")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	return nil
}

// GetConfigFilePath returns the config file path (local or global)
func GetConfigFilePath() string {
	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile
	}
	return ConfigFile
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Validate checks enumerated fields and clamps the worker count
func (c *Config) Validate() error {
	switch c.Output {
	case OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output must be %q or %q, got %q", OutputJSON, OutputYAML, c.Output)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return nil
}

// ExpandHome expands a leading "~/" to the home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}
