// Package config loads optional defaults for the balance CLI from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileNames are looked up in the working directory when no config
// path is given.
var DefaultFileNames = []string{".balance.yaml", ".balance.yml"}

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// DefaultMaxFileSize matches the scan limit used when nothing is configured.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Config holds CLI defaults. Flags set on the command line win.
type Config struct {
	Format         string   `yaml:"format"`
	Color          string   `yaml:"color"`
	Extensions     []string `yaml:"extensions"`
	IncludeHidden  bool     `yaml:"include_hidden"`
	FollowSymlinks bool     `yaml:"follow_symlinks"`
	MaxFileSize    int64    `yaml:"max_file_size"`
	Output         string   `yaml:"output"`
	Workers        int      `yaml:"workers"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Format:      FormatHuman,
		Color:       "auto",
		MaxFileSize: DefaultMaxFileSize,
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the first default config file present in dir, or "" if none.
func Find(dir string) string {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Resolve loads path if given, otherwise the default file in dir, otherwise
// the built-in defaults. The returned path is "" when no file was read.
func Resolve(path, dir string) (*Config, string, error) {
	if path == "" {
		path = Find(dir)
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	var errs []error
	switch c.Format {
	case FormatHuman, FormatJSON, FormatSARIF:
	default:
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("unknown color mode %q", c.Color))
	}
	if c.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("max_file_size must not be negative"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative"))
	}
	return errors.Join(errs...)
}
