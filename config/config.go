// Package config loads generation options from a .natalie.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// FileName is the per-project configuration file looked up next to the
// storyboards.
const FileName = ".natalie.yaml"

var (
	ErrInvalidOutput = errors.New("output must be a .swift file")
	ErrEmptyImport   = errors.New("imports must not contain empty entries")
)

// Config holds the code generation options.
type Config struct {
	// Output is the Swift file generated source is written to.
	Output string `yaml:"output"`
	// Header is an extra comment block emitted at the top of the file.
	Header string `yaml:"header"`
	// Imports lists modules imported in addition to the platform framework.
	Imports []string `yaml:"imports"`
	// Segues controls generation of segue identifier enums.
	Segues bool `yaml:"segues"`
	// ReuseIdentifiers controls generation of reuse identifier constants.
	ReuseIdentifiers bool `yaml:"reuse_identifiers"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Output:           "Storyboards.swift",
		Segues:           true,
		ReuseIdentifiers: true,
	}
}

// Load reads and validates the configuration file at path. Fields absent
// from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir looks for FileName inside dir and falls back to defaults when the
// file does not exist.
func LoadDir(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("stat config: %w", err)
	}
	return Load(path)
}

func (c Config) validate() error {
	if !strings.HasSuffix(c.Output, ".swift") {
		return fmt.Errorf("%w, got %q", ErrInvalidOutput, c.Output)
	}
	for _, imp := range c.Imports {
		if strings.TrimSpace(imp) == "" {
			return ErrEmptyImport
		}
	}
	return nil
}
