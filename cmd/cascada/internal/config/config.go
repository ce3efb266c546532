// Package config loads cascada.yml, the project-level configuration for the
// cascada CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/recera/cascada/pkg/cascada"
)

// DefaultPath is where the CLI looks for configuration when no --config flag
// is given.
const DefaultPath = "cascada.yml"

// Config represents cascada.yml.
type Config struct {
	// Manifest is the path to the stylesheet manifest.
	Manifest string `yaml:"manifest"`

	// Output is the path the generated stylesheet is written to.
	Output string `yaml:"output"`

	// Flavor selects the classifier: "readable" (default) or "compact".
	Flavor string `yaml:"flavor,omitempty"`

	// Intern enables surrogate interning of generated classes.
	Intern bool `yaml:"intern,omitempty"`

	// Dev configures the development server.
	Dev DevConfig `yaml:"dev,omitempty"`
}

// DevConfig configures `cascada dev`.
type DevConfig struct {
	// Port for the dev server. Defaults to 5173.
	Port int `yaml:"port,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Manifest: "styles.yml",
		Output:   "public/styles.css",
		Flavor:   "readable",
		Dev:      DevConfig{Port: 5173},
	}
}

// Load reads and validates the configuration at path, filling defaults for
// anything omitted.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration bytes, fills defaults, and validates.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Manifest == "" {
		cfg.Manifest = Default().Manifest
	}
	if cfg.Output == "" {
		cfg.Output = Default().Output
	}
	if cfg.Flavor == "" {
		cfg.Flavor = "readable"
	}
	if cfg.Flavor != "readable" && cfg.Flavor != "compact" {
		return Config{}, fmt.Errorf("unknown flavor %q, want \"readable\" or \"compact\"", cfg.Flavor)
	}
	if cfg.Dev.Port == 0 {
		cfg.Dev.Port = Default().Dev.Port
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Classifier builds the classifier this configuration asks for. Each call
// returns a fresh instance; classifier state is never shared between
// generation runs.
func (c Config) Classifier() cascada.Classifier {
	var cl cascada.Classifier
	if c.Flavor == "compact" {
		cl = cascada.NewCompactClassifier()
	} else {
		cl = cascada.NewReadableClassifier()
	}
	if c.Intern {
		cl = cascada.Intern(cl)
	}
	return cl
}
