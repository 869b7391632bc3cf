// Package config loads sidedoc's YAML configuration with defaults and
// SIDEDOC_* environment overrides.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	sderrors "git.home.luguber.info/inful/sidedoc/internal/errors"
	"git.home.luguber.info/inful/sidedoc/internal/language"
)

// Config is the top-level configuration.
type Config struct {
	// Source is the root directory containing the files to process.
	Source string `yaml:"source"`
	// Output is the root directory for generated pages.
	Output string `yaml:"output"`
	// Stylesheet optionally overrides the built-in stylesheet file.
	Stylesheet  string            `yaml:"stylesheet,omitempty"`
	Highlighter HighlighterConfig `yaml:"highlighter,omitempty"`
	// Languages registers additional rule sets, keyed by file extension
	// (including the leading dot). Pure data; the parser never changes.
	Languages map[string]language.Spec `yaml:"languages,omitempty"`
}

// HighlighterConfig configures the external highlighter invocation.
type HighlighterConfig struct {
	Binary  string `yaml:"binary"`
	TabSize int    `yaml:"tab_size"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates a YAML configuration file, applies defaults and
// environment overrides. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		return cfg, cfg.validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sderrors.ConfigNotFound(path)
		}
		return nil, sderrors.ConfigInvalid(path, err)
	}

	// Environment references in the file (${VAR}) are expanded before parsing.
	expanded := os.Expand(string(data), os.Getenv)

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, sderrors.ConfigInvalid(path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, cfg.validate()
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = "."
	}
	if c.Output == "" {
		c.Output = "docs"
	}
	if c.Highlighter.Binary == "" {
		c.Highlighter.Binary = "pygmentize"
	}
	if c.Highlighter.TabSize == 0 {
		c.Highlighter.TabSize = 4
	}
}

// applyEnv applies SIDEDOC_* overrides on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("SIDEDOC_SOURCE"); v != "" {
		c.Source = v
	}
	if v := os.Getenv("SIDEDOC_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("SIDEDOC_HIGHLIGHTER"); v != "" {
		c.Highlighter.Binary = v
	}
}

func (c *Config) validate() error {
	if c.Highlighter.TabSize < 1 {
		return sderrors.ValidationFailed("highlighter.tab_size", "must be positive")
	}
	return nil
}

// RegisterLanguages compiles and registers the configured extra rule sets.
func (c *Config) RegisterLanguages() error {
	for ext, spec := range c.Languages {
		rules, err := language.Compile(spec)
		if err != nil {
			return err
		}
		language.Register(ext, rules)
	}
	return nil
}
