// Package config loads the optional .parsec.toml file shared by the
// command line tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dhamidi/parsec/grammar"
)

// FileName is the name looked up in the working directory.
const FileName = ".parsec.toml"

// EnvVar overrides the config file location.
const EnvVar = "PARSEC_CONFIG"

// DefaultGrammar is used when no grammar is configured.
const DefaultGrammar = "value"

type Config struct {
	// Grammar is the grammar used when none is given explicitly.
	Grammar string `toml:"grammar"`

	// Full requires grammars to consume the whole input.
	Full bool `toml:"full"`

	// Extensions maps a file extension such as ".dice" to a grammar name.
	Extensions map[string]string `toml:"extensions"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	return &Config{
		Grammar:    DefaultGrammar,
		Full:       true,
		Extensions: map[string]string{},
	}
}

// Load reads and validates the TOML file at path.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Find loads the file named by $PARSEC_CONFIG, or .parsec.toml in dir.
// A missing file yields the default configuration.
func Find(dir string) (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}
	return Load(path)
}

// Validate checks that every grammar the configuration names is registered.
func (c *Config) Validate() error {
	if _, ok := grammar.Lookup(c.Grammar); !ok {
		return fmt.Errorf("unknown grammar %q", c.Grammar)
	}
	for ext, name := range c.Extensions {
		if _, ok := grammar.Lookup(name); !ok {
			return fmt.Errorf("extension %s: unknown grammar %q", ext, name)
		}
	}
	return nil
}

// GrammarFor returns the grammar name for a file path, falling back to the
// default grammar.
func (c *Config) GrammarFor(path string) string {
	if name, ok := c.Extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return name
	}
	return c.Grammar
}

func (c *Config) normalize() {
	if c.Grammar == "" {
		c.Grammar = DefaultGrammar
	}
	exts := make(map[string]string, len(c.Extensions))
	for ext, name := range c.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = name
	}
	c.Extensions = exts
}
