// Package config loads knightpaths defaults from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/knightpaths/config.toml (falling back
// to ~/.config/knightpaths/config.toml) unless a path is given explicitly.
// Keys absent from the file keep their defaults, and command-line flags
// override whatever the file sets:
//
//	output = "chess_paths"
//	formats = ["png", "svg"]
//	engine = "dot"
//	start_color = "green"
//	end_color = "orange"
//	cache = true
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/knightpaths/pkg/errors"
	"github.com/matzehuels/knightpaths/pkg/pipeline"
	"github.com/matzehuels/knightpaths/pkg/render/nodelink"
)

const (
	appName  = "knightpaths"
	fileName = "config.toml"

	// DefaultOutput is the base name of rendered files.
	DefaultOutput = "chess_paths"
)

// Config holds user defaults for the find and pick commands.
type Config struct {
	Output     string   `toml:"output"`
	Formats    []string `toml:"formats"`
	Engine     string   `toml:"engine"`
	StartColor string   `toml:"start_color"`
	EndColor   string   `toml:"end_color"`
	Cache      bool     `toml:"cache"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := nodelink.DefaultOptions()
	return Config{
		Output:     DefaultOutput,
		Formats:    []string{pipeline.DefaultFormat},
		Engine:     pipeline.DefaultEngine,
		StartColor: d.StartColor,
		EndColor:   d.EndColor,
		Cache:      true,
	}
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config file at path. An empty path means [DefaultPath],
// and a missing default file yields [Default]. A missing explicit path is
// an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes TOML data on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte, path string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errs.New(errs.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the output name, formats and engine.
func (c *Config) Validate() error {
	if err := errs.ValidateOutputBase(c.Output); err != nil {
		return err
	}
	for i, f := range c.Formats {
		c.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	return pipeline.ValidateEngine(c.Engine)
}
