package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"mpint/internal/check"
)

const configFileName = "mpint.toml"

type toolConfig struct {
	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`

	Check checkConfig `toml:"check"`
	Cache cacheConfig `toml:"cache"`
}

type checkConfig struct {
	Seed       uint64   `toml:"seed"`
	Cases      int      `toml:"cases"`
	MaxDigits  int      `toml:"max_digits"`
	Jobs       int      `toml:"jobs"`
	Properties []string `toml:"properties"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func defaultConfig() toolConfig {
	return toolConfig{
		Check: checkConfig{
			Seed:      1,
			Cases:     check.DefaultCases,
			MaxDigits: check.DefaultMaxDigits,
		},
		Cache: cacheConfig{Enabled: true},
	}
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfigFile decodes path over the defaults, so absent keys keep their
// default values.
func loadConfigFile(path string) (toolConfig, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return toolConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return toolConfig{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("check", "cases") && cfg.Check.Cases <= 0 {
		return toolConfig{}, fmt.Errorf("%s: [check].cases must be positive", path)
	}
	if meta.IsDefined("check", "max_digits") && cfg.Check.MaxDigits <= 0 {
		return toolConfig{}, fmt.Errorf("%s: [check].max_digits must be positive", path)
	}
	if cfg.Check.Jobs < 0 {
		return toolConfig{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	for _, name := range cfg.Check.Properties {
		if _, err := check.ParseProperty(name); err != nil {
			return toolConfig{}, fmt.Errorf("%s: [check].properties: %w", path, err)
		}
	}
	if meta.IsDefined("cache", "dir") && strings.TrimSpace(cfg.Cache.Dir) != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), filepath.FromSlash(cfg.Cache.Dir))
	}
	cfg.Path = path
	return cfg, nil
}

// loadConfig honours --config, then searches upward from the working
// directory. A missing file yields the defaults.
func loadConfig(cmd *cobra.Command) (toolConfig, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return toolConfig{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		var ok bool
		path, ok, err = findConfig(".")
		if err != nil {
			return toolConfig{}, err
		}
		if !ok {
			return defaultConfig(), nil
		}
	}
	return loadConfigFile(path)
}

func (c checkConfig) options() (check.Options, error) {
	opts := check.Options{
		Seed:      c.Seed,
		Cases:     c.Cases,
		MaxDigits: c.MaxDigits,
		Jobs:      c.Jobs,
	}
	for _, name := range c.Properties {
		p, err := check.ParseProperty(name)
		if err != nil {
			return check.Options{}, err
		}
		opts.Properties = append(opts.Properties, p)
	}
	return opts, nil
}
