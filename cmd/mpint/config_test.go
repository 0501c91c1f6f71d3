package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpint/internal/check"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok, err := findConfig(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, path, got)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[check]\nseed = 42\n")

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Check.Seed)
	assert.Equal(t, check.DefaultCases, cfg.Check.Cases)
	assert.Equal(t, check.DefaultMaxDigits, cfg.Check.MaxDigits)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadConfigFull(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[check]
seed = 7
cases = 10
max_digits = 30
jobs = 2
properties = ["mul", "GCD"]

[cache]
enabled = false
dir = "build/cache"
`)
	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, "build", "cache"), cfg.Cache.Dir)

	opts, err := cfg.Check.options()
	require.NoError(t, err)
	assert.Equal(t, check.Options{
		Seed:       7,
		Cases:      10,
		MaxDigits:  30,
		Jobs:       2,
		Properties: []check.Property{check.PropMul, check.PropGCD},
	}, opts)
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":      "[check]\nsed = 1\n",
		"unknown table":    "[checks]\nseed = 1\n",
		"zero cases":       "[check]\ncases = 0\n",
		"negative digits":  "[check]\nmax_digits = -5\n",
		"negative jobs":    "[check]\njobs = -1\n",
		"unknown property": "[check]\nproperties = [\"div\"]\n",
		"bad toml":         "[check\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), body)
			_, err := loadConfigFile(path)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), path), "error should name the file: %v", err)
		})
	}
}

func TestCheckOptionsFlagsOverrideConfig(t *testing.T) {
	flags := pflag.NewFlagSet("check", pflag.ContinueOnError)
	addCheckFlags(flags)
	require.NoError(t, flags.Parse([]string{"--cases=5", "--property=shift", "--property=parse"}))

	cfg := defaultConfig().Check
	cfg.Seed = 9
	cfg.Jobs = 3
	opts, err := checkOptions(flags, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), opts.Seed, "unchanged flags must not override the file")
	assert.Equal(t, 5, opts.Cases)
	assert.Equal(t, 3, opts.Jobs)
	assert.Equal(t, []check.Property{check.PropShift, check.PropParse}, opts.Properties)
}

func TestCheckOptionsRejectsUnknownProperty(t *testing.T) {
	flags := pflag.NewFlagSet("check", pflag.ContinueOnError)
	addCheckFlags(flags)
	require.NoError(t, flags.Parse([]string{"--property=nope"}))

	_, err := checkOptions(flags, defaultConfig().Check)
	require.Error(t, err)
}
