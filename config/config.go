// Package config loads clispec settings from defaults, an optional config
// file and CLISPEC_* environment variables, using Viper.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dhamidi/clispec/format"
	"github.com/dhamidi/clispec/provider"
	"github.com/dhamidi/clispec/scan"
	"github.com/dhamidi/clispec/value"
)

const (
	// AppName names the config directory and the environment prefix.
	AppName = "clispec"
	// ConfigFileName is the config file name without its extension. Any
	// extension Viper understands works: yaml, toml, json.
	ConfigFileName = "clispec"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// BooleanPair is a pair of literals that make a two-valued option a
// boolean, such as on/off.
type BooleanPair struct {
	Truthy string `mapstructure:"truthy"`
	Falsy  string `mapstructure:"falsy"`
}

// Heuristics overrides the scanner's ambiguity decisions.
type Heuristics struct {
	// IgnoredArguments are usage placeholders that never become arguments.
	IgnoredArguments []string `mapstructure:"ignored_arguments"`
	// ReservedSubcommands are names never registered as subcommands.
	ReservedSubcommands []string `mapstructure:"reserved_subcommands"`
	// BooleanPairs are added to the default coercions, ahead of them.
	BooleanPairs []BooleanPair `mapstructure:"boolean_pairs"`
}

type Config struct {
	// Parsers lists the text sources to consult, in order: help, man.
	Parsers []string `mapstructure:"parsers"`
	// Depth is how many levels of subcommands to inspect.
	Depth int `mapstructure:"depth"`
	// Timeout bounds each invocation of the inspected program.
	Timeout    time.Duration `mapstructure:"timeout"`
	Format     string        `mapstructure:"format"`
	Heuristics Heuristics    `mapstructure:"heuristics"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Parsers: []string{scan.Help.String(), scan.Man.String()},
		Depth:   0,
		Timeout: provider.DefaultTimeout,
		Format:  format.Names[0],
		Heuristics: Heuristics{
			IgnoredArguments: slices.Clone(scan.DefaultIgnoredNames),
		},
	}
}

// Dir returns $XDG_CONFIG_HOME/clispec, falling back to ~/.config/clispec.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

// Load reads the configuration. An explicit ConfigFilePath must exist;
// otherwise a clispec.* file is looked up in the config directory, then
// the working directory, and its absence is not an error.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("parsers", defaults.Parsers)
	v.SetDefault("depth", defaults.Depth)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("heuristics.ignored_arguments", defaults.Heuristics.IgnoredArguments)
	v.SetDefault("heuristics.reserved_subcommands", []string{})
	v.SetDefault("heuristics.boolean_pairs", []BooleanPair{})

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFilePath, err)
		}
	} else {
		dir := opts.ConfigDirPath
		if dir == "" {
			var err error
			if dir, err = Dir(); err != nil {
				return nil, err
			}
		}
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values Viper cannot check by type alone.
func (c *Config) Validate() error {
	if len(c.Parsers) == 0 {
		return errors.New("parsers: at least one of help, man is required")
	}
	for _, p := range c.Parsers {
		if _, ok := scan.ParseMode(p); !ok {
			return fmt.Errorf("parsers: unknown parser %q, want help or man", p)
		}
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth: must not be negative, got %d", c.Depth)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout: must be positive, got %s", c.Timeout)
	}
	if !slices.Contains(format.Names, c.Format) {
		return fmt.Errorf("format: unknown format %q, want one of %v", c.Format, format.Names)
	}
	for i, p := range c.Heuristics.BooleanPairs {
		if p.Truthy == "" || p.Falsy == "" {
			return fmt.Errorf("heuristics.boolean_pairs[%d]: truthy and falsy are both required", i)
		}
	}
	return nil
}

// Modes returns the scan mode of each configured parser, in order.
func (c *Config) Modes() []scan.Mode {
	modes := make([]scan.Mode, 0, len(c.Parsers))
	for _, p := range c.Parsers {
		if m, ok := scan.ParseMode(p); ok {
			modes = append(modes, m)
		}
	}
	return modes
}

// ScanHeuristics builds the scanner heuristics the configuration describes.
func (c *Config) ScanHeuristics() scan.Heuristics {
	h := scan.DefaultHeuristics()
	h.IgnoreArgument = scan.IgnoreNames(c.Heuristics.IgnoredArguments...)
	h.AcceptSubcommand = scan.RejectNames(c.Heuristics.ReservedSubcommands...)
	if len(c.Heuristics.BooleanPairs) > 0 {
		pairs := make([]value.BooleanPair, len(c.Heuristics.BooleanPairs))
		for i, p := range c.Heuristics.BooleanPairs {
			pairs[i] = value.BooleanPair{True: p.Truthy, False: p.Falsy}
		}
		h.Coercions = value.CoercionTable(pairs).With(value.DefaultCoercions...)
	}
	return h
}
