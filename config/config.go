// Package config loads tool configuration for the sqlparse CLI and REPL. It
// is decoupled from command line concerns so other frontends can reuse it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "sqlparse.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "sqlparse.yml"

// Output modes for printed trees and statements.
const (
	OutputSQL    = "sql"
	OutputAST    = "ast"
	OutputTokens = "tokens"
)

// Defaults applied before any other source.
const (
	DefaultOutput = OutputSQL
)

// Config holds the tool settings. Sources are merged in precedence order:
// flags over environment variables over the config file over defaults.
type Config struct {
	// UpperKeywords renders keywords upper case.
	UpperKeywords bool `koanf:"upper_keywords"`
	// TypeParams keeps parenthesized column type parameters in the tree.
	TypeParams bool `koanf:"type_params"`
	// Output selects what the tool prints: sql, ast, or tokens.
	Output string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Validate checks field values that come from free form sources.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputSQL, OutputAST, OutputTokens:
		return nil
	}
	return fmt.Errorf("unknown output mode %q (want sql, ast, or tokens)", c.Output)
}

// findConfigFile finds the config file to use.
// Priority: explicit path > sqlparse.yaml > sqlparse.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// FindIn looks for a config file in the given directory. Returns the empty
// string if none exists.
func FindIn(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load merges defaults, the config file, SQLPARSE_ environment variables, and
// explicitly set flags. cfgFile may be empty, in which case the working
// directory is searched; a missing config file is not an error. flags may be
// nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"upper_keywords": false,
		"type_params":    false,
		"output":         DefaultOutput,
		"verbose":        false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// SQLPARSE_UPPER_KEYWORDS -> upper_keywords
	if err := k.Load(env.Provider("SQLPARSE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SQLPARSE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// kebab-case flags map onto snake_case config keys
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
