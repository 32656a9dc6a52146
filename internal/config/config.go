// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-algid.
//
// go-algid is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
	"gopkg.in/yaml.v3"
)

// ErrInvalidOverride is returned when a table override cannot be applied.
var ErrInvalidOverride = errors.New("invalid table override")

// Config represents the complete algid configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  string        `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
	Table   TableConfig   `yaml:"table"`
	PKCS11  PKCS11Config  `yaml:"pkcs11"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls resolver instrumentation
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TableConfig rebinds algorithm table slots. Every slot not named keeps
// its built-in binding.
type TableConfig struct {
	Overrides []Override `yaml:"overrides,omitempty"`
}

// Override binds one algorithm to a mechanism or an OID. Exactly one of
// Mechanism and OID must be set. Mechanism accepts any Go integer literal
// (0x1085). OID accepts a dotted object identifier or a decimal tag.
type Override struct {
	Algorithm string `yaml:"algorithm"`
	Mechanism string `yaml:"mechanism,omitempty"`
	OID       string `yaml:"oid,omitempty"`
}

// PKCS11Config identifies the token queried by the token commands
type PKCS11Config struct {
	Library    string `yaml:"library"`
	TokenLabel string `yaml:"token_label"`
	Slot       *int   `yaml:"slot,omitempty"`
	PIN        string `yaml:"pin,omitempty"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: "text",
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from a YAML file and applies environment variable overrides
func Load(path string) (*Config, error) {
	// #nosec G304 - Config file path is provided by admin/user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset keys keep their defaults
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FromEnv returns the default configuration with environment overrides
func FromEnv() (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	// Logging
	if level := os.Getenv("ALGID_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("ALGID_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if output := os.Getenv("ALGID_OUTPUT"); output != "" {
		cfg.Output = output
	}

	// PKCS#11 settings
	if lib := os.Getenv("PKCS11_LIBRARY"); lib != "" {
		cfg.PKCS11.Library = lib
	}
	if label := os.Getenv("PKCS11_TOKEN_LABEL"); label != "" {
		cfg.PKCS11.TokenLabel = label
	}
	if pin := os.Getenv("PKCS11_PIN"); pin != "" {
		cfg.PKCS11.PIN = pin
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validFormats := map[string]bool{
		"json": true, "text": true,
	}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logging.Format)
	}

	validOutputs := map[string]bool{
		"text": true, "json": true, "table": true,
	}
	if !validOutputs[strings.ToLower(c.Output)] {
		return fmt.Errorf("invalid output format: %s (must be text, json, or table)", c.Output)
	}

	if c.PKCS11.Slot != nil && *c.PKCS11.Slot < 0 {
		return fmt.Errorf("invalid PKCS11 slot: %d", *c.PKCS11.Slot)
	}

	if _, err := c.Table.Build(); err != nil {
		return err
	}

	return nil
}

// Entries returns the built-in table entries with the overrides applied.
func (t TableConfig) Entries() ([]algid.Entry, error) {
	entries := algid.Default().Entries()
	var result *multierror.Error

	for i, o := range t.Overrides {
		alg, err := algorithm.Parse(o.Algorithm)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%w %d: %w", ErrInvalidOverride, i, err))
			continue
		}
		ident, err := o.identifier()
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%w %d (%s): %w", ErrInvalidOverride, i, alg, err))
			continue
		}
		entries[alg].Identifier = ident
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Build returns the algorithm table described by t. Without overrides it
// is the shared built-in table.
func (t TableConfig) Build() (*algid.Table, error) {
	if len(t.Overrides) == 0 {
		return algid.Default(), nil
	}
	entries, err := t.Entries()
	if err != nil {
		return nil, err
	}
	return algid.NewTable(entries)
}

func (o Override) identifier() (algid.Identifier, error) {
	switch {
	case o.Mechanism != "" && o.OID != "":
		return nil, errors.New("mechanism and oid are mutually exclusive")
	case o.Mechanism != "":
		v, err := strconv.ParseUint(o.Mechanism, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid mechanism %q: %w", o.Mechanism, err)
		}
		return algid.Mechanism(mechanism.Type(v)), nil
	case o.OID != "":
		if strings.Contains(o.OID, ".") {
			tag := oidtag.Parse(o.OID)
			if tag == oidtag.Unknown {
				return nil, fmt.Errorf("unregistered oid %s", o.OID)
			}
			return algid.OID(tag), nil
		}
		v, err := strconv.ParseUint(o.OID, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid oid tag %q: %w", o.OID, err)
		}
		return algid.OID(oidtag.Tag(v)), nil
	}
	return nil, errors.New("mechanism or oid is required")
}
