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

package cli

import (
	"github.com/jeremyhahn/go-algid/internal/config"
	"github.com/jeremyhahn/go-algid/pkg/algid"
)

// Config holds global CLI flag values
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// Verbose forces debug logging
	Verbose bool

	// PrintMetrics dumps resolver metrics after the command runs
	PrintMetrics bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{}
}

// Load reads the configuration file when one is given. Otherwise the
// defaults are used. Environment overrides apply in both cases.
func (c *Config) Load() (*config.Config, error) {
	if c.ConfigFile == "" {
		return config.FromEnv()
	}
	return config.Load(c.ConfigFile)
}

func algidResolver(table *algid.Table) *algid.Resolver {
	return algid.NewResolver(table, nil)
}
