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

//go:build pkcs11

package provider

import (
	"fmt"
	"os"
)

// Config identifies a PKCS#11 module and the token to query.
type Config struct {
	// Library is the path to the PKCS#11 library file.
	// Examples:
	//   - /usr/lib/softhsm/libsofthsm2.so (SoftHSM)
	//   - /usr/lib/libykcs11.so (YubiKey)
	Library string `yaml:"library" json:"library" mapstructure:"library"`

	// TokenLabel is the label of the token to use. Ignored when Slot is set.
	TokenLabel string `yaml:"label" json:"label" mapstructure:"label"`

	// Slot is the slot number where the token is located.
	// Can be nil if TokenLabel is used instead.
	Slot *int `yaml:"slot,omitempty" json:"slot,omitempty" mapstructure:"slot"`

	// PIN is the user PIN. Only key generation logs in.
	PIN string `yaml:"pin,omitempty" json:"-" mapstructure:"pin"`
}

// Validate checks that the library exists and a token is identified.
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	if c.Library == "" {
		return fmt.Errorf("%w: library path is required", ErrInvalidConfig)
	}

	if _, err := os.Stat(c.Library); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrLibraryNotFound, c.Library)
	}

	if c.Slot == nil && c.TokenLabel == "" {
		return fmt.Errorf("%w: token label or slot is required", ErrInvalidConfig)
	}

	if c.Slot != nil && *c.Slot < 0 {
		return fmt.Errorf("%w: slot must not be negative", ErrInvalidConfig)
	}

	if c.PIN != "" && len(c.PIN) < 4 {
		return ErrInvalidPINLength
	}

	return nil
}
