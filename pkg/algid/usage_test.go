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

package algid

import (
	"testing"

	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyUsage_SymmetricNonZero(t *testing.T) {
	r := NewResolver(nil, nil)
	for _, alg := range algorithm.All() {
		if alg.IsSymmetric() {
			assert.NotZero(t, r.KeyUsage(alg), alg.String())
		} else {
			assert.Zero(t, r.KeyUsage(alg), alg.String())
		}
	}
}

func TestKeyUsage_Defaults(t *testing.T) {
	u := DefaultKeyUsage()
	tests := []struct {
		alg  algorithm.Algorithm
		want mechanism.Flags
	}{
		{algorithm.AESCBCPad, mechanism.FlagEncrypt | mechanism.FlagDecrypt},
		{algorithm.AESKeyGen, mechanism.FlagEncrypt | mechanism.FlagDecrypt},
		{algorithm.HMACSHA256, mechanism.FlagSign | mechanism.FlagVerify},
		{algorithm.AESCMAC, mechanism.FlagSign | mechanism.FlagVerify},
		{algorithm.AESKeyWrapPad, mechanism.FlagWrap | mechanism.FlagUnwrap},
		{algorithm.GenericSecretKeyGen, mechanism.FlagSign | mechanism.FlagVerify | mechanism.FlagDerive},
		{algorithm.SHA256WithRSA, 0},
		{algorithm.Algorithm(9999), 0},
	}

	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, u.Flags(tt.alg))
		})
	}
}

func TestDefaultKeyUsage_SameInstance(t *testing.T) {
	assert.Same(t, DefaultKeyUsage(), DefaultKeyUsage())
}

func TestNewKeyUsageTable_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := NewKeyUsageTable(nil)
		assert.ErrorIs(t, err, ErrMissingUsage)
	})

	t.Run("not symmetric", func(t *testing.T) {
		entries := append(defaultKeyUsage(), KeyUsageEntry{algorithm.SHA256WithRSA, mechanism.FlagSign})
		_, err := NewKeyUsageTable(entries)
		assert.ErrorIs(t, err, ErrNotSymmetric)
	})

	t.Run("out of range", func(t *testing.T) {
		entries := append(defaultKeyUsage(), KeyUsageEntry{algorithm.Algorithm(9999), mechanism.FlagSign})
		_, err := NewKeyUsageTable(entries)
		assert.ErrorIs(t, err, ErrSlotOutOfRange)
	})

	t.Run("duplicate", func(t *testing.T) {
		entries := append(defaultKeyUsage(), KeyUsageEntry{algorithm.AESCBC, mechanism.FlagEncrypt})
		_, err := NewKeyUsageTable(entries)
		assert.ErrorIs(t, err, ErrDuplicateSlot)
	})

	t.Run("empty mask", func(t *testing.T) {
		entries := defaultKeyUsage()
		entries[0].Flags = 0
		u, err := NewKeyUsageTable(entries)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrMissingUsage)
	})
}

func TestNewKeyUsageTable_Custom(t *testing.T) {
	entries := defaultKeyUsage()
	for i := range entries {
		if entries[i].Algorithm == algorithm.AESKeyGen {
			entries[i].Flags = UsageFlags(UsageWrap, UsageUnwrap)
		}
	}
	u, err := NewKeyUsageTable(entries)
	require.NoError(t, err)

	r := NewResolver(nil, u)
	assert.Equal(t, mechanism.FlagWrap|mechanism.FlagUnwrap, r.KeyUsage(algorithm.AESKeyGen))
}

func TestUsageFlags(t *testing.T) {
	assert.Equal(t, mechanism.FlagEncrypt, UsageEncrypt.Flag())
	assert.Equal(t, mechanism.FlagDecrypt, UsageDecrypt.Flag())
	assert.Equal(t, mechanism.FlagWrap, UsageWrap.Flag())
	assert.Equal(t, mechanism.FlagUnwrap, UsageUnwrap.Flag())
	assert.Equal(t, mechanism.FlagSign, UsageSign.Flag())
	assert.Equal(t, mechanism.FlagVerify, UsageVerify.Flag())
	assert.Zero(t, Usage(42).Flag())

	assert.Equal(t, mechanism.FlagEncrypt|mechanism.FlagVerify, UsageFlags(UsageEncrypt, UsageVerify, Usage(42)))
	assert.Zero(t, UsageFlags())
}

func TestUsage_String(t *testing.T) {
	assert.Equal(t, "unwrap", UsageUnwrap.String())
	assert.Equal(t, "Usage(42)", Usage(42).String())

	u, ok := ParseUsage("sign")
	assert.True(t, ok)
	assert.Equal(t, UsageSign, u)

	_, ok = ParseUsage("launch")
	assert.False(t, ok)
}
