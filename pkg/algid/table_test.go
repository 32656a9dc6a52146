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

	"github.com/hashicorp/go-multierror"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultTable(t *testing.T) {
	table := NewDefaultTable()
	require.NotNil(t, table)
	assert.Equal(t, int(algorithm.Count), table.Len())
}

func TestDefault_SameInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestTable_Total(t *testing.T) {
	for _, e := range Default().Entries() {
		require.NotNil(t, e.Identifier, "slot %d (%s) is empty", e.Algorithm, e.Algorithm)
		assert.False(t, isSentinel(e.Identifier), e.Algorithm.String())
	}
}

func TestTable_Lookup(t *testing.T) {
	table := Default()

	id, ok := table.Lookup(algorithm.AESKeyWrapKWP)
	require.True(t, ok)
	assert.Equal(t, Mechanism(mechanism.AESKeyWrapKWP), id)
	assert.Equal(t, SpaceMechanismType, id.Space())
	assert.Equal(t, uint64(0x210b), id.Value())

	id, ok = table.Lookup(algorithm.MD2WithRSA)
	require.True(t, ok)
	assert.Equal(t, OID(oidtag.PKCS1MD2WithRSAEncryption), id)
	assert.Equal(t, SpaceOIDTag, id.Space())
	assert.Equal(t, uint64(17), id.Value())

	id, ok = table.Lookup(algorithm.Algorithm(9999))
	assert.False(t, ok)
	assert.Nil(t, id)

	_, ok = table.Lookup(algorithm.Count)
	assert.False(t, ok)
}

func TestTable_Entries_IsCopy(t *testing.T) {
	table := NewDefaultTable()
	entries := table.Entries()
	entries[0].Identifier = Mechanism(mechanism.AESCBC)

	id, _ := table.Lookup(algorithm.MD2WithRSA)
	assert.Equal(t, OID(oidtag.PKCS1MD2WithRSAEncryption), id)
}

func TestTable_InSpace(t *testing.T) {
	table := Default()
	mechs := table.InSpace(SpaceMechanismType)
	oids := table.InSpace(SpaceOIDTag)

	assert.Equal(t, int(algorithm.Count), len(mechs)+len(oids))
	assert.Contains(t, mechs, algorithm.AESKeyWrap)
	assert.Contains(t, oids, algorithm.SHA256)
	assert.Empty(t, table.InSpace(Space(0)))
}

func TestNewTable_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		table, err := NewTable(nil)
		assert.Nil(t, table)
		assert.ErrorIs(t, err, ErrMissingSlot)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		assert.Len(t, merr.Errors, int(algorithm.Count))
	})

	t.Run("out of range", func(t *testing.T) {
		entries := append(defaultEntries(), Entry{algorithm.Algorithm(9999), OID(oidtag.SHA1)})
		_, err := NewTable(entries)
		assert.ErrorIs(t, err, ErrSlotOutOfRange)
	})

	t.Run("duplicate", func(t *testing.T) {
		entries := append(defaultEntries(), Entry{algorithm.SHA1, OID(oidtag.SHA1)})
		_, err := NewTable(entries)
		assert.ErrorIs(t, err, ErrDuplicateSlot)
	})

	t.Run("nil identifier", func(t *testing.T) {
		entries := defaultEntries()
		entries[algorithm.SHA1].Identifier = nil
		_, err := NewTable(entries)
		assert.ErrorIs(t, err, ErrNilIdentifier)
		assert.ErrorIs(t, err, ErrMissingSlot)
	})

	t.Run("sentinel values", func(t *testing.T) {
		entries := defaultEntries()
		entries[algorithm.AESCBC].Identifier = Mechanism(mechanism.Invalid)
		entries[algorithm.SHA1].Identifier = OID(oidtag.Unknown)
		_, err := NewTable(entries)
		assert.ErrorIs(t, err, ErrSentinelValue)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		// two sentinels plus the two slots they leave empty
		assert.Len(t, merr.Errors, 4)
	})
}

func TestNewTable_OrderIndependent(t *testing.T) {
	entries := defaultEntries()
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	table, err := NewTable(entries)
	require.NoError(t, err)
	assert.Equal(t, Default().Entries(), table.Entries())
}

func TestSpace_String(t *testing.T) {
	assert.Equal(t, "mechanism", SpaceMechanismType.String())
	assert.Equal(t, "oid", SpaceOIDTag.String())
	assert.Equal(t, "unknown", Space(0).String())
}

func TestIdentifier_String(t *testing.T) {
	assert.Equal(t, "CKM_AES_CBC_PAD", Mechanism(mechanism.AESCBCPad).String())
	assert.Equal(t, "SEC_OID_SHA256", OID(oidtag.SHA256).String())
}
