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
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
)

// KeyUsageEntry binds a symmetric algorithm to its default usage mask.
type KeyUsageEntry struct {
	Algorithm algorithm.Algorithm
	Flags     mechanism.Flags
}

// KeyUsageTable is an immutable per-slot usage mask table. Slots of
// non-symmetric algorithms hold zero.
type KeyUsageTable struct {
	masks [algorithm.Count]mechanism.Flags
}

// NewKeyUsageTable builds a usage table. Every symmetric algorithm must be
// given a non-zero mask exactly once and no other algorithm may appear.
func NewKeyUsageTable(entries []KeyUsageEntry) (*KeyUsageTable, error) {
	var (
		u      KeyUsageTable
		seen   [algorithm.Count]bool
		result *multierror.Error
	)

	for i, e := range entries {
		switch {
		case !e.Algorithm.Valid():
			result = multierror.Append(result,
				fmt.Errorf("%w: entry %d names %s", ErrSlotOutOfRange, i, e.Algorithm))
		case !e.Algorithm.IsSymmetric():
			result = multierror.Append(result,
				fmt.Errorf("%w: %s", ErrNotSymmetric, e.Algorithm))
		case seen[e.Algorithm]:
			result = multierror.Append(result,
				fmt.Errorf("%w: %s", ErrDuplicateSlot, e.Algorithm))
		case e.Flags == 0:
			result = multierror.Append(result,
				fmt.Errorf("%w: %s has an empty mask", ErrMissingUsage, e.Algorithm))
			seen[e.Algorithm] = true
		default:
			u.masks[e.Algorithm] = e.Flags
			seen[e.Algorithm] = true
		}
	}

	for _, a := range algorithm.All() {
		if a.IsSymmetric() && !seen[a] {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrMissingUsage, a))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &u, nil
}

// NewDefaultKeyUsage builds a fresh copy of the built-in usage table.
func NewDefaultKeyUsage() *KeyUsageTable {
	u, err := NewKeyUsageTable(defaultKeyUsage())
	if err != nil {
		panic(fmt.Sprintf("algid: built-in key usage table is invalid: %v", err))
	}
	return u
}

var defaultKeyUsageTable = sync.OnceValue(NewDefaultKeyUsage)

// DefaultKeyUsage returns the shared built-in usage table.
func DefaultKeyUsage() *KeyUsageTable {
	return defaultKeyUsageTable()
}

// Flags returns the usage mask for alg, or zero when alg is out of range or
// not symmetric.
func (u *KeyUsageTable) Flags(alg algorithm.Algorithm) mechanism.Flags {
	if !alg.Valid() {
		return 0
	}
	return u.masks[alg]
}

// Usage is a single intended operation for a symmetric key object.
type Usage uint8

const (
	UsageEncrypt Usage = iota
	UsageDecrypt
	UsageWrap
	UsageUnwrap
	UsageSign
	UsageVerify
)

var usageFlags = [...]mechanism.Flags{
	UsageEncrypt: mechanism.FlagEncrypt,
	UsageDecrypt: mechanism.FlagDecrypt,
	UsageWrap:    mechanism.FlagWrap,
	UsageUnwrap:  mechanism.FlagUnwrap,
	UsageSign:    mechanism.FlagSign,
	UsageVerify:  mechanism.FlagVerify,
}

var usageNames = [...]string{
	UsageEncrypt: "encrypt",
	UsageDecrypt: "decrypt",
	UsageWrap:    "wrap",
	UsageUnwrap:  "unwrap",
	UsageSign:    "sign",
	UsageVerify:  "verify",
}

// Flag returns the PKCS#11 flag for u, or zero for an unknown usage.
func (u Usage) Flag() mechanism.Flags {
	if int(u) >= len(usageFlags) {
		return 0
	}
	return usageFlags[u]
}

// String returns the lowercase usage name.
func (u Usage) String() string {
	if int(u) >= len(usageNames) {
		return fmt.Sprintf("Usage(%d)", uint8(u))
	}
	return usageNames[u]
}

// ParseUsage returns the usage with the given lowercase name.
func ParseUsage(name string) (Usage, bool) {
	for i, n := range usageNames {
		if n == name {
			return Usage(i), true
		}
	}
	return 0, false
}

// UsageFlags combines the flags of the given usages.
func UsageFlags(usages ...Usage) mechanism.Flags {
	var f mechanism.Flags
	for _, u := range usages {
		f |= u.Flag()
	}
	return f
}
