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
)

// Table is an immutable algorithm table. Every slot in [0, algorithm.Count)
// holds exactly one Identifier.
type Table struct {
	slots [algorithm.Count]Identifier
}

// NewTable builds a table from entries. The entries must populate every
// slot exactly once; all violations are reported together.
func NewTable(entries []Entry) (*Table, error) {
	var (
		t      Table
		seen   [algorithm.Count]bool
		result *multierror.Error
	)

	for i, e := range entries {
		switch {
		case !e.Algorithm.Valid():
			result = multierror.Append(result,
				fmt.Errorf("%w: entry %d names %s", ErrSlotOutOfRange, i, e.Algorithm))
		case e.Identifier == nil:
			result = multierror.Append(result,
				fmt.Errorf("%w: %s", ErrNilIdentifier, e.Algorithm))
		case seen[e.Algorithm]:
			result = multierror.Append(result,
				fmt.Errorf("%w: %s", ErrDuplicateSlot, e.Algorithm))
		case isSentinel(e.Identifier):
			result = multierror.Append(result,
				fmt.Errorf("%w: %s -> %s", ErrSentinelValue, e.Algorithm, e.Identifier))
		default:
			t.slots[e.Algorithm] = e.Identifier
			seen[e.Algorithm] = true
		}
	}

	for i, ok := range seen {
		if !ok {
			result = multierror.Append(result,
				fmt.Errorf("%w: %s", ErrMissingSlot, algorithm.Algorithm(i)))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &t, nil
}

// NewDefaultTable builds a fresh copy of the built-in algorithm table.
func NewDefaultTable() *Table {
	t, err := NewTable(defaultEntries())
	if err != nil {
		panic(fmt.Sprintf("algid: built-in algorithm table is invalid: %v", err))
	}
	return t
}

var defaultTable = sync.OnceValue(NewDefaultTable)

// Default returns the shared built-in algorithm table. The same instance is
// returned on every call.
func Default() *Table {
	return defaultTable()
}

// Len returns the number of slots.
func (t *Table) Len() int {
	return len(t.slots)
}

// Lookup returns the identifier bound to alg. It reports false when alg is
// outside the vocabulary.
func (t *Table) Lookup(alg algorithm.Algorithm) (Identifier, bool) {
	if !alg.Valid() {
		return nil, false
	}
	return t.slots[alg], true
}

// Entries returns a copy of the table in slot order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.slots))
	for i, id := range t.slots {
		out[i] = Entry{Algorithm: algorithm.Algorithm(i), Identifier: id}
	}
	return out
}

// InSpace returns the algorithms whose slot belongs to space s.
func (t *Table) InSpace(s Space) []algorithm.Algorithm {
	var out []algorithm.Algorithm
	for i, id := range t.slots {
		if id.Space() == s {
			out = append(out, algorithm.Algorithm(i))
		}
	}
	return out
}
