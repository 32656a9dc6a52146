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

import "errors"

var (
	// ErrSlotOutOfRange is returned when a table entry names an algorithm
	// outside the vocabulary.
	ErrSlotOutOfRange = errors.New("algid: slot out of range")

	// ErrDuplicateSlot is returned when two entries name the same algorithm.
	ErrDuplicateSlot = errors.New("algid: duplicate slot")

	// ErrMissingSlot is returned when a table leaves a slot unpopulated.
	ErrMissingSlot = errors.New("algid: missing slot")

	// ErrNilIdentifier is returned when an entry carries no identifier.
	ErrNilIdentifier = errors.New("algid: nil identifier")

	// ErrSentinelValue is returned when an entry stores a miss sentinel as
	// its value.
	ErrSentinelValue = errors.New("algid: sentinel stored as value")

	// ErrNotSymmetric is returned when a key-usage mask is given for an
	// algorithm that is not symmetric.
	ErrNotSymmetric = errors.New("algid: key usage for non-symmetric algorithm")

	// ErrMissingUsage is returned when a symmetric algorithm has no
	// key-usage mask.
	ErrMissingUsage = errors.New("algid: missing key usage")
)
