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
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
)

// Space names the identifier space a table entry belongs to.
type Space uint8

const (
	// SpaceMechanismType is the PKCS#11 mechanism-type space.
	SpaceMechanismType Space = iota + 1

	// SpaceOIDTag is the OID-tag space.
	SpaceOIDTag
)

// String returns "mechanism", "oid" or "unknown".
func (s Space) String() string {
	switch s {
	case SpaceMechanismType:
		return "mechanism"
	case SpaceOIDTag:
		return "oid"
	default:
		return "unknown"
	}
}

// Identifier is the value bound to a table slot. It is implemented only by
// Mechanism and OID.
type Identifier interface {
	// Space reports which identifier space the value belongs to.
	Space() Space

	// Value returns the raw numeric identifier.
	Value() uint64

	// String returns the symbolic name of the identifier.
	String() string

	isIdentifier()
}

// Mechanism is the mechanism-type variant of Identifier.
type Mechanism mechanism.Type

func (Mechanism) Space() Space     { return SpaceMechanismType }
func (m Mechanism) Value() uint64  { return uint64(m) }
func (m Mechanism) String() string { return mechanism.Type(m).String() }
func (Mechanism) isIdentifier()    {}

// OID is the OID-tag variant of Identifier.
type OID oidtag.Tag

func (OID) Space() Space     { return SpaceOIDTag }
func (o OID) Value() uint64  { return uint64(o) }
func (o OID) String() string { return oidtag.Tag(o).String() }
func (OID) isIdentifier()    {}

// isSentinel reports whether id stores the miss sentinel of its own space.
func isSentinel(id Identifier) bool {
	switch v := id.(type) {
	case Mechanism:
		return mechanism.Type(v) == mechanism.Invalid
	case OID:
		return oidtag.Tag(v) == oidtag.Unknown
	default:
		return false
	}
}

// Entry binds one algorithm slot to its identifier.
type Entry struct {
	Algorithm  algorithm.Algorithm
	Identifier Identifier
}

// Identity is implemented by anything that carries an algorithm identity.
// algorithm.Algorithm implements it directly. A nil Identity is treated as
// absent and never resolves.
type Identity interface {
	AlgorithmID() algorithm.Algorithm
}
