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
	"crypto/x509/pkix"
	"encoding/asn1"

	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
)

// Resolver maps algorithm identities to mechanism types, OID tags and key
// usage masks. It reads its tables only; a Resolver is safe for concurrent
// use.
type Resolver struct {
	table *Table
	usage *KeyUsageTable
}

// NewResolver returns a resolver over the given tables. A nil table or
// usage table selects the built-in default.
func NewResolver(table *Table, usage *KeyUsageTable) *Resolver {
	if table == nil {
		table = Default()
	}
	if usage == nil {
		usage = DefaultKeyUsage()
	}
	return &Resolver{table: table, usage: usage}
}

// Table returns the algorithm table the resolver reads.
func (r *Resolver) Table() *Table {
	return r.table
}

// lookup bounds-checks id before indexing the table.
func (r *Resolver) lookup(id Identity) (Identifier, bool) {
	if id == nil {
		return nil, false
	}
	return r.table.Lookup(id.AlgorithmID())
}

// ResolveOIDTag returns the OID tag bound to id, or oidtag.Unknown when id
// is nil, out of range, or bound to a mechanism.
func (r *Resolver) ResolveOIDTag(id Identity) oidtag.Tag {
	ident, ok := r.lookup(id)
	if !ok {
		return oidtag.Unknown
	}
	if v, ok := ident.(OID); ok {
		return oidtag.Tag(v)
	}
	return oidtag.Unknown
}

// ResolveMechanismType returns the mechanism bound to id, or
// mechanism.Invalid when id is nil, out of range, or bound to an OID tag.
func (r *Resolver) ResolveMechanismType(id Identity) mechanism.Type {
	ident, ok := r.lookup(id)
	if !ok {
		return mechanism.Invalid
	}
	if v, ok := ident.(Mechanism); ok {
		return mechanism.Type(v)
	}
	return mechanism.Invalid
}

// KeyUsage returns the default PKCS#11 usage mask for id. Non-symmetric,
// out-of-range and nil identities yield zero.
func (r *Resolver) KeyUsage(id Identity) mechanism.Flags {
	if id == nil {
		return 0
	}
	return r.usage.Flags(id.AlgorithmID())
}

// rsaNullParams lists the PKCS#1 algorithms whose AlgorithmIdentifier
// carries an explicit NULL parameter (RFC 4055 section 5).
var rsaNullParams = map[oidtag.Tag]bool{
	oidtag.PKCS1RSAEncryption:           true,
	oidtag.PKCS1MD2WithRSAEncryption:    true,
	oidtag.PKCS1MD5WithRSAEncryption:    true,
	oidtag.PKCS1SHA1WithRSAEncryption:   true,
	oidtag.PKCS1SHA256WithRSAEncryption: true,
	oidtag.PKCS1SHA384WithRSAEncryption: true,
	oidtag.PKCS1SHA512WithRSAEncryption: true,
}

// AlgorithmIdentifier builds the X.509 AlgorithmIdentifier for an
// OID-tagged identity. Parameterized algorithms (PBES2, RSASSA-PSS, ...)
// are returned without parameters; the caller fills them in.
func (r *Resolver) AlgorithmIdentifier(id Identity) (pkix.AlgorithmIdentifier, bool) {
	tag := r.ResolveOIDTag(id)
	if tag == oidtag.Unknown {
		return pkix.AlgorithmIdentifier{}, false
	}
	oid, ok := tag.ObjectIdentifier()
	if !ok {
		return pkix.AlgorithmIdentifier{}, false
	}
	ai := pkix.AlgorithmIdentifier{Algorithm: oid}
	if rsaNullParams[tag] {
		ai.Parameters = asn1.NullRawValue
	}
	return ai, true
}

// Resolution is a flattened view of everything the resolver knows about
// one identity.
type Resolution struct {
	Algorithm algorithm.Algorithm `json:"-"`
	Name      string              `json:"algorithm"`
	Slot      int                 `json:"slot"`
	Family    string              `json:"family"`
	Space     string              `json:"space"`
	Mechanism mechanism.Type      `json:"mechanism"`
	OIDTag    oidtag.Tag          `json:"oid_tag"`
	OID       string              `json:"oid,omitempty"`
	KeyUsage  mechanism.Flags     `json:"key_usage"`
}

// Describe resolves id in both spaces. The second result is false when id
// is nil or outside the vocabulary.
func (r *Resolver) Describe(id Identity) (Resolution, bool) {
	ident, ok := r.lookup(id)
	if !ok {
		return Resolution{
			Mechanism: mechanism.Invalid,
			OIDTag:    oidtag.Unknown,
		}, false
	}

	alg := id.AlgorithmID()
	res := Resolution{
		Algorithm: alg,
		Name:      alg.String(),
		Slot:      int(alg),
		Family:    alg.Family().String(),
		Space:     ident.Space().String(),
		Mechanism: r.ResolveMechanismType(alg),
		OIDTag:    r.ResolveOIDTag(alg),
		KeyUsage:  r.KeyUsage(alg),
	}
	if oid, ok := res.OIDTag.ObjectIdentifier(); ok {
		res.OID = oid.String()
	}
	return res, true
}

// DescribeAll describes every slot in vocabulary order.
func (r *Resolver) DescribeAll() []Resolution {
	out := make([]Resolution, 0, r.table.Len())
	for _, a := range algorithm.All() {
		res, _ := r.Describe(a)
		out = append(out, res)
	}
	return out
}
