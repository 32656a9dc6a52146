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

package metrics

import (
	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
)

// InstrumentedResolver wraps an algid.Resolver and records every lookup.
type InstrumentedResolver struct {
	*algid.Resolver
}

// NewInstrumentedResolver wraps r. A nil r selects a resolver over the
// built-in tables.
func NewInstrumentedResolver(r *algid.Resolver) *InstrumentedResolver {
	if r == nil {
		r = algid.NewResolver(nil, nil)
	}
	return &InstrumentedResolver{Resolver: r}
}

// ResolveOIDTag resolves id and records the outcome.
func (r *InstrumentedResolver) ResolveOIDTag(id algid.Identity) oidtag.Tag {
	tag := r.Resolver.ResolveOIDTag(id)
	RecordResolution(SpaceOID, tag != oidtag.Unknown)
	return tag
}

// ResolveMechanismType resolves id and records the outcome.
func (r *InstrumentedResolver) ResolveMechanismType(id algid.Identity) mechanism.Type {
	mech := r.Resolver.ResolveMechanismType(id)
	RecordResolution(SpaceMechanism, mech != mechanism.Invalid)
	return mech
}

// KeyUsage resolves the usage mask of id and records the outcome.
func (r *InstrumentedResolver) KeyUsage(id algid.Identity) mechanism.Flags {
	flags := r.Resolver.KeyUsage(id)
	RecordResolution(SpaceUsage, flags != 0)
	return flags
}

// Describe resolves id in both spaces, recording a hit in the space the
// identity is bound to or a miss in both when it is unknown.
func (r *InstrumentedResolver) Describe(id algid.Identity) (algid.Resolution, bool) {
	res, ok := r.Resolver.Describe(id)
	if !ok {
		RecordResolution(SpaceMechanism, false)
		RecordResolution(SpaceOID, false)
		return res, false
	}
	RecordResolution(res.Space, true)
	return res, true
}

// DescribeAll describes every slot in order, recording a hit in each slot's
// space.
func (r *InstrumentedResolver) DescribeAll() []algid.Resolution {
	all := r.Resolver.DescribeAll()
	for _, res := range all {
		RecordResolution(res.Space, true)
	}
	return all
}
