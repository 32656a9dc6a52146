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

// Package algid resolves algorithm identities into the concrete identifiers
// used by two downstream representations: PKCS#11 mechanism types (to drive
// a token) and OID tags (to encode algorithm identifiers into certificates
// and signatures).
//
// # Tables
//
// A Table binds every slot of the algorithm vocabulary to exactly one
// Identifier. An Identifier is a closed sum type with two variants,
// Mechanism and OID, so each slot has a single authoritative space.
// A KeyUsageTable gives the default PKCS#11 usage mask for every symmetric
// algorithm. Both are built once with NewTable / NewKeyUsageTable and have
// no mutators; Default and DefaultKeyUsage return the built-in instances.
//
// # Resolution
//
// A Resolver answers classification questions. A miss (wrong space,
// out-of-range identity, nil identity) is reported through the sentinel
// values oidtag.Unknown and mechanism.Invalid, never through an error:
//
//	r := algid.NewResolver(nil, nil)
//	if mech := r.ResolveMechanismType(algorithm.AESCBCPad); mech.IsValid() {
//	    // drive the token with mech
//	}
//	if tag := r.ResolveOIDTag(algorithm.SHA256WithRSA); tag != oidtag.Unknown {
//	    // encode tag into a certificate
//	}
//
// All values are immutable after construction and safe for concurrent use.
package algid
