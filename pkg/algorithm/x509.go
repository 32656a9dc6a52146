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

package algorithm

import (
	"crypto"
	"crypto/x509"
)

// =============================================================================
// Standard Library Conversions
// =============================================================================

var x509Signatures = map[Algorithm]x509.SignatureAlgorithm{
	MD2WithRSA:      x509.MD2WithRSA,
	MD5WithRSA:      x509.MD5WithRSA,
	SHA1WithRSA:     x509.SHA1WithRSA,
	DSAWithSHA1:     x509.DSAWithSHA1,
	SHA256WithRSA:   x509.SHA256WithRSA,
	SHA384WithRSA:   x509.SHA384WithRSA,
	SHA512WithRSA:   x509.SHA512WithRSA,
	ECDSAWithSHA1:   x509.ECDSAWithSHA1,
	ECDSAWithSHA256: x509.ECDSAWithSHA256,
	ECDSAWithSHA384: x509.ECDSAWithSHA384,
	ECDSAWithSHA512: x509.ECDSAWithSHA512,
}

var hashes = map[Algorithm]crypto.Hash{
	MD5:             crypto.MD5,
	SHA1:            crypto.SHA1,
	SHA256:          crypto.SHA256,
	SHA384:          crypto.SHA384,
	SHA512:          crypto.SHA512,
	HMACSHA1:        crypto.SHA1,
	HMACSHA256:      crypto.SHA256,
	HMACSHA384:      crypto.SHA384,
	HMACSHA512:      crypto.SHA512,
	PBASHA1HMAC:     crypto.SHA1,
	MD5WithRSA:      crypto.MD5,
	SHA1WithRSA:     crypto.SHA1,
	DSAWithSHA1:     crypto.SHA1,
	SHA256WithRSA:   crypto.SHA256,
	SHA384WithRSA:   crypto.SHA384,
	SHA512WithRSA:   crypto.SHA512,
	ECDSAWithSHA1:   crypto.SHA1,
	ECDSAWithSHA256: crypto.SHA256,
	ECDSAWithSHA384: crypto.SHA384,
	ECDSAWithSHA512: crypto.SHA512,
}

// SignatureAlgorithm converts a to the equivalent x509.SignatureAlgorithm.
// Algorithms without a fixed digest (RSASSA-PSS, ECDSA with specified digest)
// and non-signature algorithms map to x509.UnknownSignatureAlgorithm.
func (a Algorithm) SignatureAlgorithm() x509.SignatureAlgorithm {
	if sig, ok := x509Signatures[a]; ok {
		return sig
	}
	return x509.UnknownSignatureAlgorithm
}

// Hash returns the digest bound to a, or 0 when a has none or the digest is
// not implemented by the standard library (MD2).
func (a Algorithm) Hash() crypto.Hash {
	return hashes[a]
}
