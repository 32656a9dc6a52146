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

import "strings"

// Family groups algorithms by the kind of operation they name.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilySignature
	FamilyKeyPairGen
	FamilyCipher
	FamilySecretKeyGen
	FamilyPBE
	FamilyDigest
	FamilyMAC
	FamilyKDF
	FamilyKeyWrap
	FamilyKeyTransport
)

var familyNames = map[Family]string{
	FamilyUnknown:      "unknown",
	FamilySignature:    "signature",
	FamilyKeyPairGen:   "keypairgen",
	FamilyCipher:       "cipher",
	FamilySecretKeyGen: "secretkeygen",
	FamilyPBE:          "pbe",
	FamilyDigest:       "digest",
	FamilyMAC:          "mac",
	FamilyKDF:          "kdf",
	FamilyKeyWrap:      "keywrap",
	FamilyKeyTransport: "keytransport",
}

// String returns the lowercase family name.
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return familyNames[FamilyUnknown]
}

// IsSymmetric reports whether algorithms of this family operate on secret keys.
func (f Family) IsSymmetric() bool {
	switch f {
	case FamilyCipher, FamilySecretKeyGen, FamilyMAC, FamilyKeyWrap:
		return true
	default:
		return false
	}
}

// ParseFamily returns the family with the given name (case-insensitive).
func ParseFamily(name string) (Family, error) {
	for f, n := range familyNames {
		if f != FamilyUnknown && strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return FamilyUnknown, ErrUnknownFamily
}

// ByFamily returns every algorithm of family f in vocabulary order.
func ByFamily(f Family) []Algorithm {
	var out []Algorithm
	for i := range infos {
		if infos[i].family == f {
			out = append(out, Algorithm(i))
		}
	}
	return out
}
