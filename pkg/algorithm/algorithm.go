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

// Package algorithm defines the closed vocabulary of cryptographic algorithm
// identities understood by go-algid.
//
// Each Algorithm is a small dense integer in the range [0, Count). The numeric
// value is stable and doubles as the slot index of the resolution tables in
// package algid, so new algorithms are only ever appended before Count.
package algorithm

import (
	"fmt"
	"strings"
)

// Algorithm is an algorithm identity drawn from the closed vocabulary.
type Algorithm uint16

// =============================================================================
// Algorithm Vocabulary
// =============================================================================
// The order below is part of the public contract. Do not reorder.

const (
	MD2WithRSA          Algorithm = iota // 0
	MD5WithRSA                           // 1
	SHA1WithRSA                          // 2
	DSAWithSHA1                          // 3
	RSASignature                         // 4
	RSAKeyPairGen                        // 5
	DSAKeyPairGen                        // 6
	DSASignature                         // 7
	RC4                                  // 8
	DESECB                               // 9
	DESCBC                               // 10
	DESCBCPad                            // 11
	DES3ECB                              // 12
	DES3CBC                              // 13
	DES3CBCPad                           // 14
	DESKeyGen                            // 15
	DES3KeyGen                           // 16
	RC4KeyGen                            // 17
	PBEMD2DESCBC                         // 18
	PBEMD5DESCBC                         // 19
	PBESHA1DESCBC                        // 20
	PBESHA1RC4128                        // 21
	PBESHA1RC440                         // 22
	PBESHA1DES3CBC                       // 23
	MD2                                  // 24
	MD5                                  // 25
	SHA1                                 // 26
	HMACSHA1                             // 27
	PBESHA1RC2128CBC                     // 28
	PBESHA1RC240CBC                      // 29
	RC2CBC                               // 30
	PBASHA1HMAC                          // 31
	AESKeyGen                            // 32
	AESECB                               // 33
	AESCBC                               // 34
	AESCBCPad                            // 35
	RC2CBCPad                            // 36
	RC2KeyGen                            // 37
	SHA256                               // 38
	SHA384                               // 39
	SHA512                               // 40
	SHA256WithRSA                        // 41
	SHA384WithRSA                        // 42
	SHA512WithRSA                        // 43
	ECSignature                          // 44
	ECDSAWithSHA1                        // 45
	ECKeyPairGen                         // 46
	ECDSAWithSHA256                      // 47
	ECDSAWithSHA384                      // 48
	ECDSAWithSHA512                      // 49
	HMACSHA256                           // 50
	HMACSHA384                           // 51
	HMACSHA512                           // 52
	PBKDF2                               // 53
	PBES2                                // 54
	PBMAC1                               // 55
	ECDSASpecifiedDigest                 // 56
	AESKeyWrap                           // 57
	AESKeyWrapPad                        // 58
	AES128ECB                            // 59
	AES128CBC                            // 60
	AES192ECB                            // 61
	AES192CBC                            // 62
	AES256ECB                            // 63
	AES256CBC                            // 64
	AESKeyWrapKWP                        // 65
	RSAPSS                               // 66
	RSAOAEP                              // 67
	AESCMAC                              // 68
	GenericSecretKeyGen                  // 69

	// Count is the size of the vocabulary. It is not itself an algorithm.
	Count
)

// info is the static description of one vocabulary slot.
type info struct {
	name    string
	family  Family
	aliases []string
}

var infos = [Count]info{
	MD2WithRSA:           {"MD2withRSA", FamilySignature, []string{"MD2-RSA"}},
	MD5WithRSA:           {"MD5withRSA", FamilySignature, []string{"MD5-RSA"}},
	SHA1WithRSA:          {"SHA1withRSA", FamilySignature, []string{"SHA1-RSA", "RSA-SHA1"}},
	DSAWithSHA1:          {"SHA1withDSA", FamilySignature, []string{"DSA-SHA1"}},
	RSASignature:         {"RSASignature", FamilySignature, []string{"rsaEncryption"}},
	RSAKeyPairGen:        {"RSAKeyPairGen", FamilyKeyPairGen, []string{"RSA"}},
	DSAKeyPairGen:        {"DSAKeyPairGen", FamilyKeyPairGen, []string{"DSA"}},
	DSASignature:         {"DSASignature", FamilySignature, nil},
	RC4:                  {"RC4", FamilyCipher, []string{"ARCFOUR"}},
	DESECB:               {"DES/ECB", FamilyCipher, nil},
	DESCBC:               {"DES/CBC", FamilyCipher, nil},
	DESCBCPad:            {"DES/CBC/PKCS5Padding", FamilyCipher, nil},
	DES3ECB:              {"DESede/ECB", FamilyCipher, []string{"3DES/ECB"}},
	DES3CBC:              {"DESede/CBC", FamilyCipher, []string{"3DES/CBC"}},
	DES3CBCPad:           {"DESede/CBC/PKCS5Padding", FamilyCipher, []string{"3DES/CBC/PKCS5Padding"}},
	DESKeyGen:            {"DESKeyGen", FamilySecretKeyGen, []string{"DES"}},
	DES3KeyGen:           {"DESedeKeyGen", FamilySecretKeyGen, []string{"DESede", "3DES"}},
	RC4KeyGen:            {"RC4KeyGen", FamilySecretKeyGen, nil},
	PBEMD2DESCBC:         {"PBEWithMD2AndDES-CBC", FamilyPBE, nil},
	PBEMD5DESCBC:         {"PBEWithMD5AndDES-CBC", FamilyPBE, nil},
	PBESHA1DESCBC:        {"PBEWithSHA1AndDES-CBC", FamilyPBE, nil},
	PBESHA1RC4128:        {"PBEWithSHA1And128RC4", FamilyPBE, nil},
	PBESHA1RC440:         {"PBEWithSHA1And40RC4", FamilyPBE, nil},
	PBESHA1DES3CBC:       {"PBEWithSHA1AndDESede", FamilyPBE, []string{"PBEWithSHA1And3KeyTripleDES-CBC"}},
	MD2:                  {"MD2", FamilyDigest, nil},
	MD5:                  {"MD5", FamilyDigest, nil},
	SHA1:                 {"SHA-1", FamilyDigest, []string{"SHA1"}},
	HMACSHA1:             {"HmacSHA1", FamilyMAC, []string{"HMAC-SHA1"}},
	PBESHA1RC2128CBC:     {"PBEWithSHA1And128RC2-CBC", FamilyPBE, nil},
	PBESHA1RC240CBC:      {"PBEWithSHA1And40RC2-CBC", FamilyPBE, nil},
	RC2CBC:               {"RC2/CBC", FamilyCipher, nil},
	PBASHA1HMAC:          {"PBAWithSHA1AndHmacSHA1", FamilyPBE, nil},
	AESKeyGen:            {"AESKeyGen", FamilySecretKeyGen, []string{"AES"}},
	AESECB:               {"AES/ECB", FamilyCipher, nil},
	AESCBC:               {"AES/CBC", FamilyCipher, nil},
	AESCBCPad:            {"AES/CBC/PKCS5Padding", FamilyCipher, nil},
	RC2CBCPad:            {"RC2/CBC/PKCS5Padding", FamilyCipher, nil},
	RC2KeyGen:            {"RC2KeyGen", FamilySecretKeyGen, []string{"RC2"}},
	SHA256:               {"SHA-256", FamilyDigest, []string{"SHA256"}},
	SHA384:               {"SHA-384", FamilyDigest, []string{"SHA384"}},
	SHA512:               {"SHA-512", FamilyDigest, []string{"SHA512"}},
	SHA256WithRSA:        {"SHA256withRSA", FamilySignature, []string{"SHA256-RSA", "RSA-SHA256", "RS256"}},
	SHA384WithRSA:        {"SHA384withRSA", FamilySignature, []string{"SHA384-RSA", "RSA-SHA384", "RS384"}},
	SHA512WithRSA:        {"SHA512withRSA", FamilySignature, []string{"SHA512-RSA", "RSA-SHA512", "RS512"}},
	ECSignature:          {"ECSignature", FamilySignature, []string{"ecPublicKey"}},
	ECDSAWithSHA1:        {"SHA1withEC", FamilySignature, []string{"ECDSA-SHA1", "SHA1withECDSA"}},
	ECKeyPairGen:         {"ECKeyPairGen", FamilyKeyPairGen, []string{"EC", "ECDSA"}},
	ECDSAWithSHA256:      {"SHA256withEC", FamilySignature, []string{"ECDSA-SHA256", "SHA256withECDSA", "ES256"}},
	ECDSAWithSHA384:      {"SHA384withEC", FamilySignature, []string{"ECDSA-SHA384", "SHA384withECDSA", "ES384"}},
	ECDSAWithSHA512:      {"SHA512withEC", FamilySignature, []string{"ECDSA-SHA512", "SHA512withECDSA", "ES512"}},
	HMACSHA256:           {"HmacSHA256", FamilyMAC, []string{"HMAC-SHA256", "HS256"}},
	HMACSHA384:           {"HmacSHA384", FamilyMAC, []string{"HMAC-SHA384", "HS384"}},
	HMACSHA512:           {"HmacSHA512", FamilyMAC, []string{"HMAC-SHA512", "HS512"}},
	PBKDF2:               {"PBKDF2", FamilyKDF, nil},
	PBES2:                {"PBES2", FamilyPBE, nil},
	PBMAC1:               {"PBMAC1", FamilyPBE, nil},
	ECDSASpecifiedDigest: {"ECDSAWithSpecifiedDigest", FamilySignature, nil},
	AESKeyWrap:           {"AESKeyWrap", FamilyKeyWrap, []string{"AES/KW", "KW"}},
	AESKeyWrapPad:        {"AESKeyWrapPad", FamilyKeyWrap, []string{"AES/KW/PKCS5Padding"}},
	AES128ECB:            {"AES-128/ECB", FamilyCipher, nil},
	AES128CBC:            {"AES-128/CBC", FamilyCipher, nil},
	AES192ECB:            {"AES-192/ECB", FamilyCipher, nil},
	AES192CBC:            {"AES-192/CBC", FamilyCipher, nil},
	AES256ECB:            {"AES-256/ECB", FamilyCipher, nil},
	AES256CBC:            {"AES-256/CBC", FamilyCipher, nil},
	AESKeyWrapKWP:        {"AESKeyWrapKWP", FamilyKeyWrap, []string{"AES/KWP", "KWP"}},
	RSAPSS:               {"RSASSA-PSS", FamilySignature, []string{"RSA-PSS", "RSAPSS"}},
	RSAOAEP:              {"RSA-OAEP", FamilyKeyTransport, []string{"RSAES-OAEP", "RSA/ECB/OAEPPadding"}},
	AESCMAC:              {"AES-CMAC", FamilyMAC, []string{"AESCMAC", "CMAC"}},
	GenericSecretKeyGen:  {"GenericSecretKeyGen", FamilySecretKeyGen, []string{"GenericSecret"}},
}

// byName maps lowercased names and aliases to algorithms. Built once at init
// and never written afterwards.
var byName = func() map[string]Algorithm {
	m := make(map[string]Algorithm, int(Count)*2)
	for i := range infos {
		alg := Algorithm(i)
		m[strings.ToLower(infos[i].name)] = alg
		for _, alias := range infos[i].aliases {
			m[strings.ToLower(alias)] = alg
		}
	}
	return m
}()

// Valid reports whether a lies within the vocabulary range.
func (a Algorithm) Valid() bool {
	return a < Count
}

// AlgorithmID returns a itself, so Algorithm satisfies algid.Identity.
func (a Algorithm) AlgorithmID() Algorithm {
	return a
}

// String returns the canonical algorithm name.
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint16(a))
	}
	return infos[a].name
}

// Family returns the algorithm family, or FamilyUnknown when a is out of range.
func (a Algorithm) Family() Family {
	if !a.Valid() {
		return FamilyUnknown
	}
	return infos[a].family
}

// IsSymmetric reports whether a denotes a secret-key (symmetric) algorithm.
func (a Algorithm) IsSymmetric() bool {
	return a.Family().IsSymmetric()
}

// Aliases returns the alternate names accepted by Parse for a.
func (a Algorithm) Aliases() []string {
	if !a.Valid() {
		return nil
	}
	out := make([]string, len(infos[a].aliases))
	copy(out, infos[a].aliases)
	return out
}

// All returns every algorithm in vocabulary order.
func All() []Algorithm {
	out := make([]Algorithm, Count)
	for i := range out {
		out[i] = Algorithm(i)
	}
	return out
}

// Parse translates a name into an algorithm identity. Matching is
// case-insensitive and accepts canonical names as well as aliases.
func Parse(name string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Count, ErrUnknownAlgorithm
	}
	if alg, ok := byName[key]; ok {
		return alg, nil
	}
	return Count, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// MustParse is like Parse but panics on failure. Intended for tests and
// package-level initialization.
func MustParse(name string) Algorithm {
	alg, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return alg
}
