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

// Package oidtag defines the OID-tag identifier space: small-integer proxies
// for ASN.1 object identifiers, numbered after the NSS SECOidTag enumeration.
//
// A Tag is what gets stored in the resolution table. The dotted
// asn1.ObjectIdentifier behind a tag is used only when an algorithm
// identifier is actually encoded into a certificate or signature.
package oidtag

import (
	"encoding/asn1"
	"fmt"
)

// Tag is an OID tag.
type Tag uint32

// Unknown is the miss sentinel for the OID-tag space (SEC_OID_UNKNOWN).
const Unknown Tag = 0

// Tags referenced by the algorithm table, numbered as NSS secoidt.h.
const (
	MD2                                   Tag = 1
	MD5                                   Tag = 3
	SHA1                                  Tag = 4
	RC2CBC                                Tag = 5
	RC4                                   Tag = 6
	DESEDE3CBC                            Tag = 7
	DESECB                                Tag = 9
	DESCBC                                Tag = 10
	PKCS1RSAEncryption                    Tag = 16
	PKCS1MD2WithRSAEncryption             Tag = 17
	PKCS1MD5WithRSAEncryption             Tag = 19
	PKCS1SHA1WithRSAEncryption            Tag = 20
	PKCS5PBEWithMD2AndDESCBC              Tag = 21
	PKCS5PBEWithMD5AndDESCBC              Tag = 22
	PKCS5PBEWithSHA1AndDESCBC             Tag = 23
	ANSIX9DSASignature                    Tag = 124
	ANSIX9DSASignatureWithSHA1Digest      Tag = 125
	PKCS12V2PBEWithSHA1And128BitRC4       Tag = 154
	PKCS12V2PBEWithSHA1And40BitRC4        Tag = 155
	PKCS12V2PBEWithSHA1And3KeyTripleDES   Tag = 156
	PKCS12V2PBEWithSHA1And2KeyTripleDES   Tag = 157
	PKCS12V2PBEWithSHA1And128BitRC2CBC    Tag = 158
	PKCS12V2PBEWithSHA1And40BitRC2CBC     Tag = 159
	AES128ECB                             Tag = 183
	AES128CBC                             Tag = 184
	AES192ECB                             Tag = 185
	AES192CBC                             Tag = 186
	AES256ECB                             Tag = 187
	AES256CBC                             Tag = 188
	SHA256                                Tag = 191
	SHA384                                Tag = 192
	SHA512                                Tag = 193
	PKCS1SHA256WithRSAEncryption          Tag = 194
	PKCS1SHA384WithRSAEncryption          Tag = 195
	PKCS1SHA512WithRSAEncryption          Tag = 196
	ANSIX962ECPublicKey                   Tag = 200
	ANSIX962ECDSASHA1Signature            Tag = 201
	ANSIX962ECDSASignatureSpecifiedDigest Tag = 276
	ANSIX962ECDSASHA256Signature          Tag = 278
	ANSIX962ECDSASHA384Signature          Tag = 279
	ANSIX962ECDSASHA512Signature          Tag = 280
	PKCS5PBKDF2                           Tag = 291
	PKCS5PBES2                            Tag = 292
	PKCS5PBMAC1                           Tag = 293
	HMACSHA256                            Tag = 296
	HMACSHA384                            Tag = 297
	HMACSHA512                            Tag = 298
	PKCS1RSAPSSSignature                  Tag = 307
)

type tagInfo struct {
	name string
	oid  asn1.ObjectIdentifier
}

var registry = map[Tag]tagInfo{
	MD2:                                   {"SEC_OID_MD2", asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 2}},
	MD5:                                   {"SEC_OID_MD5", asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 5}},
	SHA1:                                  {"SEC_OID_SHA1", asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}},
	RC2CBC:                                {"SEC_OID_RC2_CBC", asn1.ObjectIdentifier{1, 2, 840, 113549, 3, 2}},
	RC4:                                   {"SEC_OID_RC4", asn1.ObjectIdentifier{1, 2, 840, 113549, 3, 4}},
	DESEDE3CBC:                            {"SEC_OID_DES_EDE3_CBC", asn1.ObjectIdentifier{1, 2, 840, 113549, 3, 7}},
	DESECB:                                {"SEC_OID_DES_ECB", asn1.ObjectIdentifier{1, 3, 14, 3, 2, 6}},
	DESCBC:                                {"SEC_OID_DES_CBC", asn1.ObjectIdentifier{1, 3, 14, 3, 2, 7}},
	PKCS1RSAEncryption:                    {"SEC_OID_PKCS1_RSA_ENCRYPTION", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}},
	PKCS1MD2WithRSAEncryption:             {"SEC_OID_PKCS1_MD2_WITH_RSA_ENCRYPTION", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 2}},
	PKCS1MD5WithRSAEncryption:             {"SEC_OID_PKCS1_MD5_WITH_RSA_ENCRYPTION", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 4}},
	PKCS1SHA1WithRSAEncryption:            {"SEC_OID_PKCS1_SHA1_WITH_RSA_ENCRYPTION", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 5}},
	PKCS5PBEWithMD2AndDESCBC:              {"SEC_OID_PKCS5_PBE_WITH_MD2_AND_DES_CBC", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 1}},
	PKCS5PBEWithMD5AndDESCBC:              {"SEC_OID_PKCS5_PBE_WITH_MD5_AND_DES_CBC", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 3}},
	PKCS5PBEWithSHA1AndDESCBC:             {"SEC_OID_PKCS5_PBE_WITH_SHA1_AND_DES_CBC", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 10}},
	ANSIX9DSASignature:                    {"SEC_OID_ANSIX9_DSA_SIGNATURE", asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}},
	ANSIX9DSASignatureWithSHA1Digest:      {"SEC_OID_ANSIX9_DSA_SIGNATURE_WITH_SHA1_DIGEST", asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 3}},
	PKCS12V2PBEWithSHA1And128BitRC4:       {"SEC_OID_PKCS12_V2_PBE_WITH_SHA1_AND_128_BIT_RC4", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 12, 1, 1}},
	PKCS12V2PBEWithSHA1And40BitRC4:        {"SEC_OID_PKCS12_V2_PBE_WITH_SHA1_AND_40_BIT_RC4", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 12, 1, 2}},
	PKCS12V2PBEWithSHA1And3KeyTripleDES:   {"SEC_OID_PKCS12_V2_PBE_WITH_SHA1_AND_3KEY_TRIPLE_DES_CBC", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 12, 1, 3}},
	PKCS12V2PBEWithSHA1And2KeyTripleDES:   {"SEC_OID_PKCS12_V2_PBE_WITH_SHA1_AND_2KEY_TRIPLE_DES_CBC", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 12, 1, 4}},
	PKCS12V2PBEWithSHA1And128BitRC2CBC:    {"SEC_OID_PKCS12_V2_PBE_WITH_SHA1_AND_128_BIT_RC2_CBC", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 12, 1, 5}},
	PKCS12V2PBEWithSHA1And40BitRC2CBC:     {"SEC_OID_PKCS12_V2_PBE_WITH_SHA1_AND_40_BIT_RC2_CBC", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 12, 1, 6}},
	AES128ECB:                             {"SEC_OID_AES_128_ECB", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 1}},
	AES128CBC:                             {"SEC_OID_AES_128_CBC", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 2}},
	AES192ECB:                             {"SEC_OID_AES_192_ECB", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 21}},
	AES192CBC:                             {"SEC_OID_AES_192_CBC", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 22}},
	AES256ECB:                             {"SEC_OID_AES_256_ECB", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 41}},
	AES256CBC:                             {"SEC_OID_AES_256_CBC", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 42}},
	SHA256:                                {"SEC_OID_SHA256", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}},
	SHA384:                                {"SEC_OID_SHA384", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}},
	SHA512:                                {"SEC_OID_SHA512", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}},
	PKCS1SHA256WithRSAEncryption:          {"SEC_OID_PKCS1_SHA256_WITH_RSA_ENCRYPTION", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}},
	PKCS1SHA384WithRSAEncryption:          {"SEC_OID_PKCS1_SHA384_WITH_RSA_ENCRYPTION", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 12}},
	PKCS1SHA512WithRSAEncryption:          {"SEC_OID_PKCS1_SHA512_WITH_RSA_ENCRYPTION", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 13}},
	ANSIX962ECPublicKey:                   {"SEC_OID_ANSIX962_EC_PUBLIC_KEY", asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}},
	ANSIX962ECDSASHA1Signature:            {"SEC_OID_ANSIX962_ECDSA_SHA1_SIGNATURE", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 1}},
	ANSIX962ECDSASignatureSpecifiedDigest: {"SEC_OID_ANSIX962_ECDSA_SIGNATURE_SPECIFIED_DIGEST", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3}},
	ANSIX962ECDSASHA256Signature:          {"SEC_OID_ANSIX962_ECDSA_SHA256_SIGNATURE", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 2}},
	ANSIX962ECDSASHA384Signature:          {"SEC_OID_ANSIX962_ECDSA_SHA384_SIGNATURE", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 3}},
	ANSIX962ECDSASHA512Signature:          {"SEC_OID_ANSIX962_ECDSA_SHA512_SIGNATURE", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 4}},
	PKCS5PBKDF2:                           {"SEC_OID_PKCS5_PBKDF2", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 12}},
	PKCS5PBES2:                            {"SEC_OID_PKCS5_PBES2", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 13}},
	PKCS5PBMAC1:                           {"SEC_OID_PKCS5_PBMAC1", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 14}},
	HMACSHA256:                            {"SEC_OID_HMAC_SHA256", asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 9}},
	HMACSHA384:                            {"SEC_OID_HMAC_SHA384", asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 10}},
	HMACSHA512:                            {"SEC_OID_HMAC_SHA512", asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 11}},
	PKCS1RSAPSSSignature:                  {"SEC_OID_PKCS1_RSA_PSS_SIGNATURE", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 10}},
}

// byOID is the reverse index of registry, keyed by dotted string.
var byOID = func() map[string]Tag {
	m := make(map[string]Tag, len(registry))
	for tag, ti := range registry {
		m[ti.oid.String()] = tag
	}
	return m
}()

// String returns the SEC_OID_* name of t.
func (t Tag) String() string {
	if t == Unknown {
		return "SEC_OID_UNKNOWN"
	}
	if ti, ok := registry[t]; ok {
		return ti.name
	}
	return fmt.Sprintf("SECOidTag(%d)", uint32(t))
}

// IsKnown reports whether t is neither the miss sentinel nor unregistered.
func (t Tag) IsKnown() bool {
	_, ok := registry[t]
	return ok
}

// ObjectIdentifier returns the ASN.1 object identifier behind t. The
// returned slice is a copy.
func (t Tag) ObjectIdentifier() (asn1.ObjectIdentifier, bool) {
	ti, ok := registry[t]
	if !ok {
		return nil, false
	}
	oid := make(asn1.ObjectIdentifier, len(ti.oid))
	copy(oid, ti.oid)
	return oid, true
}

// FromObjectIdentifier returns the tag registered for oid, or Unknown.
func FromObjectIdentifier(oid asn1.ObjectIdentifier) Tag {
	if len(oid) == 0 {
		return Unknown
	}
	return byOID[oid.String()]
}

// Parse accepts a dotted OID string such as "2.16.840.1.101.3.4.2.1" and
// returns its tag, or Unknown.
func Parse(dotted string) Tag {
	return byOID[dotted]
}
