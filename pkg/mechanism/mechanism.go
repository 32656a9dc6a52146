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

// Package mechanism defines the PKCS#11 mechanism-type identifier space
// (CK_MECHANISM_TYPE) and the mechanism usage flags (CKF_*) used by go-algid.
//
// Values are compiled-in literals matching the PKCS#11 headers bit-for-bit,
// so the package builds without cgo. The pkcs11-tagged tests verify each
// literal against github.com/miekg/pkcs11.
package mechanism

import "fmt"

// Type is a PKCS#11 mechanism type.
type Type uint

// Invalid is the miss sentinel for the mechanism space (CKM_INVALID_MECHANISM).
const Invalid Type = 0xffffffff

const (
	RSAPKCSKeyPairGen   Type = 0x00000000
	RSAPKCS             Type = 0x00000001
	RSAPKCSOAEP         Type = 0x00000009
	DSAKeyPairGen       Type = 0x00000010
	RC2KeyGen           Type = 0x00000100
	RC2CBC              Type = 0x00000102
	RC2CBCPad           Type = 0x00000105
	RC4KeyGen           Type = 0x00000110
	RC4                 Type = 0x00000111
	DESKeyGen           Type = 0x00000120
	DESECB              Type = 0x00000121
	DESCBC              Type = 0x00000122
	DESCBCPad           Type = 0x00000125
	DES3KeyGen          Type = 0x00000131
	DES3ECB             Type = 0x00000132
	DES3CBC             Type = 0x00000133
	DES3CBCPad          Type = 0x00000136
	SHA1HMAC            Type = 0x00000221
	SHA256HMAC          Type = 0x00000251
	GenericSecretKeyGen Type = 0x00000350
	PBASHA1WithSHA1HMAC Type = 0x000003c0
	ECKeyPairGen        Type = 0x00001040
	AESKeyGen           Type = 0x00001080
	AESECB              Type = 0x00001081
	AESCBC              Type = 0x00001082
	AESCBCPad           Type = 0x00001085
	AESCMAC             Type = 0x0000108a
	VendorDefined       Type = 0x80000000
)

// Key wrap mechanisms. Older provider headers do not define these, so they
// are always carried as literals. They must stay equal to the provider's
// CKM_AES_KEY_WRAP, CKM_AES_KEY_WRAP_PAD and CKM_AES_KEY_WRAP_KWP.
const (
	AESKeyWrap    Type = 0x2109
	AESKeyWrapPad Type = 0x210a
	AESKeyWrapKWP Type = 0x210b
)

var names = map[Type]string{
	RSAPKCSKeyPairGen:   "CKM_RSA_PKCS_KEY_PAIR_GEN",
	RSAPKCS:             "CKM_RSA_PKCS",
	RSAPKCSOAEP:         "CKM_RSA_PKCS_OAEP",
	DSAKeyPairGen:       "CKM_DSA_KEY_PAIR_GEN",
	RC2KeyGen:           "CKM_RC2_KEY_GEN",
	RC2CBC:              "CKM_RC2_CBC",
	RC2CBCPad:           "CKM_RC2_CBC_PAD",
	RC4KeyGen:           "CKM_RC4_KEY_GEN",
	RC4:                 "CKM_RC4",
	DESKeyGen:           "CKM_DES_KEY_GEN",
	DESECB:              "CKM_DES_ECB",
	DESCBC:              "CKM_DES_CBC",
	DESCBCPad:           "CKM_DES_CBC_PAD",
	DES3KeyGen:          "CKM_DES3_KEY_GEN",
	DES3ECB:             "CKM_DES3_ECB",
	DES3CBC:             "CKM_DES3_CBC",
	DES3CBCPad:          "CKM_DES3_CBC_PAD",
	SHA1HMAC:            "CKM_SHA_1_HMAC",
	SHA256HMAC:          "CKM_SHA256_HMAC",
	GenericSecretKeyGen: "CKM_GENERIC_SECRET_KEY_GEN",
	PBASHA1WithSHA1HMAC: "CKM_PBA_SHA1_WITH_SHA1_HMAC",
	ECKeyPairGen:        "CKM_EC_KEY_PAIR_GEN",
	AESKeyGen:           "CKM_AES_KEY_GEN",
	AESECB:              "CKM_AES_ECB",
	AESCBC:              "CKM_AES_CBC",
	AESCBCPad:           "CKM_AES_CBC_PAD",
	AESCMAC:             "CKM_AES_CMAC",
	AESKeyWrap:          "CKM_AES_KEY_WRAP",
	AESKeyWrapPad:       "CKM_AES_KEY_WRAP_PAD",
	AESKeyWrapKWP:       "CKM_AES_KEY_WRAP_KWP",
	Invalid:             "CKM_INVALID_MECHANISM",
}

// String returns the CKM_* name, or the hex value for unnamed mechanisms.
func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	if t >= VendorDefined {
		return fmt.Sprintf("CKM_VENDOR_DEFINED+0x%x", uint(t-VendorDefined))
	}
	return fmt.Sprintf("0x%08x", uint(t))
}

// IsValid reports whether t is anything other than the miss sentinel.
func (t Type) IsValid() bool {
	return t != Invalid
}
