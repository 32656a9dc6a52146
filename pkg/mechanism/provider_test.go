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

//go:build pkcs11

package mechanism

import (
	"testing"

	"github.com/miekg/pkcs11"
	"github.com/stretchr/testify/assert"
)

// TestMatchesProvider checks every literal against the values exported by
// the PKCS#11 bindings.
func TestMatchesProvider(t *testing.T) {
	mechs := []struct {
		ours Type
		p11  uint
	}{
		{RSAPKCSKeyPairGen, pkcs11.CKM_RSA_PKCS_KEY_PAIR_GEN},
		{RSAPKCS, pkcs11.CKM_RSA_PKCS},
		{RSAPKCSOAEP, pkcs11.CKM_RSA_PKCS_OAEP},
		{DSAKeyPairGen, pkcs11.CKM_DSA_KEY_PAIR_GEN},
		{RC2KeyGen, pkcs11.CKM_RC2_KEY_GEN},
		{RC2CBC, pkcs11.CKM_RC2_CBC},
		{RC2CBCPad, pkcs11.CKM_RC2_CBC_PAD},
		{RC4KeyGen, pkcs11.CKM_RC4_KEY_GEN},
		{RC4, pkcs11.CKM_RC4},
		{DESKeyGen, pkcs11.CKM_DES_KEY_GEN},
		{DESECB, pkcs11.CKM_DES_ECB},
		{DESCBC, pkcs11.CKM_DES_CBC},
		{DESCBCPad, pkcs11.CKM_DES_CBC_PAD},
		{DES3KeyGen, pkcs11.CKM_DES3_KEY_GEN},
		{DES3ECB, pkcs11.CKM_DES3_ECB},
		{DES3CBC, pkcs11.CKM_DES3_CBC},
		{DES3CBCPad, pkcs11.CKM_DES3_CBC_PAD},
		{SHA1HMAC, pkcs11.CKM_SHA_1_HMAC},
		{SHA256HMAC, pkcs11.CKM_SHA256_HMAC},
		{GenericSecretKeyGen, pkcs11.CKM_GENERIC_SECRET_KEY_GEN},
		{PBASHA1WithSHA1HMAC, pkcs11.CKM_PBA_SHA1_WITH_SHA1_HMAC},
		{ECKeyPairGen, pkcs11.CKM_EC_KEY_PAIR_GEN},
		{AESKeyGen, pkcs11.CKM_AES_KEY_GEN},
		{AESECB, pkcs11.CKM_AES_ECB},
		{AESCBC, pkcs11.CKM_AES_CBC},
		{AESCBCPad, pkcs11.CKM_AES_CBC_PAD},
		{AESCMAC, pkcs11.CKM_AES_CMAC},
		{AESKeyWrap, pkcs11.CKM_AES_KEY_WRAP},
		{AESKeyWrapPad, pkcs11.CKM_AES_KEY_WRAP_PAD},
		{VendorDefined, pkcs11.CKM_VENDOR_DEFINED},
	}
	for _, m := range mechs {
		assert.Equal(t, m.p11, uint(m.ours), m.ours.String())
	}

	// CKM_AES_KEY_WRAP_KWP is missing from older bindings; it must follow
	// CKM_AES_KEY_WRAP_PAD.
	assert.Equal(t, uint(pkcs11.CKM_AES_KEY_WRAP_PAD)+1, uint(AESKeyWrapKWP))

	flags := []struct {
		ours Flags
		p11  uint
	}{
		{FlagEncrypt, pkcs11.CKF_ENCRYPT},
		{FlagDecrypt, pkcs11.CKF_DECRYPT},
		{FlagDigest, pkcs11.CKF_DIGEST},
		{FlagSign, pkcs11.CKF_SIGN},
		{FlagSignRecover, pkcs11.CKF_SIGN_RECOVER},
		{FlagVerify, pkcs11.CKF_VERIFY},
		{FlagVerifyRecover, pkcs11.CKF_VERIFY_RECOVER},
		{FlagGenerate, pkcs11.CKF_GENERATE},
		{FlagGenerateKeyPair, pkcs11.CKF_GENERATE_KEY_PAIR},
		{FlagWrap, pkcs11.CKF_WRAP},
		{FlagUnwrap, pkcs11.CKF_UNWRAP},
		{FlagDerive, pkcs11.CKF_DERIVE},
	}
	for _, f := range flags {
		assert.Equal(t, f.p11, uint(f.ours), f.ours.String())
	}
}
