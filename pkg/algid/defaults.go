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
	alg "github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
)

// defaultEntries is the built-in algorithm table, one row per vocabulary
// slot. Algorithms used inside certificate and PKCS#7 structures are bound
// to their OID tag; transforms driven directly on a token are bound to
// their mechanism.
func defaultEntries() []Entry {
	return []Entry{
		{alg.MD2WithRSA, OID(oidtag.PKCS1MD2WithRSAEncryption)},
		{alg.MD5WithRSA, OID(oidtag.PKCS1MD5WithRSAEncryption)},
		{alg.SHA1WithRSA, OID(oidtag.PKCS1SHA1WithRSAEncryption)},
		{alg.DSAWithSHA1, OID(oidtag.ANSIX9DSASignatureWithSHA1Digest)},
		{alg.RSASignature, OID(oidtag.PKCS1RSAEncryption)},
		{alg.RSAKeyPairGen, Mechanism(mechanism.RSAPKCSKeyPairGen)},
		{alg.DSAKeyPairGen, Mechanism(mechanism.DSAKeyPairGen)},
		{alg.DSASignature, OID(oidtag.ANSIX9DSASignature)},
		{alg.RC4, OID(oidtag.RC4)},
		{alg.DESECB, OID(oidtag.DESECB)},
		{alg.DESCBC, OID(oidtag.DESCBC)},
		{alg.DESCBCPad, Mechanism(mechanism.DESCBCPad)},
		{alg.DES3ECB, Mechanism(mechanism.DES3ECB)},
		{alg.DES3CBC, OID(oidtag.DESEDE3CBC)},
		{alg.DES3CBCPad, Mechanism(mechanism.DES3CBCPad)},
		{alg.DESKeyGen, Mechanism(mechanism.DESKeyGen)},
		{alg.DES3KeyGen, Mechanism(mechanism.DES3KeyGen)},
		{alg.RC4KeyGen, Mechanism(mechanism.RC4KeyGen)},
		{alg.PBEMD2DESCBC, OID(oidtag.PKCS5PBEWithMD2AndDESCBC)},
		{alg.PBEMD5DESCBC, OID(oidtag.PKCS5PBEWithMD5AndDESCBC)},
		{alg.PBESHA1DESCBC, OID(oidtag.PKCS5PBEWithSHA1AndDESCBC)},
		{alg.PBESHA1RC4128, OID(oidtag.PKCS12V2PBEWithSHA1And128BitRC4)},
		{alg.PBESHA1RC440, OID(oidtag.PKCS12V2PBEWithSHA1And40BitRC4)},
		{alg.PBESHA1DES3CBC, OID(oidtag.PKCS12V2PBEWithSHA1And3KeyTripleDES)},
		{alg.MD2, OID(oidtag.MD2)},
		{alg.MD5, OID(oidtag.MD5)},
		{alg.SHA1, OID(oidtag.SHA1)},
		{alg.HMACSHA1, Mechanism(mechanism.SHA1HMAC)},
		{alg.PBESHA1RC2128CBC, OID(oidtag.PKCS12V2PBEWithSHA1And128BitRC2CBC)},
		{alg.PBESHA1RC240CBC, OID(oidtag.PKCS12V2PBEWithSHA1And40BitRC2CBC)},
		{alg.RC2CBC, OID(oidtag.RC2CBC)},
		{alg.PBASHA1HMAC, Mechanism(mechanism.PBASHA1WithSHA1HMAC)},
		{alg.AESKeyGen, Mechanism(mechanism.AESKeyGen)},
		{alg.AESECB, Mechanism(mechanism.AESECB)},
		{alg.AESCBC, Mechanism(mechanism.AESCBC)},
		{alg.AESCBCPad, Mechanism(mechanism.AESCBCPad)},
		{alg.RC2CBCPad, Mechanism(mechanism.RC2CBCPad)},
		{alg.RC2KeyGen, Mechanism(mechanism.RC2KeyGen)},
		{alg.SHA256, OID(oidtag.SHA256)},
		{alg.SHA384, OID(oidtag.SHA384)},
		{alg.SHA512, OID(oidtag.SHA512)},
		{alg.SHA256WithRSA, OID(oidtag.PKCS1SHA256WithRSAEncryption)},
		{alg.SHA384WithRSA, OID(oidtag.PKCS1SHA384WithRSAEncryption)},
		{alg.SHA512WithRSA, OID(oidtag.PKCS1SHA512WithRSAEncryption)},
		{alg.ECSignature, OID(oidtag.ANSIX962ECPublicKey)},
		{alg.ECDSAWithSHA1, OID(oidtag.ANSIX962ECDSASHA1Signature)},
		{alg.ECKeyPairGen, Mechanism(mechanism.ECKeyPairGen)},
		{alg.ECDSAWithSHA256, OID(oidtag.ANSIX962ECDSASHA256Signature)},
		{alg.ECDSAWithSHA384, OID(oidtag.ANSIX962ECDSASHA384Signature)},
		{alg.ECDSAWithSHA512, OID(oidtag.ANSIX962ECDSASHA512Signature)},
		{alg.HMACSHA256, OID(oidtag.HMACSHA256)},
		{alg.HMACSHA384, OID(oidtag.HMACSHA384)},
		{alg.HMACSHA512, OID(oidtag.HMACSHA512)},
		{alg.PBKDF2, OID(oidtag.PKCS5PBKDF2)},
		{alg.PBES2, OID(oidtag.PKCS5PBES2)},
		{alg.PBMAC1, OID(oidtag.PKCS5PBMAC1)},
		{alg.ECDSASpecifiedDigest, OID(oidtag.ANSIX962ECDSASignatureSpecifiedDigest)},
		{alg.AESKeyWrap, Mechanism(mechanism.AESKeyWrap)},
		{alg.AESKeyWrapPad, Mechanism(mechanism.AESKeyWrapPad)},
		{alg.AES128ECB, OID(oidtag.AES128ECB)},
		{alg.AES128CBC, OID(oidtag.AES128CBC)},
		{alg.AES192ECB, OID(oidtag.AES192ECB)},
		{alg.AES192CBC, OID(oidtag.AES192CBC)},
		{alg.AES256ECB, OID(oidtag.AES256ECB)},
		{alg.AES256CBC, OID(oidtag.AES256CBC)},
		{alg.AESKeyWrapKWP, Mechanism(mechanism.AESKeyWrapKWP)},
		{alg.RSAPSS, OID(oidtag.PKCS1RSAPSSSignature)},
		{alg.RSAOAEP, Mechanism(mechanism.RSAPKCSOAEP)},
		{alg.AESCMAC, Mechanism(mechanism.AESCMAC)},
		{alg.GenericSecretKeyGen, Mechanism(mechanism.GenericSecretKeyGen)},
	}
}

const (
	usageCipher  = mechanism.FlagEncrypt | mechanism.FlagDecrypt
	usageMAC     = mechanism.FlagSign | mechanism.FlagVerify
	usageWrap    = mechanism.FlagWrap | mechanism.FlagUnwrap
	usageGeneric = mechanism.FlagSign | mechanism.FlagVerify | mechanism.FlagDerive
)

// defaultKeyUsage gives the canonical usage of every symmetric algorithm.
// Key generators take the usage of the cipher they produce keys for.
func defaultKeyUsage() []KeyUsageEntry {
	return []KeyUsageEntry{
		{alg.RC4, usageCipher},
		{alg.DESECB, usageCipher},
		{alg.DESCBC, usageCipher},
		{alg.DESCBCPad, usageCipher},
		{alg.DES3ECB, usageCipher},
		{alg.DES3CBC, usageCipher},
		{alg.DES3CBCPad, usageCipher},
		{alg.DESKeyGen, usageCipher},
		{alg.DES3KeyGen, usageCipher},
		{alg.RC4KeyGen, usageCipher},
		{alg.HMACSHA1, usageMAC},
		{alg.RC2CBC, usageCipher},
		{alg.AESKeyGen, usageCipher},
		{alg.AESECB, usageCipher},
		{alg.AESCBC, usageCipher},
		{alg.AESCBCPad, usageCipher},
		{alg.RC2CBCPad, usageCipher},
		{alg.RC2KeyGen, usageCipher},
		{alg.HMACSHA256, usageMAC},
		{alg.HMACSHA384, usageMAC},
		{alg.HMACSHA512, usageMAC},
		{alg.AESKeyWrap, usageWrap},
		{alg.AESKeyWrapPad, usageWrap},
		{alg.AES128ECB, usageCipher},
		{alg.AES128CBC, usageCipher},
		{alg.AES192ECB, usageCipher},
		{alg.AES192CBC, usageCipher},
		{alg.AES256ECB, usageCipher},
		{alg.AES256CBC, usageCipher},
		{alg.AESKeyWrapKWP, usageWrap},
		{alg.AESCMAC, usageMAC},
		{alg.GenericSecretKeyGen, usageGeneric},
	}
}
