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

package provider

import (
	"fmt"

	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/miekg/pkcs11"
)

// keyTypes maps every symmetric algorithm to the CKK_* type of the secret
// key it operates on.
var keyTypes = map[algorithm.Algorithm]uint{
	algorithm.RC4:                 pkcs11.CKK_RC4,
	algorithm.RC4KeyGen:           pkcs11.CKK_RC4,
	algorithm.DESECB:              pkcs11.CKK_DES,
	algorithm.DESCBC:              pkcs11.CKK_DES,
	algorithm.DESCBCPad:           pkcs11.CKK_DES,
	algorithm.DESKeyGen:           pkcs11.CKK_DES,
	algorithm.DES3ECB:             pkcs11.CKK_DES3,
	algorithm.DES3CBC:             pkcs11.CKK_DES3,
	algorithm.DES3CBCPad:          pkcs11.CKK_DES3,
	algorithm.DES3KeyGen:          pkcs11.CKK_DES3,
	algorithm.RC2CBC:              pkcs11.CKK_RC2,
	algorithm.RC2CBCPad:           pkcs11.CKK_RC2,
	algorithm.RC2KeyGen:           pkcs11.CKK_RC2,
	algorithm.AESKeyGen:           pkcs11.CKK_AES,
	algorithm.AESECB:              pkcs11.CKK_AES,
	algorithm.AESCBC:              pkcs11.CKK_AES,
	algorithm.AESCBCPad:           pkcs11.CKK_AES,
	algorithm.AES128ECB:           pkcs11.CKK_AES,
	algorithm.AES128CBC:           pkcs11.CKK_AES,
	algorithm.AES192ECB:           pkcs11.CKK_AES,
	algorithm.AES192CBC:           pkcs11.CKK_AES,
	algorithm.AES256ECB:           pkcs11.CKK_AES,
	algorithm.AES256CBC:           pkcs11.CKK_AES,
	algorithm.AESKeyWrap:          pkcs11.CKK_AES,
	algorithm.AESKeyWrapPad:       pkcs11.CKK_AES,
	algorithm.AESKeyWrapKWP:       pkcs11.CKK_AES,
	algorithm.AESCMAC:             pkcs11.CKK_AES,
	algorithm.HMACSHA1:            pkcs11.CKK_GENERIC_SECRET,
	algorithm.HMACSHA256:          pkcs11.CKK_GENERIC_SECRET,
	algorithm.HMACSHA384:          pkcs11.CKK_GENERIC_SECRET,
	algorithm.HMACSHA512:          pkcs11.CKK_GENERIC_SECRET,
	algorithm.GenericSecretKeyGen: pkcs11.CKK_GENERIC_SECRET,
}

// keyGenMechanisms maps a key type to the mechanism that generates it.
var keyGenMechanisms = map[uint]mechanism.Type{
	pkcs11.CKK_RC4:            mechanism.RC4KeyGen,
	pkcs11.CKK_DES:            mechanism.DESKeyGen,
	pkcs11.CKK_DES3:           mechanism.DES3KeyGen,
	pkcs11.CKK_RC2:            mechanism.RC2KeyGen,
	pkcs11.CKK_AES:            mechanism.AESKeyGen,
	pkcs11.CKK_GENERIC_SECRET: mechanism.GenericSecretKeyGen,
}

// valueLengths holds the key size in bytes of algorithms that fix it.
var valueLengths = map[algorithm.Algorithm]int{
	algorithm.AES128ECB: 16,
	algorithm.AES128CBC: 16,
	algorithm.AES192ECB: 24,
	algorithm.AES192CBC: 24,
	algorithm.AES256ECB: 32,
	algorithm.AES256CBC: 32,
}

// defaultValueLengths holds the key size in bytes generated for variable
// length key types when the caller does not choose one.
var defaultValueLengths = map[uint]int{
	pkcs11.CKK_AES:            32,
	pkcs11.CKK_GENERIC_SECRET: 32,
	pkcs11.CKK_RC2:            16,
	pkcs11.CKK_RC4:            16,
}

// usageAttributes pairs each usage bit with the key attribute it enables.
var usageAttributes = []struct {
	flag mechanism.Flags
	attr uint
}{
	{mechanism.FlagEncrypt, pkcs11.CKA_ENCRYPT},
	{mechanism.FlagDecrypt, pkcs11.CKA_DECRYPT},
	{mechanism.FlagSign, pkcs11.CKA_SIGN},
	{mechanism.FlagVerify, pkcs11.CKA_VERIFY},
	{mechanism.FlagWrap, pkcs11.CKA_WRAP},
	{mechanism.FlagUnwrap, pkcs11.CKA_UNWRAP},
	{mechanism.FlagDerive, pkcs11.CKA_DERIVE},
}

// KeyType returns the CKK_* key type used by a symmetric algorithm.
func KeyType(alg algorithm.Algorithm) (uint, bool) {
	kt, ok := keyTypes[alg]
	return kt, ok
}

// KeyGenMechanism returns the mechanism that generates keys for alg.
func KeyGenMechanism(alg algorithm.Algorithm) (mechanism.Type, bool) {
	kt, ok := keyTypes[alg]
	if !ok {
		return mechanism.Invalid, false
	}
	return keyGenMechanisms[kt], true
}

// KeyLength returns the CKA_VALUE_LEN to generate for alg given the
// requested size in bytes. Fixed length algorithms ignore size. Zero selects
// the key type's default. It reports false for key types whose length is
// implied by the type, such as DES and DES3.
func KeyLength(alg algorithm.Algorithm, size int) (int, bool, error) {
	if size < 0 {
		return 0, false, fmt.Errorf("%w: %d", ErrInvalidKeySize, size)
	}
	if n, ok := valueLengths[alg]; ok {
		return n, true, nil
	}
	kt, ok := keyTypes[alg]
	if !ok {
		return 0, false, fmt.Errorf("%w: %s", ErrNotSymmetric, alg)
	}
	def, variable := defaultValueLengths[kt]
	if !variable {
		return 0, false, nil
	}
	if size == 0 {
		size = def
	}
	return size, true, nil
}

// SecretKeyTemplate builds the attribute template for a persistent secret
// key usable with alg, using the built-in key usage table.
func SecretKeyTemplate(alg algorithm.Algorithm, label string) ([]*pkcs11.Attribute, error) {
	return secretKeyTemplate(algid.NewResolver(nil, nil), alg, label)
}

func secretKeyTemplate(r *algid.Resolver, alg algorithm.Algorithm, label string) ([]*pkcs11.Attribute, error) {
	kt, ok := keyTypes[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotSymmetric, alg)
	}
	usage := r.KeyUsage(alg)

	template := []*pkcs11.Attribute{
		pkcs11.NewAttribute(pkcs11.CKA_CLASS, pkcs11.CKO_SECRET_KEY),
		pkcs11.NewAttribute(pkcs11.CKA_KEY_TYPE, kt),
		pkcs11.NewAttribute(pkcs11.CKA_TOKEN, true),
		pkcs11.NewAttribute(pkcs11.CKA_PRIVATE, true),
		pkcs11.NewAttribute(pkcs11.CKA_SENSITIVE, true),
		pkcs11.NewAttribute(pkcs11.CKA_EXTRACTABLE, false),
		pkcs11.NewAttribute(pkcs11.CKA_LABEL, label),
		pkcs11.NewAttribute(pkcs11.CKA_ID, []byte(label)),
	}
	for _, ua := range usageAttributes {
		template = append(template, pkcs11.NewAttribute(ua.attr, usage&ua.flag != 0))
	}
	if n, ok := valueLengths[alg]; ok {
		template = append(template, pkcs11.NewAttribute(pkcs11.CKA_VALUE_LEN, n))
	}
	return template, nil
}
