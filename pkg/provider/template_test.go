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
	"testing"

	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/miekg/pkcs11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyType_CoversSymmetric(t *testing.T) {
	for _, alg := range algorithm.All() {
		_, ok := KeyType(alg)
		assert.Equal(t, alg.IsSymmetric(), ok, alg.String())
	}
}

func TestKeyGenMechanism(t *testing.T) {
	r := algid.NewResolver(nil, nil)
	for _, alg := range algorithm.ByFamily(algorithm.FamilySecretKeyGen) {
		gen, ok := KeyGenMechanism(alg)
		require.True(t, ok, alg.String())
		assert.Equal(t, r.ResolveMechanismType(alg), gen, alg.String())
	}

	gen, ok := KeyGenMechanism(algorithm.HMACSHA256)
	assert.True(t, ok)
	assert.Equal(t, mechanism.GenericSecretKeyGen, gen)

	_, ok = KeyGenMechanism(algorithm.SHA256WithRSA)
	assert.False(t, ok)
}

func TestSecretKeyTemplate(t *testing.T) {
	template, err := SecretKeyTemplate(algorithm.AES256CBC, "data")
	require.NoError(t, err)

	want := map[uint][]byte{
		pkcs11.CKA_CLASS:     pkcs11.NewAttribute(pkcs11.CKA_CLASS, pkcs11.CKO_SECRET_KEY).Value,
		pkcs11.CKA_KEY_TYPE:  pkcs11.NewAttribute(pkcs11.CKA_KEY_TYPE, pkcs11.CKK_AES).Value,
		pkcs11.CKA_LABEL:     []byte("data"),
		pkcs11.CKA_ID:        []byte("data"),
		pkcs11.CKA_ENCRYPT:   {1},
		pkcs11.CKA_DECRYPT:   {1},
		pkcs11.CKA_SIGN:      {0},
		pkcs11.CKA_WRAP:      {0},
		pkcs11.CKA_DERIVE:    {0},
		pkcs11.CKA_VALUE_LEN: pkcs11.NewAttribute(pkcs11.CKA_VALUE_LEN, 32).Value,
	}
	for typ, value := range want {
		assert.Equal(t, value, attr(t, template, typ), "attribute 0x%x", typ)
	}
}

func TestSecretKeyTemplate_Generic(t *testing.T) {
	template, err := SecretKeyTemplate(algorithm.GenericSecretKeyGen, "hkdf")
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, attr(t, template, pkcs11.CKA_SIGN))
	assert.Equal(t, []byte{1}, attr(t, template, pkcs11.CKA_DERIVE))
	assert.Equal(t, []byte{0}, attr(t, template, pkcs11.CKA_ENCRYPT))
	assert.Nil(t, attr(t, template, pkcs11.CKA_VALUE_LEN))
}

func TestSecretKeyTemplate_NotSymmetric(t *testing.T) {
	_, err := SecretKeyTemplate(algorithm.RSAKeyPairGen, "rsa")
	assert.ErrorIs(t, err, ErrNotSymmetric)

	_, err = SecretKeyTemplate(algorithm.Algorithm(9999), "bad")
	assert.ErrorIs(t, err, ErrNotSymmetric)
}

func TestKeyLength(t *testing.T) {
	tests := []struct {
		alg     algorithm.Algorithm
		size    int
		want    int
		withLen bool
	}{
		{algorithm.AESKeyGen, 0, 32, true},
		{algorithm.AESKeyWrap, 24, 24, true},
		{algorithm.AES192ECB, 0, 24, true},
		{algorithm.AES192ECB, 32, 24, true},
		{algorithm.HMACSHA512, 0, 32, true},
		{algorithm.RC4, 0, 16, true},
		{algorithm.DESKeyGen, 8, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			n, withLen, err := KeyLength(tt.alg, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.withLen, withLen)
			assert.Equal(t, tt.want, n)
		})
	}

	_, _, err := KeyLength(algorithm.SHA256, 0)
	assert.ErrorIs(t, err, ErrNotSymmetric)
	_, _, err = KeyLength(algorithm.AESKeyGen, -8)
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}
