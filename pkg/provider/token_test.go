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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/provider/mocks"
	"github.com/miekg/pkcs11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockToken(t *testing.T) (*Token, *mocks.MockContext) {
	t.Helper()
	mock := mocks.NewMockContext()
	mock.AddToken(0, "algid")
	mock.AddMechanism(0, pkcs11.CKM_AES_KEY_GEN, pkcs11.MechanismInfo{MinKeySize: 16, MaxKeySize: 32, Flags: pkcs11.CKF_GENERATE})
	mock.AddMechanism(0, pkcs11.CKM_AES_CBC_PAD, pkcs11.MechanismInfo{Flags: pkcs11.CKF_ENCRYPT | pkcs11.CKF_DECRYPT})
	// ECB is advertised for encryption only
	mock.AddMechanism(0, pkcs11.CKM_AES_ECB, pkcs11.MechanismInfo{Flags: pkcs11.CKF_ENCRYPT})
	mock.AddMechanism(0, pkcs11.CKM_AES_KEY_WRAP_PAD, pkcs11.MechanismInfo{Flags: pkcs11.CKF_WRAP | pkcs11.CKF_UNWRAP})
	mock.AddMechanism(0, pkcs11.CKM_RSA_PKCS_KEY_PAIR_GEN, pkcs11.MechanismInfo{Flags: pkcs11.CKF_GENERATE_KEY_PAIR})
	return NewToken(mock, 0), mock
}

func TestConfig_Validate(t *testing.T) {
	lib := filepath.Join(t.TempDir(), "libsofthsm2.so")
	require.NoError(t, os.WriteFile(lib, []byte{}, 0o600))
	slot := 1
	negative := -1

	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{"nil", nil, ErrInvalidConfig},
		{"no library", &Config{TokenLabel: "a"}, ErrInvalidConfig},
		{"missing library", &Config{Library: lib + ".missing", TokenLabel: "a"}, ErrLibraryNotFound},
		{"no token", &Config{Library: lib}, ErrInvalidConfig},
		{"negative slot", &Config{Library: lib, Slot: &negative}, ErrInvalidConfig},
		{"short pin", &Config{Library: lib, TokenLabel: "a", PIN: "12"}, ErrInvalidPINLength},
		{"label", &Config{Library: lib, TokenLabel: "a", PIN: "1234"}, nil},
		{"slot", &Config{Library: lib, Slot: &slot}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFindSlot(t *testing.T) {
	mock := mocks.NewMockContext()
	mock.AddToken(0, "other")
	mock.AddToken(3, "algid   ")

	slot, err := findSlot(mock, &Config{TokenLabel: "algid"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), slot)

	_, err = findSlot(mock, &Config{TokenLabel: "missing"})
	assert.ErrorIs(t, err, ErrTokenNotFound)

	fixed := 7
	slot, err = findSlot(mock, &Config{Slot: &fixed})
	require.NoError(t, err)
	assert.Equal(t, uint(7), slot)

	mock.SlotListErr = errors.New("device removed")
	_, err = findSlot(mock, &Config{TokenLabel: "algid"})
	assert.Error(t, err)
}

func TestToken_Mechanisms(t *testing.T) {
	tok, _ := newMockToken(t)

	mechs, err := tok.Mechanisms()
	require.NoError(t, err)
	assert.Equal(t, []mechanism.Type{
		mechanism.RSAPKCSKeyPairGen,
		mechanism.AESKeyGen,
		mechanism.AESECB,
		mechanism.AESCBCPad,
		mechanism.AESKeyWrapPad,
	}, mechs)
}

func TestToken_Supports(t *testing.T) {
	tok, _ := newMockToken(t)

	tests := []struct {
		alg  algorithm.Algorithm
		want bool
	}{
		{algorithm.AESKeyGen, true},
		{algorithm.AESCBCPad, true},
		{algorithm.AESKeyWrapPad, true},
		{algorithm.RSAKeyPairGen, true},
		// advertised without decrypt
		{algorithm.AESECB, false},
		// not on the token
		{algorithm.AESKeyWrapKWP, false},
		{algorithm.DES3CBCPad, false},
		// OID bound, no mechanism
		{algorithm.SHA256WithRSA, false},
		{algorithm.Algorithm(9999), false},
	}

	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			ok, err := tok.Supports(tt.alg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestToken_Check(t *testing.T) {
	tok, _ := newMockToken(t)

	c, err := tok.Check(algorithm.AESKeyGen)
	require.NoError(t, err)
	assert.True(t, c.Supported)
	assert.Equal(t, mechanism.AESKeyGen, c.Mechanism)
	assert.Equal(t, mechanism.FlagGenerate, c.Required)
	assert.Equal(t, uint(16), c.MinKeySize)
	assert.Equal(t, uint(32), c.MaxKeySize)

	_, err = tok.Check(algorithm.SHA256)
	assert.ErrorIs(t, err, ErrNoMechanism)
}

func TestToken_CheckError(t *testing.T) {
	tok, mock := newMockToken(t)
	mock.MechanismInfoFunc = func(slot, mech uint) (pkcs11.MechanismInfo, error) {
		return pkcs11.MechanismInfo{}, pkcs11.Error(pkcs11.CKR_DEVICE_ERROR)
	}

	ok, err := tok.Supports(algorithm.AESCBCPad)
	assert.False(t, ok)
	assert.Error(t, err)

	_, err = tok.CheckAll()
	assert.Error(t, err)
}

func TestToken_CheckAll(t *testing.T) {
	tok, _ := newMockToken(t)

	caps, err := tok.CheckAll()
	require.NoError(t, err)
	assert.Len(t, caps, len(algid.Default().InSpace(algid.SpaceMechanismType)))

	supported := 0
	for _, c := range caps {
		if c.Supported {
			supported++
		}
	}
	assert.Equal(t, 4, supported)
}

func TestToken_RequiredFlags(t *testing.T) {
	tok, _ := newMockToken(t)
	assert.Equal(t, mechanism.FlagGenerate, tok.RequiredFlags(algorithm.GenericSecretKeyGen))
	assert.Equal(t, mechanism.FlagGenerate, tok.RequiredFlags(algorithm.PBASHA1HMAC))
	assert.Equal(t, mechanism.FlagGenerateKeyPair, tok.RequiredFlags(algorithm.ECKeyPairGen))
	assert.Equal(t, mechanism.FlagEncrypt|mechanism.FlagDecrypt, tok.RequiredFlags(algorithm.RSAOAEP))
	assert.Equal(t, mechanism.FlagSign|mechanism.FlagVerify, tok.RequiredFlags(algorithm.AESCMAC))
	assert.Equal(t, mechanism.FlagWrap|mechanism.FlagUnwrap, tok.RequiredFlags(algorithm.AESKeyWrap))
}

func TestToken_GenerateSecretKey(t *testing.T) {
	mock := mocks.NewMockContext()
	mock.AddToken(0, "algid")
	tok := NewToken(mock, 0, WithPIN("1234"))

	h, err := tok.GenerateSecretKey(algorithm.AESKeyWrapKWP, "kek", 32)
	require.NoError(t, err)
	assert.NotZero(t, h)

	require.Len(t, mock.GenerateKeyCalls, 1)
	call := mock.GenerateKeyCalls[0]
	assert.Equal(t, uint(pkcs11.CKM_AES_KEY_GEN), call.Mechanism)
	assert.Equal(t, []byte{1}, attr(t, call.Template, pkcs11.CKA_WRAP))
	assert.Equal(t, []byte{0}, attr(t, call.Template, pkcs11.CKA_ENCRYPT))
	assert.NotNil(t, attr(t, call.Template, pkcs11.CKA_VALUE_LEN))
	assert.Equal(t, 1, mock.Logins)
	assert.Equal(t, 0, mock.Sessions)

	_, err = tok.GenerateSecretKey(algorithm.ECDSAWithSHA256, "ec", 0)
	assert.ErrorIs(t, err, ErrNotSymmetric)
}

func TestToken_GenerateSecretKeyDefaultLength(t *testing.T) {
	tests := []struct {
		alg  algorithm.Algorithm
		size int
		want []byte
	}{
		{algorithm.AESKeyGen, 0, pkcs11.NewAttribute(pkcs11.CKA_VALUE_LEN, 32).Value},
		{algorithm.AESKeyGen, 16, pkcs11.NewAttribute(pkcs11.CKA_VALUE_LEN, 16).Value},
		{algorithm.GenericSecretKeyGen, 0, pkcs11.NewAttribute(pkcs11.CKA_VALUE_LEN, 32).Value},
		{algorithm.RC4KeyGen, 0, pkcs11.NewAttribute(pkcs11.CKA_VALUE_LEN, 16).Value},
		{algorithm.RC2KeyGen, 0, pkcs11.NewAttribute(pkcs11.CKA_VALUE_LEN, 16).Value},
		{algorithm.AES128CBC, 64, pkcs11.NewAttribute(pkcs11.CKA_VALUE_LEN, 16).Value},
		{algorithm.DES3KeyGen, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			mock := mocks.NewMockContext()
			mock.AddToken(0, "algid")
			tok := NewToken(mock, 0, WithPIN("1234"))

			_, err := tok.GenerateSecretKey(tt.alg, "k", tt.size)
			require.NoError(t, err)
			require.Len(t, mock.GenerateKeyCalls, 1)

			template := mock.GenerateKeyCalls[0].Template
			assert.Equal(t, tt.want, attr(t, template, pkcs11.CKA_VALUE_LEN))
			count := 0
			for _, a := range template {
				if a.Type == pkcs11.CKA_VALUE_LEN {
					count++
				}
			}
			assert.LessOrEqual(t, count, 1)
		})
	}
}

func TestToken_GenerateSecretKeyNegativeSize(t *testing.T) {
	mock := mocks.NewMockContext()
	mock.AddToken(0, "algid")
	tok := NewToken(mock, 0)

	_, err := tok.GenerateSecretKey(algorithm.AESKeyGen, "k", -1)
	assert.ErrorIs(t, err, ErrInvalidKeySize)
	assert.Empty(t, mock.GenerateKeyCalls)
}

func TestToken_GenerateSecretKeyLoginFailure(t *testing.T) {
	mock := mocks.NewMockContext()
	mock.AddToken(0, "algid")
	mock.LoginErr = pkcs11.Error(pkcs11.CKR_PIN_INCORRECT)
	tok := NewToken(mock, 0, WithPIN("0000"))

	_, err := tok.GenerateSecretKey(algorithm.AESKeyGen, "k", 16)
	assert.Error(t, err)
	assert.Empty(t, mock.GenerateKeyCalls)

	mock.LoginErr = pkcs11.Error(pkcs11.CKR_USER_ALREADY_LOGGED_IN)
	_, err = tok.GenerateSecretKey(algorithm.AESKeyGen, "k", 16)
	assert.NoError(t, err)
}

func TestToken_Close(t *testing.T) {
	tok, mock := newMockToken(t)
	require.NoError(t, tok.Close())
	require.NoError(t, tok.Close())

	// injected contexts stay with the caller
	assert.False(t, mock.Finalized)
	assert.False(t, mock.Destroyed)

	_, err := tok.Mechanisms()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = tok.Supports(algorithm.AESKeyGen)
	assert.ErrorIs(t, err, ErrClosed)

	owned := NewToken(mock, 0)
	owned.owned = true
	require.NoError(t, owned.Close())
	assert.True(t, mock.Finalized)
	assert.True(t, mock.Destroyed)
}

func TestWithResolver(t *testing.T) {
	entries := algid.Default().Entries()
	for i := range entries {
		if entries[i].Algorithm == algorithm.AESECB {
			entries[i].Identifier = algid.Mechanism(mechanism.AESCBCPad)
		}
	}
	table, err := algid.NewTable(entries)
	require.NoError(t, err)

	mock := mocks.NewMockContext()
	mock.AddToken(0, "algid")
	mock.AddMechanism(0, pkcs11.CKM_AES_CBC_PAD, pkcs11.MechanismInfo{Flags: pkcs11.CKF_ENCRYPT | pkcs11.CKF_DECRYPT})

	tok := NewToken(mock, 0, WithResolver(algid.NewResolver(table, nil)), WithResolver(nil))
	ok, err := tok.Supports(algorithm.AESECB)
	require.NoError(t, err)
	assert.True(t, ok)
}

func attr(t *testing.T, template []*pkcs11.Attribute, typ uint) []byte {
	t.Helper()
	for _, a := range template {
		if a.Type == typ {
			return a.Value
		}
	}
	return nil
}
