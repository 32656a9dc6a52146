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

package cli

import (
	"testing"

	"github.com/jeremyhahn/go-algid/pkg/provider"
	"github.com/jeremyhahn/go-algid/pkg/provider/mocks"
	"github.com/miekg/pkcs11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMockToken(t *testing.T) *mocks.MockContext {
	t.Helper()
	mock := mocks.NewMockContext()
	mock.AddToken(0, "algid")
	mock.AddMechanism(0, pkcs11.CKM_AES_KEY_GEN, pkcs11.MechanismInfo{Flags: pkcs11.CKF_GENERATE})
	mock.AddMechanism(0, pkcs11.CKM_AES_CBC_PAD, pkcs11.MechanismInfo{Flags: pkcs11.CKF_ENCRYPT})

	orig := openToken
	openToken = func(a *app) (*provider.Token, error) {
		return provider.NewToken(mock, 0, provider.WithResolver(a.resolver.Resolver)), nil
	}
	t.Cleanup(func() { openToken = orig })
	return mock
}

func TestTokenMechanisms(t *testing.T) {
	withMockToken(t)

	out, _, err := run(t, "token", "mechanisms")
	require.NoError(t, err)
	assert.Contains(t, out, "0x00001080 CKM_AES_KEY_GEN")
	assert.Contains(t, out, "0x00001085 CKM_AES_CBC_PAD")
}

func TestTokenCheck(t *testing.T) {
	withMockToken(t)

	out, _, err := run(t, "token", "check", "AESKeyGen", "AES/CBC/PKCS5Padding", "AES/KWP")
	require.NoError(t, err)
	assert.Regexp(t, `AESKeyGen\s+CKM_AES_KEY_GEN\s+true`, out)
	assert.Regexp(t, `AES/CBC/PKCS5Padding\s+CKM_AES_CBC_PAD\s+false\s+CKF_DECRYPT`, out)
	assert.Regexp(t, `AESKeyWrapKWP\s+CKM_AES_KEY_WRAP_KWP\s+false`, out)

	_, _, err = run(t, "token", "check", "SHA-256")
	assert.ErrorIs(t, err, provider.ErrNoMechanism)
}

func TestTokenCheckAll(t *testing.T) {
	withMockToken(t)

	out, _, err := run(t, "token", "check", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"capabilities"`)
	assert.Contains(t, out, `"supported": true`)
}
