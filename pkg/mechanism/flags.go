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

package mechanism

import "strings"

// Flags is a PKCS#11 usage bit-mask (CK_FLAGS). The same bits describe the
// operations a mechanism supports (CK_MECHANISM_INFO.flags) and the
// operations a key object is created for.
type Flags uint

const (
	FlagEncrypt         Flags = 0x00000100
	FlagDecrypt         Flags = 0x00000200
	FlagDigest          Flags = 0x00000400
	FlagSign            Flags = 0x00000800
	FlagSignRecover     Flags = 0x00001000
	FlagVerify          Flags = 0x00002000
	FlagVerifyRecover   Flags = 0x00004000
	FlagGenerate        Flags = 0x00008000
	FlagGenerateKeyPair Flags = 0x00010000
	FlagWrap            Flags = 0x00020000
	FlagUnwrap          Flags = 0x00040000
	FlagDerive          Flags = 0x00080000
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagEncrypt, "CKF_ENCRYPT"},
	{FlagDecrypt, "CKF_DECRYPT"},
	{FlagDigest, "CKF_DIGEST"},
	{FlagSign, "CKF_SIGN"},
	{FlagSignRecover, "CKF_SIGN_RECOVER"},
	{FlagVerify, "CKF_VERIFY"},
	{FlagVerifyRecover, "CKF_VERIFY_RECOVER"},
	{FlagGenerate, "CKF_GENERATE"},
	{FlagGenerateKeyPair, "CKF_GENERATE_KEY_PAIR"},
	{FlagWrap, "CKF_WRAP"},
	{FlagUnwrap, "CKF_UNWRAP"},
	{FlagDerive, "CKF_DERIVE"},
}

// Has reports whether every bit of want is set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// Names returns the CKF_* names of the bits set in f, in bit order.
func (f Flags) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			out = append(out, fn.name)
		}
	}
	return out
}

// String joins Names with "|". A zero mask is rendered as "0".
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	return strings.Join(f.Names(), "|")
}
