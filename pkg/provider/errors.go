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

import "errors"

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("pkcs11: invalid configuration")

	// ErrLibraryNotFound is returned when the PKCS#11 library cannot be found.
	ErrLibraryNotFound = errors.New("pkcs11: library not found")

	// ErrInvalidPINLength is returned when the user PIN is too short.
	// PKCS#11 typically requires PINs to be at least 4 characters.
	ErrInvalidPINLength = errors.New("pkcs11: invalid pin length, must be at least 4 characters")

	// ErrTokenNotFound is returned when no slot holds the configured token.
	ErrTokenNotFound = errors.New("pkcs11: token not found")

	// ErrNotSymmetric is returned when a secret key is requested for an
	// algorithm outside the symmetric subset.
	ErrNotSymmetric = errors.New("pkcs11: algorithm is not symmetric")

	// ErrInvalidKeySize is returned when a negative key length is requested.
	ErrInvalidKeySize = errors.New("pkcs11: invalid key size")

	// ErrNoMechanism is returned when an algorithm has no mechanism binding.
	ErrNoMechanism = errors.New("pkcs11: algorithm has no mechanism")

	// ErrClosed is returned by operations on a closed token.
	ErrClosed = errors.New("pkcs11: token closed")
)
