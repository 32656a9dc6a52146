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

package algorithm

import "errors"

var (
	// ErrUnknownAlgorithm is returned when a name does not match any algorithm.
	ErrUnknownAlgorithm = errors.New("algorithm: unknown algorithm")

	// ErrUnknownFamily is returned when a name does not match any family.
	ErrUnknownFamily = errors.New("algorithm: unknown family")
)
