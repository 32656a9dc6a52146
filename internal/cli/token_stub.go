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

//go:build !pkcs11

package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func init() {
	registerCommand(newTokenCmd)
}

func newTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Query a PKCS#11 token (not compiled)",
		Long:  `PKCS#11 support is not compiled in. Build with -tags pkcs11 to enable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("PKCS#11 support not compiled in, rebuild with: go build -tags pkcs11")
		},
	}
}
