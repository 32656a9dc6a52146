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
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/provider"
	"github.com/spf13/cobra"
)

func init() {
	registerCommand(newTokenCmd)
}

// openToken is replaced in tests
var openToken = func(a *app) (*provider.Token, error) {
	cfg := &provider.Config{
		Library:    a.cfg.PKCS11.Library,
		TokenLabel: a.cfg.PKCS11.TokenLabel,
		Slot:       a.cfg.PKCS11.Slot,
		PIN:        a.cfg.PKCS11.PIN,
	}
	return provider.Open(cfg, provider.WithResolver(a.resolver.Resolver))
}

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Query a PKCS#11 token for algorithm support",
		Long: `Query the PKCS#11 token named by the pkcs11 section of the config
file, or by PKCS11_LIBRARY and PKCS11_TOKEN_LABEL.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "mechanisms",
		Short: "List the mechanisms the token implements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := openToken(a)
			if err != nil {
				return err
			}
			defer tok.Close()

			mechs, err := tok.Mechanisms()
			if err != nil {
				return err
			}
			a.logger.Debug("listed mechanisms", "slot", tok.Slot(), "count", len(mechs))

			p := a.printer()
			if p.format == OutputFormatJSON {
				out := make([]map[string]interface{}, len(mechs))
				for i, m := range mechs {
					out[i] = map[string]interface{}{"mechanism": uint(m), "name": m.String()}
				}
				return p.printJSON(map[string]interface{}{"slot": tok.Slot(), "mechanisms": out})
			}
			fmt.Fprintf(a.out, "Slot %d mechanisms:\n", tok.Slot())
			for _, m := range mechs {
				fmt.Fprintf(a.out, "  0x%08x %s\n", uint(m), m)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check [algorithm]...",
		Short: "Check whether the token supports algorithms",
		Long: `Check each named algorithm, or every mechanism-bound algorithm when
none is given, against the flags the token reports for its mechanism.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := openToken(a)
			if err != nil {
				return err
			}
			defer tok.Close()

			var caps []provider.Capability
			if len(args) == 0 {
				caps, err = tok.CheckAll()
				if err != nil {
					return err
				}
			}
			for _, name := range args {
				alg, err := algorithm.Parse(name)
				if err != nil {
					return err
				}
				c, err := tok.Check(alg)
				if err != nil {
					return err
				}
				caps = append(caps, c)
			}
			return printCapabilities(a, caps)
		},
	})

	return cmd
}

func printCapabilities(a *app, caps []provider.Capability) error {
	p := a.printer()
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{"capabilities": caps})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintf(a.out, "%-24s %-28s %-9s %s\n", "ALGORITHM", "MECHANISM", "SUPPORTED", "MISSING")
		fmt.Fprintln(a.out, strings.Repeat("-", 80))
		for _, c := range caps {
			missing := "-"
			if !c.Supported {
				missing = (c.Required &^ c.Flags).String()
			}
			fmt.Fprintf(a.out, "%-24s %-28s %-9t %s\n", c.Name, c.Mechanism, c.Supported, missing)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}
