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

package cli

import (
	"encoding/asn1"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <algorithm>...",
		Short: "Resolve algorithms to their mechanism or OID tag",
		Long: `Resolve one or more algorithm names. Names are case-insensitive and
accept common aliases such as "AES/KWP" or "HS256".`,
		Example: `  algid resolve AESKeyWrapKWP
  algid resolve SHA256withRSA ECDSA-SHA384 -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]algid.Resolution, 0, len(args))
			for _, name := range args {
				alg, err := algorithm.Parse(name)
				if err != nil {
					return err
				}
				res, ok := a.resolver.Describe(alg)
				if !ok {
					return fmt.Errorf("%w: %q", algorithm.ErrUnknownAlgorithm, name)
				}
				a.logger.Debug("resolved", "algorithm", res.Name, "space", res.Space)
				results = append(results, res)
			}
			return a.printer().PrintResolutions(results)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var family, space string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the algorithm table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := newListFilter(family, space)
			if err != nil {
				return err
			}

			var results []algid.Resolution
			for _, res := range a.resolver.DescribeAll() {
				if filter(res) {
					results = append(results, res)
				}
			}
			return a.printer().PrintResolutions(results)
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "only list algorithms of this family (e.g. cipher, signature, keywrap)")
	cmd.Flags().StringVar(&space, "space", "", "only list algorithms bound to this space (mechanism, oid)")
	return cmd
}

// newListFilter validates the list flags and returns the matching predicate
func newListFilter(family, space string) (func(algid.Resolution) bool, error) {
	var wantFamily algorithm.Family
	if family != "" {
		f, err := algorithm.ParseFamily(family)
		if err != nil {
			return nil, err
		}
		wantFamily = f
	}

	var wantSpace algid.Space
	switch strings.ToLower(space) {
	case "":
	case algid.SpaceMechanismType.String():
		wantSpace = algid.SpaceMechanismType
	case algid.SpaceOIDTag.String():
		wantSpace = algid.SpaceOIDTag
	default:
		return nil, fmt.Errorf("unknown space: %s (must be mechanism or oid)", space)
	}

	return func(r algid.Resolution) bool {
		if family != "" && r.Algorithm.Family() != wantFamily {
			return false
		}
		if wantSpace != 0 && r.Space != wantSpace.String() {
			return false
		}
		return true
	}, nil
}

func newUsageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "usage <algorithm>",
		Short: "Show the default key usage of a symmetric algorithm",
		Long: `Show the PKCS#11 usage flags a secret key created for the algorithm
carries by default. Non-symmetric algorithms have no usage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := algorithm.Parse(args[0])
			if err != nil {
				return err
			}
			return a.printer().PrintUsage(alg.String(), a.resolver.KeyUsage(alg))
		},
	}
}

func newOIDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "oid <dotted-oid | tag>",
		Short: "Look up an OID tag and the algorithms bound to it",
		Example: `  algid oid 1.2.840.113549.1.1.11
  algid oid 17`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := parseTag(args[0])
			if err != nil {
				return err
			}

			oid := ""
			if o, ok := tag.ObjectIdentifier(); ok {
				oid = o.String()
			}

			var names []string
			for _, alg := range a.resolver.Table().InSpace(algid.SpaceOIDTag) {
				if a.resolver.ResolveOIDTag(alg) == tag {
					names = append(names, alg.String())
				}
			}
			return a.printer().PrintOIDTag(oid, tag, names)
		},
	}
}

// parseTag accepts a dotted OID or a decimal tag number
func parseTag(s string) (oidtag.Tag, error) {
	if strings.Contains(s, ".") {
		tag := oidtag.Parse(s)
		if tag == oidtag.Unknown {
			return oidtag.Unknown, fmt.Errorf("unregistered oid: %s", s)
		}
		return tag, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return oidtag.Unknown, fmt.Errorf("invalid oid tag: %s", s)
	}
	tag := oidtag.Tag(v)
	if !tag.IsKnown() {
		return oidtag.Unknown, fmt.Errorf("unregistered oid tag: %d", v)
	}
	return tag, nil
}

func newDERCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "der <algorithm>",
		Short: "Print the DER encoded X.509 AlgorithmIdentifier of an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := algorithm.Parse(args[0])
			if err != nil {
				return err
			}
			ai, ok := a.resolver.AlgorithmIdentifier(alg)
			if !ok {
				return fmt.Errorf("%s has no object identifier", alg)
			}
			der, err := asn1.Marshal(ai)
			if err != nil {
				return fmt.Errorf("failed to encode AlgorithmIdentifier: %w", err)
			}
			return a.printer().PrintDER(alg.String(), der)
		},
	}
}
