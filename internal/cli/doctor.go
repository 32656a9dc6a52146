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
	"errors"

	"github.com/jeremyhahn/go-algid/pkg/health"
	"github.com/spf13/cobra"
)

// ErrUnhealthy is returned by doctor when a check fails.
var ErrUnhealthy = errors.New("algorithm tables failed consistency checks")

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run consistency checks over the active tables",
		Long: `Run consistency checks over the algorithm and key usage tables in
effect, including any configured overrides. Exits non-zero when a check
is unhealthy. Degraded checks are reported but do not fail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := health.NewChecker()
			health.RegisterTableChecks(checker, a.resolver.Resolver)

			results := checker.Run(cmd.Context())
			status := health.AggregateStatus(results)
			for _, r := range results {
				a.logger.Debug("check", "name", r.Name, "status", r.Status, "latency", r.Latency)
			}
			if err := a.printer().PrintChecks(status, results); err != nil {
				return err
			}
			if status == health.StatusUnhealthy {
				return ErrUnhealthy
			}
			return nil
		},
	}
}
