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

package health

import (
	"context"
	"testing"

	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCheck(t *testing.T) {
	c := NewChecker()
	c.RegisterCheck("b", func(ctx context.Context) CheckResult { return CheckResult{Status: StatusHealthy} })
	c.RegisterCheck("a", func(ctx context.Context) CheckResult { return CheckResult{Status: StatusHealthy} })
	c.RegisterCheck("nil", nil)
	assert.Equal(t, []string{"a", "b"}, c.GetAllChecks())

	c.UnregisterCheck("a")
	assert.Equal(t, []string{"b"}, c.GetAllChecks())
}

func TestRun_OrderAndNames(t *testing.T) {
	c := NewChecker()
	c.RegisterCheck("zeta", func(ctx context.Context) CheckResult { return CheckResult{Status: StatusDegraded} })
	c.RegisterCheck("alpha", func(ctx context.Context) CheckResult { return CheckResult{Status: StatusHealthy} })

	results := c.Run(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, "alpha", results[0].Name)
	assert.Equal(t, "zeta", results[1].Name)
	assert.Equal(t, StatusDegraded, AggregateStatus(results))
	assert.False(t, c.IsHealthy(context.Background()))
}

func TestRun_Cancelled(t *testing.T) {
	c := NewChecker()
	called := false
	c.RegisterCheck("a", func(ctx context.Context) CheckResult {
		called = true
		return CheckResult{Status: StatusHealthy}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := c.Run(ctx)
	require.Len(t, results, 1)
	assert.False(t, called)
	assert.Equal(t, StatusUnhealthy, results[0].Status)
	assert.NotEmpty(t, results[0].Error)
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusHealthy},
		{"healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]CheckResult, len(tt.statuses))
			for i, s := range tt.statuses {
				results[i] = CheckResult{Status: s}
			}
			assert.Equal(t, tt.want, AggregateStatus(results))
		})
	}
}

func TestTableChecks_Default(t *testing.T) {
	c := NewChecker()
	RegisterTableChecks(c, algid.NewResolver(nil, nil))
	assert.Equal(t, []string{"key-usage", "oid-registry", "table", "x509"}, c.GetAllChecks())

	for _, r := range c.Run(context.Background()) {
		assert.Equal(t, StatusHealthy, r.Status, "%s: %s", r.Name, r.Error)
	}
	assert.True(t, c.IsHealthy(context.Background()))
}

func TestOIDRegistryCheck_Degraded(t *testing.T) {
	entries := algid.Default().Entries()
	entries[algorithm.SHA512].Identifier = algid.OID(oidtag.Tag(4000))
	table, err := algid.NewTable(entries)
	require.NoError(t, err)

	res := OIDRegistryCheck(algid.NewResolver(table, nil))(context.Background())
	assert.Equal(t, StatusDegraded, res.Status)
	assert.Contains(t, res.Error, "SHA-512")
}

func TestKeyUsageCheck_Custom(t *testing.T) {
	// A symmetric cipher rebound to an OID tag keeps its usage mask.
	entries := algid.Default().Entries()
	entries[algorithm.AESECB].Identifier = algid.OID(oidtag.AES128ECB)
	table, err := algid.NewTable(entries)
	require.NoError(t, err)

	r := algid.NewResolver(table, nil)
	assert.Equal(t, StatusHealthy, KeyUsageCheck(r)(context.Background()).Status)
	assert.Equal(t, StatusHealthy, TableCheck(r)(context.Background()).Status)
	assert.Equal(t, mechanism.Invalid, r.ResolveMechanismType(algorithm.AESECB))
}
