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

// Package health runs consistency checks over the active algorithm tables
// and reports an aggregate status.
package health

import (
	"context"
	"encoding/asn1"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/oidtag"
)

// Status represents the health status of a component.
type Status string

const (
	// StatusHealthy indicates the check found no problem.
	StatusHealthy Status = "healthy"
	// StatusUnhealthy indicates the check found a broken invariant.
	StatusUnhealthy Status = "unhealthy"
	// StatusDegraded indicates the tables are usable but incomplete.
	StatusDegraded Status = "degraded"
)

// CheckResult represents the result of a single health check.
type CheckResult struct {
	// Name is the identifier for this health check.
	Name string `json:"name"`
	// Status is the health status of the component.
	Status Status `json:"status"`
	// Message provides additional context about the status.
	Message string `json:"message,omitempty"`
	// Latency is how long the check took to execute.
	Latency time.Duration `json:"latency"`
	// Error contains error details if the check failed.
	Error string `json:"error,omitempty"`
}

// CheckFunc is a function that performs a health check.
type CheckFunc func(ctx context.Context) CheckResult

// Checker manages a named set of checks.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
}

// NewChecker creates a new health checker.
func NewChecker() *Checker {
	return &Checker{
		checks: make(map[string]CheckFunc),
	}
}

// RegisterCheck adds a health check with the given name.
// If a check with this name already exists, it will be replaced.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	if check == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// UnregisterCheck removes a health check.
func (c *Checker) UnregisterCheck(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.checks, name)
}

// GetAllChecks returns the names of all registered checks in sorted order.
func (c *Checker) GetAllChecks() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes every registered check in name order. A cancelled context
// marks the remaining checks unhealthy without running them.
func (c *Checker) Run(ctx context.Context) []CheckResult {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]CheckResult, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			results = append(results, CheckResult{Name: name, Status: StatusUnhealthy, Error: err.Error()})
			continue
		}
		start := time.Now()
		res := checks[name](ctx)
		res.Latency = time.Since(start)
		// Ensure name is set even if check doesn't set it
		if res.Name == "" {
			res.Name = name
		}
		results = append(results, res)
	}
	return results
}

// IsHealthy returns true if all checks pass.
func (c *Checker) IsHealthy(ctx context.Context) bool {
	return AggregateStatus(c.Run(ctx)) == StatusHealthy
}

// AggregateStatus returns the overall status based on check results.
// - If all checks are healthy, returns StatusHealthy
// - If any check is unhealthy, returns StatusUnhealthy
// - If any check is degraded (and none unhealthy), returns StatusDegraded
func AggregateStatus(results []CheckResult) Status {
	hasUnhealthy := false
	hasDegraded := false

	for _, result := range results {
		switch result.Status {
		case StatusUnhealthy:
			hasUnhealthy = true
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return StatusUnhealthy
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// RegisterTableChecks registers the built-in consistency checks for r.
func RegisterTableChecks(c *Checker, r *algid.Resolver) {
	c.RegisterCheck("table", TableCheck(r))
	c.RegisterCheck("oid-registry", OIDRegistryCheck(r))
	c.RegisterCheck("key-usage", KeyUsageCheck(r))
	c.RegisterCheck("x509", X509Check(r))
}

func result(name string, failures []string, message string) CheckResult {
	if len(failures) == 0 {
		return CheckResult{Name: name, Status: StatusHealthy, Message: message}
	}
	return CheckResult{
		Name:    name,
		Status:  StatusUnhealthy,
		Message: fmt.Sprintf("%d problem(s)", len(failures)),
		Error:   fmt.Sprintf("%v", failures),
	}
}

// TableCheck verifies that every slot resolves in exactly one space.
func TableCheck(r *algid.Resolver) CheckFunc {
	return func(ctx context.Context) CheckResult {
		var failures []string
		for _, alg := range algorithm.All() {
			hasMech := r.ResolveMechanismType(alg) != mechanism.Invalid
			hasTag := r.ResolveOIDTag(alg) != oidtag.Unknown
			if hasMech == hasTag {
				failures = append(failures, alg.String())
			}
		}
		return result("table", failures, fmt.Sprintf("%d slots resolve in exactly one space", algorithm.Count))
	}
}

// OIDRegistryCheck verifies that every OID tag in the table names a
// registered object identifier. Unregistered tags still resolve, so they
// degrade rather than fail.
func OIDRegistryCheck(r *algid.Resolver) CheckFunc {
	return func(ctx context.Context) CheckResult {
		var missing []string
		algs := r.Table().InSpace(algid.SpaceOIDTag)
		for _, alg := range algs {
			if !r.ResolveOIDTag(alg).IsKnown() {
				missing = append(missing, alg.String())
			}
		}
		if len(missing) > 0 {
			return CheckResult{
				Name:    "oid-registry",
				Status:  StatusDegraded,
				Message: fmt.Sprintf("%d tag(s) without an object identifier", len(missing)),
				Error:   fmt.Sprintf("%v", missing),
			}
		}
		return CheckResult{
			Name:    "oid-registry",
			Status:  StatusHealthy,
			Message: fmt.Sprintf("%d OID tags registered", len(algs)),
		}
	}
}

// KeyUsageCheck verifies that symmetric algorithms, and only those, carry
// a key usage mask.
func KeyUsageCheck(r *algid.Resolver) CheckFunc {
	return func(ctx context.Context) CheckResult {
		var failures []string
		for _, alg := range algorithm.All() {
			if (r.KeyUsage(alg) != 0) != alg.IsSymmetric() {
				failures = append(failures, alg.String())
			}
		}
		return result("key-usage", failures, "key usage masks match the symmetric subset")
	}
}

// X509Check verifies that every registered OID tag encodes as a DER
// AlgorithmIdentifier.
func X509Check(r *algid.Resolver) CheckFunc {
	return func(ctx context.Context) CheckResult {
		var failures []string
		for _, alg := range r.Table().InSpace(algid.SpaceOIDTag) {
			ai, ok := r.AlgorithmIdentifier(alg)
			if !ok {
				continue
			}
			if _, err := asn1.Marshal(ai); err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", alg, err))
			}
		}
		return result("x509", failures, "AlgorithmIdentifiers encode")
	}
}
