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

// Package metrics provides Prometheus instrumentation for algorithm
// resolution. It counts resolver lookups by identifier space and outcome,
// exposes the shape of the active tables as gauges, and tracks token
// capability checks.
package metrics

import (
	"io"
	"strings"
	"sync/atomic"

	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const (
	// Namespace is the Prometheus namespace for all algid metrics
	Namespace = "algid"

	// Label names
	LabelSpace  = "space"
	LabelResult = "result"
	LabelFamily = "family"

	// Result values
	ResultHit         = "hit"
	ResultMiss        = "miss"
	ResultSupported   = "supported"
	ResultUnsupported = "unsupported"
	ResultError       = "error"

	// Space values
	SpaceMechanism = "mechanism"
	SpaceOID       = "oid"
	SpaceUsage     = "usage"
)

var (
	// ResolutionsTotal counts resolver lookups by target space and outcome.
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "resolutions_total",
			Help:      "Total number of algorithm resolutions by space and result",
		},
		[]string{LabelSpace, LabelResult},
	)

	// TableEntries reports how many table slots are bound to each space.
	TableEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "table_entries",
			Help:      "Number of algorithm table slots bound to each identifier space",
		},
		[]string{LabelSpace},
	)

	// TableFamilies reports how many table slots belong to each family.
	TableFamilies = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "table_families",
			Help:      "Number of algorithm table slots in each family",
		},
		[]string{LabelFamily},
	)

	// TokenChecksTotal counts mechanism capability checks against a token.
	TokenChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "token_checks_total",
			Help:      "Total number of token mechanism checks by result",
		},
		[]string{LabelResult},
	)

	// enabled tracks whether metrics collection is enabled
	enabled atomic.Bool
)

func init() {
	// Metrics are enabled by default
	enabled.Store(true)
}

// RecordResolution records a single lookup in the given space.
//
// Example:
//
//	tag := resolver.ResolveOIDTag(alg)
//	RecordResolution(SpaceOID, tag != oidtag.Unknown)
func RecordResolution(space string, hit bool) {
	if !enabled.Load() {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	ResolutionsTotal.WithLabelValues(space, result).Inc()
}

// RecordTokenCheck records the outcome of a token capability check.
func RecordTokenCheck(result string) {
	if !enabled.Load() {
		return
	}
	TokenChecksTotal.WithLabelValues(result).Inc()
}

// SetTable publishes the per-space and per-family slot counts of table.
func SetTable(table *algid.Table) {
	if !enabled.Load() || table == nil {
		return
	}
	TableEntries.Reset()
	TableFamilies.Reset()
	for _, e := range table.Entries() {
		TableEntries.WithLabelValues(e.Identifier.Space().String()).Inc()
		TableFamilies.WithLabelValues(e.Algorithm.Family().String()).Inc()
	}
}

// WriteText writes every algid metric registered with the default gatherer
// to w in the Prometheus text exposition format.
func WriteText(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), Namespace+"_") {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// Enable enables metrics collection.
func Enable() {
	enabled.Store(true)
}

// Disable disables metrics collection.
// Useful for testing or when metrics are not desired.
func Disable() {
	enabled.Store(false)
}

// IsEnabled returns whether metrics collection is currently enabled.
func IsEnabled() bool {
	return enabled.Load()
}
