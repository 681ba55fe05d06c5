// Package engine resolves record identities against the roster and
// orchestrates the full ingestion pipeline for one uploaded file.
package engine

import (
	"context"
	"sort"

	"github.com/mosier/radflow/internal/identity"
	"github.com/mosier/radflow/internal/model"
	"github.com/mosier/radflow/internal/roster"
	"github.com/mosier/radflow/internal/telemetry"
)

// Engine reconciles canonical records against a roster index. The index is
// read-only and may be shared across sequential runs; each run produces a
// fresh result set.
type Engine struct {
	roster    *roster.Index
	metrics   *telemetry.Collector
	threshold int
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold overrides the fuzzy-match similarity cutoff (0-100 scale).
func WithThreshold(threshold int) Option {
	return func(e *Engine) {
		e.threshold = threshold
	}
}

// WithMetrics attaches a telemetry collector.
func WithMetrics(collector *telemetry.Collector) Option {
	return func(e *Engine) {
		e.metrics = collector
	}
}

// New creates a reconciliation engine. A nil index is allowed and yields an
// all-unmatched run (the degraded mode used when the roster failed to load).
func New(ix *roster.Index, opts ...Option) *Engine {
	e := &Engine{
		roster:    ix,
		threshold: roster.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reconcile resolves every record's identity: exact roster match first, then
// fuzzy above the threshold, otherwise unmatched with sentinel attributes.
// Every input record produces exactly one output record; reconciliation never
// drops rows.
func (e *Engine) Reconcile(_ context.Context, records []model.CanonicalRecord) ([]model.ReconciledRecord, model.ReconciliationReport) {
	reconciled := make([]model.ReconciledRecord, 0, len(records))
	report := model.NewReconciliationReport()
	unmatchedNames := make(map[string]struct{})

	for _, record := range records {
		out := e.resolve(record)
		reconciled = append(reconciled, out)
		e.metrics.ObserveMatch(out.Match)

		switch out.Match {
		case model.MatchExact:
			report.Exact++
		case model.MatchFuzzy:
			report.Fuzzy++
		case model.MatchUnmatched:
			report.Unmatched++
			unmatchedNames[record.RawName] = struct{}{}
		}
	}

	report.UnmatchedNames = make([]string, 0, len(unmatchedNames))
	for name := range unmatchedNames {
		report.UnmatchedNames = append(report.UnmatchedNames, name)
	}
	sort.Strings(report.UnmatchedNames)

	return reconciled, report
}

func (e *Engine) resolve(record model.CanonicalRecord) model.ReconciledRecord {
	key := identity.Key(record.RawName)

	if entry, ok := e.roster.Exact(key); ok {
		return model.ReconciledRecord{
			CanonicalRecord: record,
			ResolvedKey:     entry.Name,
			Match:           model.MatchExact,
			EmploymentType:  entry.EmploymentType,
			Subspecialty:    entry.Subspecialty,
		}
	}

	if entry, score, ok := e.roster.Approximate(key, e.threshold); ok {
		// Adopt the roster's canonical name so misspellings of the same
		// provider converge to one identity for grouping.
		return model.ReconciledRecord{
			CanonicalRecord: record,
			ResolvedKey:     entry.Name,
			Match:           model.MatchFuzzy,
			EmploymentType:  entry.EmploymentType,
			Subspecialty:    entry.Subspecialty,
			FuzzyScore:      score,
		}
	}

	// Unmatched records keep their own normalized key so they still take
	// part in per-provider aggregation, just without roster enrichment.
	return model.ReconciledRecord{
		CanonicalRecord: record,
		ResolvedKey:     key,
		Match:           model.MatchUnmatched,
		EmploymentType:  model.UnknownEmployment,
		Subspecialty:    model.NonAffiliated,
	}
}
