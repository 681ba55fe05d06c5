// Package service defines the contracts between the pipeline stages.
package service

import (
	"context"
	"time"

	"github.com/mosier/radflow/internal/model"
)

// Table is an untyped tabular read of a source: the header row plus every
// data row, cells still in their raw tagged form.
type Table struct {
	Headers []string
	Rows    [][]model.RawValue
}

// RecordSource reads the uploaded productivity report into a raw table.
// Implementations exist for XLSX, legacy XLS, and CSV sources.
type RecordSource interface {
	ReadTable(ctx context.Context) (Table, error)
}

// RosterSource loads the provider reference dataset. A failed load returns a
// *common.RosterLoadError; callers treat that as a degraded (all-unmatched)
// run, not an abort.
type RosterSource interface {
	Load(ctx context.Context) ([]model.RosterEntry, error)
}

// Reconciler resolves record identities against the roster.
type Reconciler interface {
	Reconcile(ctx context.Context, records []model.CanonicalRecord) ([]model.ReconciledRecord, model.ReconciliationReport)
}

// RetryOptions configures retry behavior for remote fetches.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
