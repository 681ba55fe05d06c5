package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReconciliationReport summarizes one reconciliation run for the operator:
// how each record's identity resolved, and which raw names found no roster
// entry (so the roster can be corrected upstream).
type ReconciliationReport struct {
	RunID          string
	GeneratedAt    time.Time
	Exact          int
	Fuzzy          int
	Unmatched      int
	UnmatchedNames []string // de-duplicated, sorted
}

// NewReconciliationReport returns an empty report stamped with a fresh run ID.
func NewReconciliationReport() ReconciliationReport {
	return ReconciliationReport{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
	}
}

// Total returns the number of records the run processed.
func (r ReconciliationReport) Total() int {
	return r.Exact + r.Fuzzy + r.Unmatched
}

// Summary renders a one-line operator summary.
func (r ReconciliationReport) Summary() string {
	return fmt.Sprintf("reconciled %d records: %d exact, %d fuzzy, %d unmatched",
		r.Total(), r.Exact, r.Fuzzy, r.Unmatched)
}
