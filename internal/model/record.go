// Package model defines the data types that flow through the ingestion and
// reconciliation pipeline.
package model

import "time"

// CanonicalRecord is one productivity-report row after header normalization
// and field typing. Date is always a valid calendar date; rows that fail date
// parsing never become CanonicalRecords.
type CanonicalRecord struct {
	Date              time.Time
	RawName           string // provider name exactly as entered
	Procedures        float64
	Points            float64
	ShiftWeight       float64 // half-day units, observed range 0-2
	HalfDayPoints     float64
	HalfDayProcedures float64
	DurationMinutes   *float64 // nil when the turnaround cell was unparsable
}

// MatchKind classifies how a record's identity was resolved against the
// roster.
type MatchKind string

// Match outcomes. Every reconciled record carries exactly one of these.
const (
	MatchExact     MatchKind = "exact"
	MatchFuzzy     MatchKind = "fuzzy"
	MatchUnmatched MatchKind = "unmatched"
)

// ReconciledRecord is a CanonicalRecord with a resolved identity and roster
// attributes merged in. When Match is MatchUnmatched the employment fields
// hold the sentinel values, never empty strings.
type ReconciledRecord struct {
	CanonicalRecord

	ResolvedKey    string // canonical identity used for grouping
	Match          MatchKind
	EmploymentType string
	Subspecialty   string
	FuzzyScore     int // 0-100; only meaningful when Match is MatchFuzzy
}
