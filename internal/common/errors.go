// Package common provides shared utilities and types used across the
// pipeline.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common pipeline errors.
var (
	// Ingestion errors.
	ErrWorksheetNotFound = errors.New("worksheet not found")
	ErrEmptyTable        = errors.New("table has no data rows")

	// Roster errors.
	ErrRosterUnavailable = errors.New("roster unavailable")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SchemaError reports required canonical columns that could not be matched in
// the source headers. It is fatal for the file: no partial load happens.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required columns missing: %s", strings.Join(e.Missing, ", "))
}

// RosterLoadError reports a reference file that could not be read or parsed.
// It is non-fatal: callers degrade to an all-unmatched reconciliation.
type RosterLoadError struct {
	Err    error
	Source string
}

func (e *RosterLoadError) Error() string {
	return fmt.Sprintf("failed to load roster from %s: %v", e.Source, e.Err)
}

func (e *RosterLoadError) Unwrap() error {
	return e.Err
}

// NewRosterLoadError wraps err with the roster source it came from.
func NewRosterLoadError(source string, err error) error {
	return &RosterLoadError{Source: source, Err: err}
}
