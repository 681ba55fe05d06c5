package model

import "time"

// RawKind discriminates the variants of a RawValue.
type RawKind int

// Raw cell variants. Spreadsheet sources produce whichever variant the
// underlying library reports; everything downstream switches on Kind exactly
// once, at the typing stage.
const (
	RawEmpty RawKind = iota
	RawText
	RawNumber
	RawTemporal
	RawDuration
)

// RawValue is a single untyped spreadsheet cell. Exactly one payload field is
// meaningful, selected by Kind.
type RawValue struct {
	Text     string
	Temporal time.Time
	Duration time.Duration
	Number   float64
	Kind     RawKind
}

// Empty returns the empty-cell value.
func Empty() RawValue {
	return RawValue{Kind: RawEmpty}
}

// Text wraps a textual cell.
func Text(s string) RawValue {
	return RawValue{Kind: RawText, Text: s}
}

// Number wraps a numeric cell.
func Number(f float64) RawValue {
	return RawValue{Kind: RawNumber, Number: f}
}

// Temporal wraps a date-typed cell.
func Temporal(t time.Time) RawValue {
	return RawValue{Kind: RawTemporal, Temporal: t}
}

// Elapsed wraps a duration-typed cell (a source that already knows the cell
// holds an elapsed time rather than a clock time).
func Elapsed(d time.Duration) RawValue {
	return RawValue{Kind: RawDuration, Duration: d}
}

// IsEmpty reports whether the cell is empty or contains only whitespace text.
func (v RawValue) IsEmpty() bool {
	if v.Kind == RawEmpty {
		return true
	}
	if v.Kind == RawText {
		for _, r := range v.Text {
			if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
				return false
			}
		}
		return true
	}
	return false
}
