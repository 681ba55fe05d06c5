// Package analysis derives rate metrics and grouped aggregates from
// reconciled records. Everything here is pure: the same records and the same
// grouping spec always produce the same output.
package analysis

import (
	"sort"
	"time"

	"github.com/mosier/radflow/internal/model"
)

// Field names aggregates can be requested over.
type Field string

// Aggregatable fields.
const (
	FieldProcedures        Field = "procedures"
	FieldPoints            Field = "points"
	FieldShiftWeight       Field = "shift_weight"
	FieldHalfDayPoints     Field = "half_day_points"
	FieldHalfDayProcedures Field = "half_day_procedures"
	FieldDuration          Field = "duration_minutes"
)

// GroupBy selects the grouping dimension for Summarize.
type GroupBy int

// Grouping dimensions.
const (
	ByPerson GroupBy = iota
	ByDate
	ByPersonAndDate
)

// GroupKey identifies one aggregate row. Date is the zero time when the
// grouping does not include it; Person is empty likewise.
type GroupKey struct {
	Date   time.Time
	Person string
}

// Aggregate is one group's sums and means over the requested fields. Means
// over duration exclude nil values from both numerator and denominator; a
// group whose durations are all nil has a nil duration mean.
type Aggregate struct {
	Key   GroupKey
	Count int
	Sums  map[Field]float64
	Means map[Field]*float64
}

// PointsPerShift returns points divided by shift weight, or nil when the
// shift weight is zero (the metric is undefined, not infinite).
func PointsPerShift(r model.ReconciledRecord) *float64 {
	return ratio(r.Points, r.ShiftWeight)
}

// ProceduresPerShift returns procedures divided by shift weight, or nil when
// the shift weight is zero.
func ProceduresPerShift(r model.ReconciledRecord) *float64 {
	return ratio(r.Procedures, r.ShiftWeight)
}

func ratio(numerator, denominator float64) *float64 {
	if denominator <= 0 {
		return nil
	}
	v := numerator / denominator
	return &v
}

// MeanDuration returns the mean of the non-nil duration values, or nil when
// no record has a parsed duration. Zero durations are real values and count
// toward both numerator and denominator.
func MeanDuration(records []model.ReconciledRecord) *float64 {
	sum := 0.0
	n := 0
	for _, r := range records {
		if r.DurationMinutes == nil {
			continue
		}
		sum += *r.DurationMinutes
		n++
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

// Summarize groups records by the requested dimension and aggregates the
// requested fields. Output order is deterministic: ascending by date, then
// person.
func Summarize(records []model.ReconciledRecord, by GroupBy, fields ...Field) []Aggregate {
	groups := make(map[GroupKey]*aggregation)

	for _, r := range records {
		key := groupKey(r, by)
		agg, ok := groups[key]
		if !ok {
			agg = newAggregation(fields)
			groups[key] = agg
		}
		agg.add(r, fields)
	}

	out := make([]Aggregate, 0, len(groups))
	for key, agg := range groups {
		out = append(out, agg.finish(key, fields))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Key.Date.Equal(out[j].Key.Date) {
			return out[i].Key.Date.Before(out[j].Key.Date)
		}
		return out[i].Key.Person < out[j].Key.Person
	})

	return out
}

func groupKey(r model.ReconciledRecord, by GroupBy) GroupKey {
	switch by {
	case ByPerson:
		return GroupKey{Person: r.ResolvedKey}
	case ByDate:
		return GroupKey{Date: r.Date}
	default:
		return GroupKey{Person: r.ResolvedKey, Date: r.Date}
	}
}

// aggregation accumulates one group. Duration keeps its own observation count
// so nil values stay out of the mean's denominator.
type aggregation struct {
	sums          map[Field]float64
	count         int
	durationCount int
}

func newAggregation(fields []Field) *aggregation {
	return &aggregation{sums: make(map[Field]float64, len(fields))}
}

func (a *aggregation) add(r model.ReconciledRecord, fields []Field) {
	a.count++
	for _, f := range fields {
		switch f {
		case FieldProcedures:
			a.sums[f] += r.Procedures
		case FieldPoints:
			a.sums[f] += r.Points
		case FieldShiftWeight:
			a.sums[f] += r.ShiftWeight
		case FieldHalfDayPoints:
			a.sums[f] += r.HalfDayPoints
		case FieldHalfDayProcedures:
			a.sums[f] += r.HalfDayProcedures
		case FieldDuration:
			if r.DurationMinutes != nil {
				a.sums[f] += *r.DurationMinutes
				a.durationCount++
			}
		}
	}
}

func (a *aggregation) finish(key GroupKey, fields []Field) Aggregate {
	agg := Aggregate{
		Key:   key,
		Count: a.count,
		Sums:  make(map[Field]float64, len(fields)),
		Means: make(map[Field]*float64, len(fields)),
	}

	for _, f := range fields {
		sum := a.sums[f]
		agg.Sums[f] = sum

		n := a.count
		if f == FieldDuration {
			n = a.durationCount
		}
		if n > 0 {
			mean := sum / float64(n)
			agg.Means[f] = &mean
		}
	}

	return agg
}
