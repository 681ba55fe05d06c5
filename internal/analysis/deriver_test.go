package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosier/radflow/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func reconciled(person string, d int, points, shift float64, duration *float64) model.ReconciledRecord {
	return model.ReconciledRecord{
		CanonicalRecord: model.CanonicalRecord{
			Date:            day(d),
			Points:          points,
			Procedures:      points / 2,
			ShiftWeight:     shift,
			DurationMinutes: duration,
		},
		ResolvedKey: person,
		Match:       model.MatchExact,
	}
}

func fptr(f float64) *float64 { return &f }

func TestPointsPerShift(t *testing.T) {
	tests := []struct {
		name   string
		record model.ReconciledRecord
		want   *float64
	}{
		{name: "normal shift", record: reconciled("Jane Doe", 5, 24, 1, nil), want: fptr(24)},
		{name: "half shift", record: reconciled("Jane Doe", 5, 24, 0.5, nil), want: fptr(48)},
		{name: "zero shift is undefined", record: reconciled("Jane Doe", 5, 24, 0, nil), want: nil},
		{name: "negative shift is undefined", record: reconciled("Jane Doe", 5, 24, -1, nil), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointsPerShift(tt.record)

			if tt.want == nil {
				assert.Nil(t, got, "undefined metric must be nil, never Inf")
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestMeanDurationExcludesNulls(t *testing.T) {
	records := []model.ReconciledRecord{
		reconciled("Jane Doe", 5, 10, 1, fptr(100)),
		reconciled("Jane Doe", 5, 10, 1, nil), // excluded from both sides
		reconciled("Jane Doe", 5, 10, 1, fptr(50)),
		reconciled("Jane Doe", 5, 10, 1, fptr(0)), // a real zero counts
	}

	mean := MeanDuration(records)
	require.NotNil(t, mean)
	assert.InDelta(t, 50.0, *mean, 1e-9)
}

func TestMeanDurationAllNil(t *testing.T) {
	records := []model.ReconciledRecord{
		reconciled("Jane Doe", 5, 10, 1, nil),
		reconciled("Jane Doe", 5, 10, 1, nil),
	}

	assert.Nil(t, MeanDuration(records))
}

func TestSummarizeByPerson(t *testing.T) {
	records := []model.ReconciledRecord{
		reconciled("Jane Doe", 5, 24, 1, fptr(90)),
		reconciled("Jane Doe", 6, 16, 1, nil),
		reconciled("John Smith", 5, 10, 0.5, fptr(30)),
	}

	aggs := Summarize(records, ByPerson, FieldPoints, FieldDuration)
	require.Len(t, aggs, 2)

	// Deterministic order: dates equal (zero), then person ascending.
	jane := aggs[0]
	assert.Equal(t, "Jane Doe", jane.Key.Person)
	assert.Equal(t, 2, jane.Count)
	assert.InDelta(t, 40.0, jane.Sums[FieldPoints], 1e-9)
	require.NotNil(t, jane.Means[FieldPoints])
	assert.InDelta(t, 20.0, *jane.Means[FieldPoints], 1e-9)

	// The nil duration stays out of the mean's denominator.
	require.NotNil(t, jane.Means[FieldDuration])
	assert.InDelta(t, 90.0, *jane.Means[FieldDuration], 1e-9)

	john := aggs[1]
	assert.Equal(t, "John Smith", john.Key.Person)
	assert.Equal(t, 1, john.Count)
}

func TestSummarizeByDate(t *testing.T) {
	records := []model.ReconciledRecord{
		reconciled("Jane Doe", 5, 24, 1, nil),
		reconciled("John Smith", 5, 10, 1, nil),
		reconciled("Jane Doe", 6, 16, 1, nil),
	}

	aggs := Summarize(records, ByDate, FieldPoints)
	require.Len(t, aggs, 2)

	assert.True(t, aggs[0].Key.Date.Equal(day(5)))
	assert.InDelta(t, 34.0, aggs[0].Sums[FieldPoints], 1e-9)
	assert.True(t, aggs[1].Key.Date.Equal(day(6)))
	assert.InDelta(t, 16.0, aggs[1].Sums[FieldPoints], 1e-9)
}

func TestSummarizeByPersonAndDate(t *testing.T) {
	records := []model.ReconciledRecord{
		reconciled("Jane Doe", 5, 24, 1, nil),
		reconciled("Jane Doe", 5, 6, 1, nil),
		reconciled("Jane Doe", 6, 16, 1, nil),
	}

	aggs := Summarize(records, ByPersonAndDate, FieldPoints)
	require.Len(t, aggs, 2)
	assert.InDelta(t, 30.0, aggs[0].Sums[FieldPoints], 1e-9)
	assert.InDelta(t, 16.0, aggs[1].Sums[FieldPoints], 1e-9)
}

func TestSummarizeAllNilDurationGroup(t *testing.T) {
	records := []model.ReconciledRecord{
		reconciled("Jane Doe", 5, 24, 1, nil),
	}

	aggs := Summarize(records, ByPerson, FieldDuration)
	require.Len(t, aggs, 1)
	assert.Nil(t, aggs[0].Means[FieldDuration], "no parsed durations means no mean")
	assert.Zero(t, aggs[0].Sums[FieldDuration])
}

func TestSummarizeIsPure(t *testing.T) {
	records := []model.ReconciledRecord{
		reconciled("Jane Doe", 5, 24, 1, fptr(90)),
		reconciled("John Smith", 5, 10, 0.5, fptr(30)),
	}

	first := Summarize(records, ByPerson, FieldPoints, FieldShiftWeight, FieldDuration)
	second := Summarize(records, ByPerson, FieldPoints, FieldShiftWeight, FieldDuration)

	assert.Equal(t, first, second)
}
