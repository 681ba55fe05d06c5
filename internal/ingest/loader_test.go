package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/model"
	"github.com/mosier/radflow/internal/service"
)

func reportHeaders() []string {
	return []string{"DATE", "Author", "Procedure", "Points", "Shift", "Points/Half Day", "Procedure/Half", "Turnaround"}
}

func textRow(cells ...string) []model.RawValue {
	row := make([]model.RawValue, len(cells))
	for i, c := range cells {
		if c == "" {
			row[i] = model.Empty()
			continue
		}
		row[i] = model.Text(c)
	}
	return row
}

func TestBuildRecords(t *testing.T) {
	ctx := context.Background()

	table := service.Table{
		Headers: reportHeaders(),
		Rows: [][]model.RawValue{
			textRow("2024-03-05", "jane doe", "12", "24.5", "1", "24.5", "12", "1:30:00"),
			textRow("2024-03-05", "John Smith", "8", "16", "0.5", "32", "16", ""),
			textRow("not a date", "Jane Doe", "5", "10", "1", "10", "5", "0:45:00"),
		},
	}

	result, err := BuildRecords(ctx, table)
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.DroppedDates)

	first := result.Records[0]
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "jane doe", first.RawName)
	assert.Equal(t, 12.0, first.Procedures)
	assert.Equal(t, 24.5, first.Points)
	require.NotNil(t, first.DurationMinutes)
	assert.InDelta(t, 90.0, *first.DurationMinutes, 1e-9)

	// Unparsable duration keeps the row with a nil duration.
	second := result.Records[1]
	assert.Nil(t, second.DurationMinutes)
	assert.Equal(t, 0.5, second.ShiftWeight)
}

func TestBuildRecordsSchemaFailureAbortsFile(t *testing.T) {
	table := service.Table{
		Headers: []string{"date", "author"},
		Rows: [][]model.RawValue{
			textRow("2024-03-05", "jane doe"),
		},
	}

	_, err := BuildRecords(context.Background(), table)

	var schemaErr *common.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.NotEmpty(t, schemaErr.Missing)
}

func TestBuildRecordsEmptyTable(t *testing.T) {
	table := service.Table{Headers: reportHeaders()}

	_, err := BuildRecords(context.Background(), table)
	require.ErrorIs(t, err, common.ErrEmptyTable)
}

func TestBuildRecordsRaggedRows(t *testing.T) {
	table := service.Table{
		Headers: reportHeaders(),
		Rows: [][]model.RawValue{
			textRow("2024-03-05", "jane doe", "12"), // trailing cells absent
		},
	}

	result, err := BuildRecords(context.Background(), table)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	record := result.Records[0]
	assert.Equal(t, 12.0, record.Procedures)
	assert.Equal(t, 0.0, record.Points)
	assert.Nil(t, record.DurationMinutes)
}

func TestBuildRecordsDateVariants(t *testing.T) {
	tests := []struct {
		name string
		cell model.RawValue
		want time.Time
	}{
		{name: "iso text", cell: model.Text("2024-03-05"), want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "us slash text", cell: model.Text("3/5/2024"), want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "datetime text keeps date only", cell: model.Text("2024-03-05 13:45:00"), want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "temporal cell", cell: model.Temporal(time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)), want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "excel serial", cell: model.Number(45356), want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := service.Table{
				Headers: reportHeaders(),
				Rows: [][]model.RawValue{
					{tt.cell, model.Text("jane doe"), model.Text("1"), model.Text("1"), model.Text("1"), model.Text("1"), model.Text("1"), model.Text("1:00:00")},
				},
			}

			result, err := BuildRecords(context.Background(), table)
			require.NoError(t, err)
			require.Len(t, result.Records, 1)
			assert.True(t, tt.want.Equal(result.Records[0].Date),
				"got %v, want %v", result.Records[0].Date, tt.want)
		})
	}
}
