package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/model"
	"github.com/mosier/radflow/internal/service"
)

// LoadResult is the typed output of one table load. DroppedDates counts rows
// discarded for an unparsable date; it is reported, never silently swallowed.
type LoadResult struct {
	Records      []model.CanonicalRecord
	DroppedDates int
}

// BuildRecords types every row of a raw table into canonical records.
//
// The header row must resolve completely (see ResolveHeaders); a missing
// canonical column aborts the whole file. Row-level failures are softer: an
// unparsable date drops the row and increments DroppedDates, an unparsable
// duration nulls the field and keeps the row.
func BuildRecords(ctx context.Context, table service.Table) (LoadResult, error) {
	columns, err := ResolveHeaders(table.Headers)
	if err != nil {
		return LoadResult{}, err
	}

	if len(table.Rows) == 0 {
		return LoadResult{}, fmt.Errorf("no rows after header: %w", common.ErrEmptyTable)
	}

	result := LoadResult{Records: make([]model.CanonicalRecord, 0, len(table.Rows))}

	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return LoadResult{}, err
		}

		date, ok := parseDate(cellAt(row, columns[FieldDate]))
		if !ok {
			result.DroppedDates++
			slog.Debug("Dropping row with unparsable date", "row", i+2)
			continue
		}

		record := model.CanonicalRecord{
			Date:              date,
			RawName:           cellText(cellAt(row, columns[FieldPerson])),
			Procedures:        parseFloat(cellAt(row, columns[FieldProcedureCount])),
			Points:            parseFloat(cellAt(row, columns[FieldPointValue])),
			ShiftWeight:       parseFloat(cellAt(row, columns[FieldShiftWeight])),
			HalfDayPoints:     parseFloat(cellAt(row, columns[FieldHalfDayPoints])),
			HalfDayProcedures: parseFloat(cellAt(row, columns[FieldHalfDayProcedures])),
			DurationMinutes:   ParseMinutes(cellAt(row, columns[FieldDuration])),
		}

		result.Records = append(result.Records, record)
	}

	if result.DroppedDates > 0 {
		slog.Info("Dropped rows with unparsable dates",
			"dropped", result.DroppedDates,
			"kept", len(result.Records))
	}

	return result, nil
}

// cellAt returns the cell at idx, or the empty value for ragged rows.
func cellAt(row []model.RawValue, idx int) model.RawValue {
	if idx < 0 || idx >= len(row) {
		return model.Empty()
	}
	return row[idx]
}
