// Package ingest reads the uploaded productivity report and turns it into
// typed canonical records: header normalization, cell coercion, duration
// parsing, and per-row typing with explicit accounting of dropped rows.
package ingest

import (
	"strings"

	"github.com/mosier/radflow/internal/common"
)

// Canonical field names. Every source file must supply a column for each of
// these, under whatever header spelling and casing it uses.
const (
	FieldDate              = "date"
	FieldPerson            = "person"
	FieldProcedureCount    = "procedure_count"
	FieldPointValue        = "point_value"
	FieldShiftWeight       = "shift_weight"
	FieldHalfDayPoints     = "half_day_points"
	FieldHalfDayProcedures = "half_day_procedures"
	FieldDuration          = "duration"
)

// headerSynonyms maps each canonical field to the header spellings observed
// across report variants. Matching is case-insensitive after trimming.
var headerSynonyms = map[string][]string{
	FieldDate:              {"date"},
	FieldPerson:            {"person", "author", "provider", "radiologist"},
	FieldProcedureCount:    {"procedure_count", "procedure", "procedures"},
	FieldPointValue:        {"point_value", "points"},
	FieldShiftWeight:       {"shift_weight", "shift"},
	FieldHalfDayPoints:     {"half_day_points", "points/half day", "points/half"},
	FieldHalfDayProcedures: {"half_day_procedures", "procedure/half", "procedures/half day"},
	FieldDuration:          {"duration", "turnaround", "turnaround time"},
}

// fieldOrder fixes the order in which missing fields are reported.
var fieldOrder = []string{
	FieldDate,
	FieldPerson,
	FieldProcedureCount,
	FieldPointValue,
	FieldShiftWeight,
	FieldHalfDayPoints,
	FieldHalfDayProcedures,
	FieldDuration,
}

// ResolveHeaders maps each canonical field to the index of its column in the
// source header row. It fails with a *common.SchemaError naming every field
// that could not be matched; a partial mapping is never returned.
func ResolveHeaders(headers []string) (map[string]int, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	columns := make(map[string]int, len(fieldOrder))
	var missing []string

	for _, field := range fieldOrder {
		idx := -1
		for _, synonym := range headerSynonyms[field] {
			for i, h := range normalized {
				if h == synonym {
					idx = i
					break
				}
			}
			if idx >= 0 {
				break
			}
		}

		if idx < 0 {
			missing = append(missing, field)
			continue
		}
		columns[field] = idx
	}

	if len(missing) > 0 {
		return nil, &common.SchemaError{Missing: missing}
	}

	return columns, nil
}
