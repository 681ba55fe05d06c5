package roster

import (
	"fmt"
	"strings"

	"github.com/mosier/radflow/internal/model"
)

// Header spellings accepted for the three roster columns.
var (
	nameHeaders         = []string{"person_name", "name", "provider", "radiologist"}
	employmentHeaders   = []string{"employment_type", "employment type", "employment", "type"}
	subspecialtyHeaders = []string{"primary_subspecialty", "primary subspecialty", "subspecialty", "specialty"}
)

// entriesFromRows converts a header row plus data rows into raw roster
// entries. Only the name column is required; missing attribute columns leave
// fields blank for NewIndex to fill with sentinels.
func entriesFromRows(headers []string, rows [][]string) ([]model.RosterEntry, error) {
	nameCol := findColumn(headers, nameHeaders)
	if nameCol < 0 {
		return nil, fmt.Errorf("roster has no name column (headers: %s)", strings.Join(headers, ", "))
	}
	employmentCol := findColumn(headers, employmentHeaders)
	subspecialtyCol := findColumn(headers, subspecialtyHeaders)

	entries := make([]model.RosterEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.RosterEntry{
			Name:           columnValue(row, nameCol),
			EmploymentType: columnValue(row, employmentCol),
			Subspecialty:   columnValue(row, subspecialtyCol),
		})
	}

	return entries, nil
}

func findColumn(headers []string, accepted []string) int {
	for _, want := range accepted {
		for i, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i
			}
		}
	}
	return -1
}

func columnValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
