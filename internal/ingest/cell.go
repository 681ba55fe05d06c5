package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/mosier/radflow/internal/model"
)

// Date layouts observed across report variants.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"02-Jan-2006",
	time.RFC3339,
}

// excelEpoch is day zero of Excel's 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate resolves the record date from a raw cell. The returned date is
// truncated to midnight UTC; ok is false when the cell cannot be read as a
// calendar date, which drops the row upstream.
func parseDate(v model.RawValue) (time.Time, bool) {
	switch v.Kind {
	case model.RawTemporal:
		return truncateDay(v.Temporal), true
	case model.RawNumber:
		// Excel serial date.
		if v.Number <= 0 {
			return time.Time{}, false
		}
		return truncateDay(excelEpoch.AddDate(0, 0, int(v.Number))), true
	case model.RawText:
		s := strings.TrimSpace(v.Text)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return truncateDay(t), true
			}
		}
		// Numeric text may still be an Excel serial.
		if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
			return truncateDay(excelEpoch.AddDate(0, 0, int(serial))), true
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

// parseFloat coerces a numeric cell. Unreadable cells coerce to zero rather
// than failing the row; only the date column can drop a row.
func parseFloat(v model.RawValue) float64 {
	switch v.Kind {
	case model.RawNumber:
		return v.Number
	case model.RawText:
		s := strings.TrimSpace(strings.ReplaceAll(v.Text, ",", ""))
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// cellText renders a raw cell as the string a human typed.
func cellText(v model.RawValue) string {
	switch v.Kind {
	case model.RawText:
		return v.Text
	case model.RawNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case model.RawTemporal:
		return v.Temporal.Format("2006-01-02")
	}
	return ""
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
