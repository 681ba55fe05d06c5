package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mosier/radflow/internal/model"
)

// ParseMinutes converts a raw turnaround cell into minutes. It handles every
// encoding observed in uploaded reports:
//
//	"HH:MM:SS"    clock-style elapsed time
//	"D.HH:MM:SS"  leading day count
//	"2.5"         fractional hours
//	numeric cell  fractional hours
//	duration cell elapsed time reported by the source library
//
// Parsing never fails: empty or unrecognizable input yields nil, which
// downstream aggregation excludes. A parsed zero is a real zero duration and
// is distinct from nil.
func ParseMinutes(v model.RawValue) *float64 {
	switch v.Kind {
	case model.RawEmpty:
		return nil
	case model.RawNumber:
		return minutesPtr(v.Number * 60)
	case model.RawDuration:
		return minutesPtr(v.Duration.Minutes())
	case model.RawTemporal:
		// A date cell carries no elapsed time.
		return nil
	case model.RawText:
		return parseMinutesText(v.Text)
	}
	return nil
}

func parseMinutesText(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.Contains(s, ":") {
		return parseClockText(s)
	}

	// No colon: a bare decimal meaning fractional hours.
	hours, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return minutesPtr(hours * 60)
}

// parseClockText handles "HH:MM:SS" with an optional "D." day prefix.
func parseClockText(s string) *float64 {
	days := 0.0
	if dot := strings.Index(s, "."); dot >= 0 && strings.Count(s[dot+1:], ":") == 2 {
		d, err := strconv.ParseFloat(s[:dot], 64)
		if err != nil || d < 0 {
			return nil
		}
		days = d
		s = s[dot+1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil
	}

	h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	sec, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	if h < 0 || m < 0 || m >= 60 || sec < 0 || sec >= 60 {
		return nil
	}

	return minutesPtr(days*24*60 + float64(h)*60 + float64(m) + sec/60)
}

// FormatMinutes renders minutes back as "H:MM:SS" for operator display, or
// "N/A" when the value is nil.
func FormatMinutes(minutes *float64) string {
	if minutes == nil {
		return "N/A"
	}

	totalSeconds := int(math.Round(*minutes * 60))
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60

	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func minutesPtr(m float64) *float64 {
	return &m
}
