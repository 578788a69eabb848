package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/filmrec/internal/domain"
)

// dateLayouts are the accepted release date encodings, most common first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// parseBool accepts True/False in any case and 1/0. Empty is false.
func parseBool(field, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "1.0":
		return true, nil
	case "false", "0", "0.0", "":
		return false, nil
	default:
		return false, domain.NewValidation(field, s, "is not a boolean")
	}
}

// parseID accepts integers and integral floats ("862.0").
func parseID(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, domain.NewValidation(field, s, "is not an integer")
	}
	return int(f), nil
}

func parseFloat(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, domain.NewValidation(field, s, "is not a number")
	}
	return f, nil
}

// parseDate returns the calendar date (UTC midnight) of s.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, domain.NewValidation(field, s, "is not a date")
}
