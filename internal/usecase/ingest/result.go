package ingest

import (
	"sort"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
)

// Reason classifies why a row was excluded from the catalog.
type Reason string

// Exclusion reasons.
const (
	ReasonDuplicateTitle  Reason = "duplicate_title"
	ReasonDuplicateID     Reason = "duplicate_id"
	ReasonMissingRequired Reason = "missing_required"
	ReasonInvalidType     Reason = "invalid_type"
	ReasonMalformedNested Reason = "malformed_nested"
	ReasonInvalidDate     Reason = "invalid_date"
	ReasonNoKeywords      Reason = "no_keywords"
	ReasonNoCredits       Reason = "no_credits"
)

// Exclusion records one dropped row. ID and Title are the raw cell text when known.
type Exclusion struct {
	Source string
	ID     string
	Title  string
	Reason Reason
	Err    error
}

// Result is the outcome of a normalization run: the catalog plus every excluded row.
type Result struct {
	Catalog  *movie.Catalog
	Excluded []Exclusion
}

// Counts returns the number of exclusions per source and reason, keyed "source/reason".
func (r Result) Counts() map[string]int {
	out := make(map[string]int)
	for _, e := range r.Excluded {
		out[e.Source+"/"+string(e.Reason)]++
	}
	return out
}

// CountReason returns the number of exclusions with the given reason across sources.
func (r Result) CountReason(reason Reason) int {
	n := 0
	for _, e := range r.Excluded {
		if e.Reason == reason {
			n++
		}
	}
	return n
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
