package catalog

import (
	"strconv"

	"github.com/kailas-cloud/filmrec/internal/codec/pylit"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/raw"
)

// toRow encodes a movie as a flat persisted row.
func toRow(m *movie.Movie) raw.CatalogRow {
	return raw.CatalogRow{
		ID:                  raw.Cell(strconv.Itoa(m.ID())),
		Adult:               raw.Cell(formatBool(m.Adult())),
		Genres:              raw.Cell(pylit.EncodeStrings(m.Genres())),
		OriginalLanguage:    raw.Cell(m.OriginalLanguage()),
		Overview:            raw.Cell(m.Overview()),
		Popularity:          raw.Cell(formatFloat(m.Popularity())),
		ProductionCompanies: raw.Cell(pylit.EncodeStrings(m.ProductionCompanies())),
		ReleaseDate:         raw.Cell(m.ReleaseDate().Format(movie.DateLayout)),
		Title:               raw.Cell(m.Title()),
		VoteAverage:         raw.Cell(formatFloat(m.VoteAverage())),
		Keywords:            raw.Cell(pylit.EncodeStrings(m.Keywords())),
		Cast:                raw.Cell(pylit.EncodeStrings(m.Cast())),
		Director:            raw.Cell(m.Director()),
	}
}

// cells returns the row values in raw.CatalogColumns order; null cells become "".
func cells(r *raw.CatalogRow) []string {
	return []string{
		raw.Value(r.ID), raw.Value(r.Adult), raw.Value(r.Genres),
		raw.Value(r.OriginalLanguage), raw.Value(r.Overview), raw.Value(r.Popularity),
		raw.Value(r.ProductionCompanies), raw.Value(r.ReleaseDate), raw.Value(r.Title),
		raw.Value(r.VoteAverage), raw.Value(r.Keywords), raw.Value(r.Cast), raw.Value(r.Director),
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// formatFloat uses the shortest representation that parses back to the same value.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
