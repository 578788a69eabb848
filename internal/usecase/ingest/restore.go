package ingest

import (
	"time"

	"github.com/kailas-cloud/filmrec/internal/domain"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/raw"
	"github.com/kailas-cloud/filmrec/internal/usecase/extract"
)

// Restore rebuilds the catalog from persisted canonical rows.
// Only type coercion and list re-decoding are applied; row order is kept.
// Rows repeating an earlier identifier or title are excluded.
func (p *Pipeline) Restore(rows []raw.CatalogRow) (Result, error) {
	start := time.Now()
	r := &run{}

	seenIDs := make(map[int]struct{}, len(rows))
	seenTitles := make(map[string]struct{}, len(rows))
	movies := make([]movie.Movie, 0, len(rows))

	for i := range rows {
		row := &rows[i]

		if field := firstNull(
			column{raw.ColID, row.ID},
			column{raw.ColOriginalLanguage, row.OriginalLanguage},
			column{raw.ColTitle, row.Title},
			column{raw.ColPopularity, row.Popularity},
			column{raw.ColProductionCompanies, row.ProductionCompanies},
			column{raw.ColReleaseDate, row.ReleaseDate},
			column{raw.ColVoteAverage, row.VoteAverage},
		); field != "" {
			r.exclude(raw.TableCatalog, row.ID, row.Title, ReasonMissingRequired,
				domain.NewValidation(field, "", "is required"))
			continue
		}

		m, err := restoreRow(row)
		if err != nil {
			r.exclude(raw.TableCatalog, row.ID, row.Title, reasonFor(err), err)
			continue
		}
		if _, dup := seenIDs[m.ID()]; dup {
			r.exclude(raw.TableCatalog, row.ID, row.Title, ReasonDuplicateID, nil)
			continue
		}
		if _, dup := seenTitles[m.Title()]; dup {
			r.exclude(raw.TableCatalog, row.ID, row.Title, ReasonDuplicateTitle, nil)
			continue
		}
		seenIDs[m.ID()] = struct{}{}
		seenTitles[m.Title()] = struct{}{}
		movies = append(movies, m)
	}

	return p.finish(ModeRestore, r, movies, start)
}

func restoreRow(row *raw.CatalogRow) (movie.Movie, error) {
	var a movie.Attrs
	var err error

	if a.ID, err = parseID(raw.ColID, raw.Value(row.ID)); err != nil {
		return movie.Movie{}, err
	}
	if a.Adult, err = parseBool(raw.ColAdult, raw.Value(row.Adult)); err != nil {
		return movie.Movie{}, err
	}
	a.OriginalLanguage = raw.Value(row.OriginalLanguage)
	a.Overview = raw.Value(row.Overview)
	a.Title = raw.Value(row.Title)
	a.Director = raw.Value(row.Director)
	if a.Popularity, err = parseFloat(raw.ColPopularity, raw.Value(row.Popularity)); err != nil {
		return movie.Movie{}, err
	}
	if a.VoteAverage, err = parseFloat(raw.ColVoteAverage, raw.Value(row.VoteAverage)); err != nil {
		return movie.Movie{}, err
	}
	if a.ReleaseDate, err = parseDate(raw.ColReleaseDate, raw.Value(row.ReleaseDate)); err != nil {
		return movie.Movie{}, &dateError{err: err}
	}

	lists := []struct {
		col  string
		cell *string
		dst  *[]string
	}{
		{raw.ColGenres, row.Genres, &a.Genres},
		{raw.ColProductionCompanies, row.ProductionCompanies, &a.ProductionCompanies},
		{raw.ColKeywords, row.Keywords, &a.Keywords},
		{raw.ColCast, row.Cast, &a.Cast},
	}
	for _, l := range lists {
		if *l.dst, err = extract.StringList(l.col, raw.Value(l.cell)); err != nil {
			return movie.Movie{}, err
		}
	}

	return movie.New(a)
}
