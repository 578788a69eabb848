// Package ingest normalizes the raw metadata, keywords and credits tables
// into the canonical movie catalog.
package ingest

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/filmrec/internal/domain"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/raw"
	"github.com/kailas-cloud/filmrec/internal/usecase/extract"
)

// Mode labels a run in metrics and logs.
const (
	ModeNormalize = "normalize"
	ModeRestore   = "restore"
)

// Pipeline runs the normalization and type-restoration passes. It holds no state between runs.
type Pipeline struct {
	logger   *zap.Logger
	kept     *prometheus.CounterVec
	excluded *prometheus.CounterVec
}

// New creates a pipeline.
// kept is a counter vec with label "mode"; excluded has labels "mode", "source", "reason".
// Both may be nil.
func New(logger *zap.Logger, kept, excluded *prometheus.CounterVec) *Pipeline {
	return &Pipeline{logger: logger, kept: kept, excluded: excluded}
}

// metaRecord is a metadata row after projection, coercion and nested decoding.
type metaRecord struct {
	attrs     movie.Attrs
	genres    []extract.Entity
	companies []extract.Entity
}

type creditsRecord struct {
	cast []extract.Entity
	crew []extract.Entity
}

// run collects exclusions for one pass.
type run struct {
	excluded []Exclusion
}

func (r *run) exclude(source string, id, title *string, reason Reason, err error) {
	r.excluded = append(r.excluded, Exclusion{
		Source: source,
		ID:     raw.Value(id),
		Title:  raw.Value(title),
		Reason: reason,
		Err:    err,
	})
}

// Normalize merges the three raw tables into the canonical catalog.
// Rows failing required-field, type or nested-decoding constraints are excluded, never fatal.
func (p *Pipeline) Normalize(
	meta []raw.MetadataRow, keywords []raw.KeywordsRow, credits []raw.CreditsRow,
) (Result, error) {
	start := time.Now()
	r := &run{}

	records := r.metadata(meta)
	kw := r.keywords(keywords)
	cr := r.credits(credits)

	movies := make([]movie.Movie, 0, len(records))
	for i := range records {
		rec := &records[i]
		id := raw.Cell(fmt.Sprint(rec.attrs.ID))
		title := raw.Cell(rec.attrs.Title)

		kwEnts, ok := kw[rec.attrs.ID]
		if !ok {
			r.exclude(raw.TableMetadata, id, title, ReasonNoKeywords, nil)
			continue
		}
		credit, ok := cr[rec.attrs.ID]
		if !ok {
			r.exclude(raw.TableMetadata, id, title, ReasonNoCredits, nil)
			continue
		}

		m, source, err := assemble(rec, kwEnts, credit)
		if err != nil {
			r.exclude(source, id, title, reasonFor(err), err)
			continue
		}
		movies = append(movies, m)
	}

	return p.finish(ModeNormalize, r, movies, start)
}

// metadata applies dedupe, projection, null filtering, coercion and nested decoding,
// then orders the surviving rows by identifier.
func (r *run) metadata(rows []raw.MetadataRow) []metaRecord {
	seenTitles := make(map[string]struct{}, len(rows))
	nullTitleSeen := false

	records := make([]metaRecord, 0, len(rows))
	for i := range rows {
		row := &rows[i]

		// First occurrence of a title wins, even when that row is excluded later.
		if row.Title == nil {
			if nullTitleSeen {
				r.exclude(raw.TableMetadata, row.ID, row.Title, ReasonDuplicateTitle, nil)
				continue
			}
			nullTitleSeen = true
		} else {
			if _, dup := seenTitles[*row.Title]; dup {
				r.exclude(raw.TableMetadata, row.ID, row.Title, ReasonDuplicateTitle, nil)
				continue
			}
			seenTitles[*row.Title] = struct{}{}
		}

		if field := firstNull(
			column{raw.ColOriginalLanguage, row.OriginalLanguage},
			column{raw.ColTitle, row.Title},
			column{raw.ColPopularity, row.Popularity},
			column{raw.ColProductionCompanies, row.ProductionCompanies},
			column{raw.ColReleaseDate, row.ReleaseDate},
			column{raw.ColVoteAverage, row.VoteAverage},
		); field != "" {
			r.exclude(raw.TableMetadata, row.ID, row.Title, ReasonMissingRequired,
				domain.NewValidation(field, "", "is required"))
			continue
		}

		rec, err := coerceMetadata(row)
		if err != nil {
			r.exclude(raw.TableMetadata, row.ID, row.Title, reasonFor(err), err)
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].attrs.ID < records[j].attrs.ID
	})

	unique := records[:0]
	seenIDs := make(map[int]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seenIDs[rec.attrs.ID]; dup {
			r.exclude(raw.TableMetadata, raw.Cell(fmt.Sprint(rec.attrs.ID)), raw.Cell(rec.attrs.Title),
				ReasonDuplicateID, nil)
			continue
		}
		seenIDs[rec.attrs.ID] = struct{}{}
		unique = append(unique, rec)
	}
	return unique
}

// coerceMetadata converts a projected row whose required fields are present.
// Null optional fields are treated as empty text.
func coerceMetadata(row *raw.MetadataRow) (metaRecord, error) {
	var rec metaRecord
	var err error

	if rec.attrs.Adult, err = parseBool(raw.ColAdult, raw.Value(row.Adult)); err != nil {
		return metaRecord{}, err
	}
	if rec.attrs.ID, err = parseID(raw.ColID, raw.Value(row.ID)); err != nil {
		return metaRecord{}, err
	}
	rec.attrs.OriginalLanguage = raw.Value(row.OriginalLanguage)
	rec.attrs.Overview = raw.Value(row.Overview)
	rec.attrs.Title = raw.Value(row.Title)
	if rec.attrs.Popularity, err = parseFloat(raw.ColPopularity, raw.Value(row.Popularity)); err != nil {
		return metaRecord{}, err
	}
	if rec.attrs.VoteAverage, err = parseFloat(raw.ColVoteAverage, raw.Value(row.VoteAverage)); err != nil {
		return metaRecord{}, err
	}

	if rec.genres, err = extract.Entities(raw.ColGenres, raw.Value(row.Genres)); err != nil {
		return metaRecord{}, err
	}
	if rec.companies, err = extract.Entities(raw.ColProductionCompanies, raw.Value(row.ProductionCompanies)); err != nil {
		return metaRecord{}, err
	}
	if rec.attrs.ReleaseDate, err = parseDate(raw.ColReleaseDate, raw.Value(row.ReleaseDate)); err != nil {
		return metaRecord{}, &dateError{err: err}
	}
	return rec, nil
}

// keywords indexes the keywords table by numeric identifier; the first row per id wins.
func (r *run) keywords(rows []raw.KeywordsRow) map[int][]extract.Entity {
	out := make(map[int][]extract.Entity, len(rows))
	for i := range rows {
		row := &rows[i]
		id, reason, err := indexID(row.ID)
		if err != nil {
			r.exclude(raw.TableKeywords, row.ID, nil, reason, err)
			continue
		}
		if _, dup := out[id]; dup {
			r.exclude(raw.TableKeywords, row.ID, nil, ReasonDuplicateID, nil)
			continue
		}
		ents, err := extract.Entities(raw.ColKeywords, raw.Value(row.Keywords))
		if err != nil {
			r.exclude(raw.TableKeywords, row.ID, nil, ReasonMalformedNested, err)
			continue
		}
		out[id] = ents
	}
	return out
}

// credits indexes the credits table by numeric identifier; the first row per id wins.
func (r *run) credits(rows []raw.CreditsRow) map[int]creditsRecord {
	out := make(map[int]creditsRecord, len(rows))
	for i := range rows {
		row := &rows[i]
		id, reason, err := indexID(row.ID)
		if err != nil {
			r.exclude(raw.TableCredits, row.ID, nil, reason, err)
			continue
		}
		if _, dup := out[id]; dup {
			r.exclude(raw.TableCredits, row.ID, nil, ReasonDuplicateID, nil)
			continue
		}
		cast, err := extract.Entities(raw.ColCast, raw.Value(row.Cast))
		if err != nil {
			r.exclude(raw.TableCredits, row.ID, nil, ReasonMalformedNested, err)
			continue
		}
		crew, err := extract.Entities(raw.ColCrew, raw.Value(row.Crew))
		if err != nil {
			r.exclude(raw.TableCredits, row.ID, nil, ReasonMalformedNested, err)
			continue
		}
		out[id] = creditsRecord{cast: cast, crew: crew}
	}
	return out
}

// assemble derives the director and reduces entity lists to names.
// The returned source names the table whose column failed.
func assemble(rec *metaRecord, kw []extract.Entity, cr creditsRecord) (movie.Movie, string, error) {
	a := rec.attrs
	var err error

	if a.Director, err = extract.Director(raw.ColCrew, cr.crew); err != nil {
		return movie.Movie{}, raw.TableCredits, err
	}
	if a.Genres, err = extract.Names(raw.ColGenres, rec.genres); err != nil {
		return movie.Movie{}, raw.TableMetadata, err
	}
	if a.ProductionCompanies, err = extract.Names(raw.ColProductionCompanies, rec.companies); err != nil {
		return movie.Movie{}, raw.TableMetadata, err
	}
	if a.Keywords, err = extract.Names(raw.ColKeywords, kw); err != nil {
		return movie.Movie{}, raw.TableKeywords, err
	}
	if a.Cast, err = extract.TopCast(raw.ColCast, cr.cast, movie.MaxCast); err != nil {
		return movie.Movie{}, raw.TableCredits, err
	}

	m, err := movie.New(a)
	if err != nil {
		return movie.Movie{}, raw.TableMetadata, err
	}
	return m, "", nil
}

func (p *Pipeline) finish(mode string, r *run, movies []movie.Movie, start time.Time) (Result, error) {
	catalog, err := movie.NewCatalog(movies)
	if err != nil {
		return Result{}, fmt.Errorf("build catalog: %w", err)
	}
	res := Result{Catalog: catalog, Excluded: r.excluded}

	if p.kept != nil {
		p.kept.WithLabelValues(mode).Add(float64(catalog.Len()))
	}
	if p.excluded != nil {
		for _, e := range res.Excluded {
			p.excluded.WithLabelValues(mode, e.Source, string(e.Reason)).Inc()
		}
	}

	if p.logger != nil {
		for _, e := range res.Excluded {
			p.logger.Debug("Row excluded",
				zap.String("mode", mode),
				zap.String("source", e.Source),
				zap.String("id", e.ID),
				zap.String("title", e.Title),
				zap.String("reason", string(e.Reason)),
				zap.Error(e.Err),
			)
		}
		counts := res.Counts()
		fields := []zap.Field{
			zap.String("mode", mode),
			zap.Int("kept", catalog.Len()),
			zap.Int("excluded", len(res.Excluded)),
			zap.Duration("took", time.Since(start)),
		}
		for _, k := range sortedKeys(counts) {
			fields = append(fields, zap.Int(k, counts[k]))
		}
		p.logger.Info("Catalog normalized", fields...)
	}
	return res, nil
}

// dateError marks a release date coercion failure.
type dateError struct{ err error }

func (e *dateError) Error() string { return e.err.Error() }
func (e *dateError) Unwrap() error { return e.err }

func reasonFor(err error) Reason {
	var de *dateError
	switch {
	case errors.As(err, &de):
		return ReasonInvalidDate
	case errors.Is(err, domain.ErrParse):
		return ReasonMalformedNested
	default:
		return ReasonInvalidType
	}
}

// indexID coerces a keywords/credits identifier. A null id is a missing required field.
func indexID(cell *string) (int, Reason, error) {
	if cell == nil {
		return 0, ReasonMissingRequired, domain.NewValidation(raw.ColID, "", "is required")
	}
	id, err := parseID(raw.ColID, *cell)
	if err != nil {
		return 0, ReasonInvalidType, err
	}
	return id, "", nil
}

// column pairs a column name with its cell for required-field checks.
type column struct {
	name string
	cell *string
}

// firstNull returns the name of the first null column, or "".
func firstNull(cols ...column) string {
	for _, c := range cols {
		if c.cell == nil {
			return c.name
		}
	}
	return ""
}
