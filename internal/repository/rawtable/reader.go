// Package rawtable reads the raw metadata, keywords and credits tables
// from delimited text files.
package rawtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/filmrec/internal/domain"
	"github.com/kailas-cloud/filmrec/internal/domain/raw"
)

// Paths locates the three raw tables on disk.
type Paths struct {
	Metadata string
	Keywords string
	Credits  string
}

// Tables holds the fully materialized raw tables.
type Tables struct {
	Metadata []raw.MetadataRow
	Keywords []raw.KeywordsRow
	Credits  []raw.CreditsRow
}

// ReadAll reads the three tables. A missing column is a *domain.SchemaError.
func ReadAll(p Paths) (Tables, error) {
	var t Tables
	var err error

	if t.Metadata, err = readFile(p.Metadata, ReadMetadata); err != nil {
		return Tables{}, err
	}
	if t.Keywords, err = readFile(p.Keywords, ReadKeywords); err != nil {
		return Tables{}, err
	}
	if t.Credits, err = readFile(p.Credits, ReadCredits); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// ReadMetadata reads the movie metadata table. Extra columns are ignored.
func ReadMetadata(r io.Reader) ([]raw.MetadataRow, error) {
	t, err := readTable(r, raw.TableMetadata, raw.MetadataColumns)
	if err != nil {
		return nil, err
	}
	rows := make([]raw.MetadataRow, 0, len(t.records))
	for _, rec := range t.records {
		rows = append(rows, raw.MetadataRow{
			Adult:               t.cell(rec, raw.ColAdult),
			Genres:              t.cell(rec, raw.ColGenres),
			ID:                  t.cell(rec, raw.ColID),
			OriginalLanguage:    t.cell(rec, raw.ColOriginalLanguage),
			Overview:            t.cell(rec, raw.ColOverview),
			Popularity:          t.cell(rec, raw.ColPopularity),
			ProductionCompanies: t.cell(rec, raw.ColProductionCompanies),
			ReleaseDate:         t.cell(rec, raw.ColReleaseDate),
			Title:               t.cell(rec, raw.ColTitle),
			VoteAverage:         t.cell(rec, raw.ColVoteAverage),
		})
	}
	return rows, nil
}

// ReadKeywords reads the keywords table.
func ReadKeywords(r io.Reader) ([]raw.KeywordsRow, error) {
	t, err := readTable(r, raw.TableKeywords, raw.KeywordsColumns)
	if err != nil {
		return nil, err
	}
	rows := make([]raw.KeywordsRow, 0, len(t.records))
	for _, rec := range t.records {
		rows = append(rows, raw.KeywordsRow{
			ID:       t.cell(rec, raw.ColID),
			Keywords: t.cell(rec, raw.ColKeywords),
		})
	}
	return rows, nil
}

// ReadCredits reads the credits table.
func ReadCredits(r io.Reader) ([]raw.CreditsRow, error) {
	t, err := readTable(r, raw.TableCredits, raw.CreditsColumns)
	if err != nil {
		return nil, err
	}
	rows := make([]raw.CreditsRow, 0, len(t.records))
	for _, rec := range t.records {
		rows = append(rows, raw.CreditsRow{
			ID:   t.cell(rec, raw.ColID),
			Cast: t.cell(rec, raw.ColCast),
			Crew: t.cell(rec, raw.ColCrew),
		})
	}
	return rows, nil
}

// ReadCatalog reads a persisted canonical catalog in delimited text form.
func ReadCatalog(r io.Reader) ([]raw.CatalogRow, error) {
	t, err := readTable(r, raw.TableCatalog, raw.CatalogColumns)
	if err != nil {
		return nil, err
	}
	rows := make([]raw.CatalogRow, 0, len(t.records))
	for _, rec := range t.records {
		rows = append(rows, raw.CatalogRow{
			ID:                  t.cell(rec, raw.ColID),
			Adult:               t.cell(rec, raw.ColAdult),
			Genres:              t.cell(rec, raw.ColGenres),
			OriginalLanguage:    t.cell(rec, raw.ColOriginalLanguage),
			Overview:            t.cell(rec, raw.ColOverview),
			Popularity:          t.cell(rec, raw.ColPopularity),
			ProductionCompanies: t.cell(rec, raw.ColProductionCompanies),
			ReleaseDate:         t.cell(rec, raw.ColReleaseDate),
			Title:               t.cell(rec, raw.ColTitle),
			VoteAverage:         t.cell(rec, raw.ColVoteAverage),
			Keywords:            t.cell(rec, raw.ColKeywords),
			Cast:                t.cell(rec, raw.ColCast),
			Director:            t.cell(rec, raw.ColDirector),
		})
	}
	return rows, nil
}

// table is a parsed delimited file with columns resolved by header name.
type table struct {
	columns map[string]int
	records [][]string
}

// readTable parses all records and resolves the required columns.
// Records shorter than the header leave the missing cells null.
func readTable(r io.Reader, name string, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.SchemaError{Table: name, Column: required[0]}
		}
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := columns[h]; !dup {
			columns[h] = i
		}
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return nil, &domain.SchemaError{Table: name, Column: col}
		}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s records: %w", name, err)
	}
	return &table{columns: columns, records: records}, nil
}

// cell returns the value of col in rec, or nil when empty or absent.
func (t *table) cell(rec []string, col string) *string {
	i := t.columns[col]
	if i >= len(rec) || rec[i] == "" {
		return nil
	}
	v := rec[i]
	return &v
}
