package catalog

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/raw"
)

// parquetRow is the columnar layout of the flat catalog table.
// Cells keep their text encoding so both formats share one restoration pass.
type parquetRow struct {
	ID                  string `parquet:"id"`
	Adult               string `parquet:"adult,dict"`
	Genres              string `parquet:"genres"`
	OriginalLanguage    string `parquet:"original_language,dict"`
	Overview            string `parquet:"overview"`
	Popularity          string `parquet:"popularity"`
	ProductionCompanies string `parquet:"production_companies"`
	ReleaseDate         string `parquet:"release_date"`
	Title               string `parquet:"title"`
	VoteAverage         string `parquet:"vote_average"`
	Keywords            string `parquet:"keywords"`
	Cast                string `parquet:"cast"`
	Director            string `parquet:"director"`
}

// ParquetStore keeps the catalog as a single parquet file.
type ParquetStore struct {
	path string
}

// NewParquet creates a parquet store at path.
func NewParquet(path string) *ParquetStore { return &ParquetStore{path: path} }

// Exists reports whether the file is present.
func (s *ParquetStore) Exists() bool { return fileExists(s.path) }

// Load reads every row. Empty cells are null, as in the CSV layout.
func (s *ParquetStore) Load() ([]raw.CatalogRow, error) {
	if !s.Exists() {
		return nil, notFound(s.path)
	}
	prows, err := parquet.ReadFile[parquetRow](s.path)
	if err != nil {
		return nil, fmt.Errorf("read parquet catalog: %w", err)
	}
	rows := make([]raw.CatalogRow, 0, len(prows))
	for i := range prows {
		rows = append(rows, fromParquet(&prows[i]))
	}
	return rows, nil
}

// Save writes the catalog in catalog order.
func (s *ParquetStore) Save(c *movie.Catalog) error {
	rows := rowsOf(c)
	prows := make([]parquetRow, 0, len(rows))
	for i := range rows {
		prows = append(prows, toParquet(&rows[i]))
	}
	return replaceFile(s.path, func(tmp string) error {
		if err := parquet.WriteFile(tmp, prows); err != nil {
			return fmt.Errorf("write parquet catalog: %w", err)
		}
		return nil
	})
}

func toParquet(r *raw.CatalogRow) parquetRow {
	return parquetRow{
		ID: raw.Value(r.ID), Adult: raw.Value(r.Adult), Genres: raw.Value(r.Genres),
		OriginalLanguage: raw.Value(r.OriginalLanguage), Overview: raw.Value(r.Overview),
		Popularity: raw.Value(r.Popularity), ProductionCompanies: raw.Value(r.ProductionCompanies),
		ReleaseDate: raw.Value(r.ReleaseDate), Title: raw.Value(r.Title),
		VoteAverage: raw.Value(r.VoteAverage), Keywords: raw.Value(r.Keywords),
		Cast: raw.Value(r.Cast), Director: raw.Value(r.Director),
	}
}

func fromParquet(p *parquetRow) raw.CatalogRow {
	return raw.CatalogRow{
		ID: nullable(p.ID), Adult: nullable(p.Adult), Genres: nullable(p.Genres),
		OriginalLanguage: nullable(p.OriginalLanguage), Overview: nullable(p.Overview),
		Popularity: nullable(p.Popularity), ProductionCompanies: nullable(p.ProductionCompanies),
		ReleaseDate: nullable(p.ReleaseDate), Title: nullable(p.Title),
		VoteAverage: nullable(p.VoteAverage), Keywords: nullable(p.Keywords),
		Cast: nullable(p.Cast), Director: nullable(p.Director),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
