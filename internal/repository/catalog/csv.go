package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/raw"
	"github.com/kailas-cloud/filmrec/internal/repository/rawtable"
)

// CSVStore keeps the catalog as comma separated text with a header row.
type CSVStore struct {
	path string
}

// NewCSV creates a CSV store at path.
func NewCSV(path string) *CSVStore { return &CSVStore{path: path} }

// Exists reports whether the file is present.
func (s *CSVStore) Exists() bool { return fileExists(s.path) }

// Load reads every row. Empty cells are null.
func (s *CSVStore) Load() ([]raw.CatalogRow, error) {
	if !s.Exists() {
		return nil, notFound(s.path)
	}
	f, err := os.Open(filepath.Clean(s.path))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := rawtable.ReadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return rows, nil
}

// Save writes the catalog in catalog order.
func (s *CSVStore) Save(c *movie.Catalog) error {
	return replaceFile(s.path, func(tmp string) error {
		f, err := os.OpenFile(filepath.Clean(tmp), os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("open temp catalog: %w", err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(raw.CatalogColumns); err != nil {
			_ = f.Close()
			return fmt.Errorf("write header: %w", err)
		}
		for _, row := range rowsOf(c) {
			if err := w.Write(cells(&row)); err != nil {
				_ = f.Close()
				return fmt.Errorf("write row: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return fmt.Errorf("flush catalog: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close catalog: %w", err)
		}
		return nil
	})
}
