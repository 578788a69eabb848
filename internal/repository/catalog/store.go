// Package catalog persists the canonical catalog as a flat table.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/filmrec/internal/domain"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/raw"
)

// Format names a persisted catalog encoding.
type Format string

// Supported formats.
const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// Store reads and writes the persisted catalog.
type Store interface {
	// Exists reports whether a persisted catalog is present.
	Exists() bool
	// Load returns the persisted rows, or domain.ErrCatalogNotFound.
	Load() ([]raw.CatalogRow, error)
	// Save replaces the persisted catalog. Readers never observe a partial file.
	Save(c *movie.Catalog) error
}

// New returns the store for format at path.
func New(format Format, path string) (Store, error) {
	switch format {
	case FormatCSV, "":
		return NewCSV(path), nil
	case FormatParquet:
		return NewParquet(path), nil
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func rowsOf(c *movie.Catalog) []raw.CatalogRow {
	rows := make([]raw.CatalogRow, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		m := c.At(i)
		rows = append(rows, toRow(&m))
	}
	return rows
}

// replaceFile writes via write into a temp file next to path, then renames it into place.
func replaceFile(path string, write func(tmp string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	tmp := f.Name()
	_ = f.Close()

	if err := write(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

func notFound(path string) error {
	return fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, path)
}
