package movie

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Catalog is an ordered, read-only collection of movies with unique identifiers and titles.
type Catalog struct {
	movies      []Movie
	byID        map[int]int
	fingerprint string
}

// NewCatalog builds a catalog, preserving order. Duplicate identifiers or titles are rejected.
func NewCatalog(movies []Movie) (*Catalog, error) {
	byID := make(map[int]int, len(movies))
	titles := make(map[string]struct{}, len(movies))
	for i := range movies {
		m := &movies[i]
		if _, dup := byID[m.id]; dup {
			return nil, fmt.Errorf("duplicate movie id %d", m.id)
		}
		if _, dup := titles[m.title]; dup {
			return nil, fmt.Errorf("duplicate movie title %q", m.title)
		}
		byID[m.id] = i
		titles[m.title] = struct{}{}
	}
	owned := make([]Movie, len(movies))
	copy(owned, movies)
	return &Catalog{movies: owned, byID: byID, fingerprint: fingerprint(owned)}, nil
}

// Len returns the number of movies.
func (c *Catalog) Len() int { return len(c.movies) }

// At returns the movie at position i.
func (c *Catalog) At(i int) Movie { return c.movies[i] }

// All returns a copy of the movies in catalog order.
func (c *Catalog) All() []Movie {
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// ByID looks up a movie by identifier.
func (c *Catalog) ByID(id int) (Movie, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Movie{}, false
	}
	return c.movies[i], true
}

// Fingerprint identifies the catalog contents (ids and titles, in order).
func (c *Catalog) Fingerprint() string { return c.fingerprint }

func fingerprint(movies []Movie) string {
	h := sha256.New()
	var buf [8]byte
	for i := range movies {
		binary.LittleEndian.PutUint64(buf[:], uint64(movies[i].id)) //nolint:gosec // ids are non-negative
		h.Write(buf[:])
		h.Write([]byte(movies[i].title))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
